package main

import (
	"flag"
	"fmt"

	"github.com/dfmgold/goldfees/internal/config"
	"github.com/dfmgold/goldfees/internal/fees"
	"github.com/dfmgold/goldfees/pkg/constants"
	"github.com/dfmgold/goldfees/pkg/output"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := config.BuildLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = output.ValidateFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Parse the configured rates into an engine input.
	modelInput, err := conf.ModelInput()
	if err != nil {
		logger.Fatal("failed to parse fee model configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Compute the two benchmark scenarios and the configured model.
	engine := fees.NewEngine(logger)

	scenario1, err := engine.Calculate(fees.BenchmarkInput(modelInput.PricePerGram, modelInput.Grams, constants.BenchmarkScenario1Years))
	if err != nil {
		logger.Fatal("failed to compute benchmark scenario 1",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	scenario2, err := engine.Calculate(fees.BenchmarkInput(modelInput.PricePerGram, modelInput.Grams, constants.BenchmarkScenario2Years))
	if err != nil {
		logger.Fatal("failed to compute benchmark scenario 2",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	model, err := engine.Calculate(modelInput)
	if err != nil {
		logger.Fatal("failed to compute configured fee model",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	comparison := fees.CompareAgainstBenchmark(scenario1, scenario2, model)
	results := []output.Result{
		{Name: fmt.Sprintf("Benchmark %d-Year Hold", scenario1.HoldingYears), Schedule: scenario1},
		{Name: fmt.Sprintf("Benchmark %d-Year Hold", scenario2.HoldingYears), Schedule: scenario2},
		{Name: "Configured Model", Schedule: model},
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results, &comparison)
	case constants.OutputFormatCSV:
		output.CsvFormat(results, &comparison)
	}
}
