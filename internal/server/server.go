package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/dfmgold/goldfees/internal/config"
	"github.com/dfmgold/goldfees/internal/fees"
	"github.com/dfmgold/goldfees/pkg/constants"
	"github.com/dfmgold/goldfees/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger        *zap.Logger
	engine        *fees.Engine
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the web UI and the
// fee schedule API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		engine:        fees.NewEngine(logger),
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	mux := http.NewServeMux()

	// Schedule API endpoint (file upload)
	mux.HandleFunc("/api/schedule", h.handleSchedule)

	// Schedule API endpoint for editor-driven updates
	mux.HandleFunc("/api/editor/schedule", h.handleScheduleEditor)

	// Benchmark rate card for UI display
	mux.HandleFunc("/api/ratecard", h.handleRateCard)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	fileServer := http.FileServer(http.FS(sub))
	mux.Handle("/", fileServer)

	return mux
}

type scheduleResponse struct {
	Results    []scheduleResult `json:"results"`
	Comparison comparisonRow    `json:"comparison"`
	CSV        string           `json:"csv"`
	Warnings   []string         `json:"warnings,omitempty"`
	Duration   string           `json:"duration"`
}

type scheduleResult struct {
	Name     string       `json:"name"`
	Notional string       `json:"notional"`
	Years    []yearRow    `json:"years"`
	Summary  summaryBlock `json:"summary"`
}

// Monetary values are serialized as strings at display precision so the
// JSON layer never carries binary floats.
type yearRow struct {
	Year          int    `json:"year"`
	Custody       string `json:"custody"`
	Management    string `json:"management"`
	Paid          string `json:"paid"`
	AccruedUnpaid string `json:"accruedUnpaid"`
}

type summaryBlock struct {
	Acquisition   string `json:"acquisition"`
	Arrangement   string `json:"arrangement"`
	Custody       string `json:"custody"`
	Management    string `json:"management"`
	Redemption    string `json:"redemption"`
	Total         string `json:"total"`
	PctOfNotional string `json:"pctOfNotional"`
}

type comparisonRow struct {
	Label          string `json:"label"`
	BenchmarkYears int    `json:"benchmarkYears"`
	BenchmarkTotal string `json:"benchmarkTotal"`
	ModelTotal     string `json:"modelTotal"`
	Difference     string `json:"difference"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleSchedule")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), "server.handleSchedule")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file", "server.handleSchedule")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleSchedule"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), "server.handleSchedule")
		return
	}

	h.runSchedule(w, buf.Bytes(), start, "server.handleSchedule")
}

func (h *handler) handleScheduleEditor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), "server.handleScheduleEditor")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configBytes, err := yaml.Marshal(payload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleScheduleEditor")
		return
	}

	h.runSchedule(w, configBytes, start, "server.handleScheduleEditor")
}

func (h *handler) handleRateCard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"rateCard": fees.BenchmarkRateCard(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) runSchedule(w http.ResponseWriter, configBytes []byte, start time.Time, op string) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()

	modelInput, err := cfg.ModelInput()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	scenario1, err := h.engine.Calculate(fees.BenchmarkInput(modelInput.PricePerGram, modelInput.Grams, constants.BenchmarkScenario1Years))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	scenario2, err := h.engine.Calculate(fees.BenchmarkInput(modelInput.PricePerGram, modelInput.Grams, constants.BenchmarkScenario2Years))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	model, err := h.engine.Calculate(modelInput)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	comparison := fees.CompareAgainstBenchmark(scenario1, scenario2, model)
	results := []output.Result{
		{Name: fmt.Sprintf("Benchmark %d-Year Hold", scenario1.HoldingYears), Schedule: scenario1},
		{Name: fmt.Sprintf("Benchmark %d-Year Hold", scenario2.HoldingYears), Schedule: scenario2},
		{Name: "Configured Model", Schedule: model},
	}

	elapsed := time.Since(start)

	response := scheduleResponse{
		Results:    buildResults(results),
		Comparison: buildComparison(comparison),
		CSV:        output.CsvString(results, &comparison),
		Warnings:   warnings,
		Duration:   elapsed.String(),
	}

	h.logger.Info("fee schedule computed",
		zap.String("op", op),
		zap.Int("holdingYears", model.HoldingYears),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func buildResults(results []output.Result) []scheduleResult {
	out := make([]scheduleResult, 0, len(results))
	for _, result := range results {
		rows := make([]yearRow, 0, len(result.Schedule.Years))
		for _, year := range result.Schedule.Years {
			rows = append(rows, yearRow{
				Year:          year.Year,
				Custody:       year.Custody.StringFixed(constants.TablePrecision),
				Management:    year.Management.StringFixed(constants.TablePrecision),
				Paid:          year.Paid.StringFixed(constants.TablePrecision),
				AccruedUnpaid: year.AccruedUnpaid.StringFixed(constants.TablePrecision),
			})
		}
		summary := result.Schedule.Summary
		out = append(out, scheduleResult{
			Name:     result.Name,
			Notional: result.Schedule.Notional.StringFixed(constants.SummaryPrecision),
			Years:    rows,
			Summary: summaryBlock{
				Acquisition:   summary.Acquisition.StringFixed(constants.TablePrecision),
				Arrangement:   summary.Arrangement.StringFixed(constants.TablePrecision),
				Custody:       summary.Custody.StringFixed(constants.TablePrecision),
				Management:    summary.Management.StringFixed(constants.TablePrecision),
				Redemption:    summary.Redemption.StringFixed(constants.TablePrecision),
				Total:         summary.Total.StringFixed(constants.SummaryPrecision),
				PctOfNotional: summary.PctOfNotional.StringFixed(constants.TablePrecision),
			},
		})
	}
	return out
}

func buildComparison(comparison fees.Comparison) comparisonRow {
	return comparisonRow{
		Label:          comparison.Label,
		BenchmarkYears: comparison.BenchmarkYears,
		BenchmarkTotal: comparison.BenchmarkTotal.StringFixed(constants.SummaryPrecision),
		ModelTotal:     comparison.ModelTotal.StringFixed(constants.SummaryPrecision),
		Difference:     comparison.Difference.StringFixed(constants.SummaryPrecision),
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("schedule request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
