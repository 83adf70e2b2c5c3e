package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dfmgold/goldfees/internal/config"
	"github.com/dfmgold/goldfees/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the goldfees HTTP server.
// MaxUploadSize bounds uploaded YAML configs and accepts human-friendly
// byte strings such as "256K" or "1M".
type Config struct {
	Address       string               `yaml:"address"`
	MaxUploadSize string               `yaml:"maxUploadSize"`
	Logging       config.LoggingConfig `yaml:"logging"`

	uploadSizeBytes int64
}

// LoadConfig loads the server configuration from YAML. A missing file is
// not an error; the server runs on defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:         constants.DefaultServerAddress,
		uploadSizeBytes: constants.DefaultMaxUploadSizeBytes,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return cfg, nil
		case err != nil:
			return nil, fmt.Errorf("failed to read server config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse server config: %w", err)
		}
	}

	if err := cfg.setUploadSize(cfg.MaxUploadSize); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides applies CLI flag values on top of the loaded file.
// Empty strings leave the configured values untouched.
func (c *Config) ApplyOverrides(address, maxUploadSize string) error {
	if address != "" {
		c.Address = address
	}
	if maxUploadSize != "" {
		return c.setUploadSize(maxUploadSize)
	}
	return nil
}

// UploadSizeBytes returns the effective upload limit in bytes.
func (c *Config) UploadSizeBytes() int64 {
	return c.uploadSizeBytes
}

func (c *Config) setUploadSize(value string) error {
	if strings.TrimSpace(value) == "" {
		c.uploadSizeBytes = constants.DefaultMaxUploadSizeBytes
		c.MaxUploadSize = fmt.Sprintf("%d", constants.DefaultMaxUploadSizeBytes)
		return nil
	}

	bytes, err := parseSize(value)
	if err != nil {
		return err
	}
	c.uploadSizeBytes = bytes
	c.MaxUploadSize = strings.ToUpper(strings.TrimSpace(value))
	return nil
}

var sizeUnits = map[string]int64{
	"":   1,
	"B":  1,
	"K":  1024,
	"KB": 1024,
	"M":  1024 * 1024,
	"MB": 1024 * 1024,
	"G":  1024 * 1024 * 1024,
	"GB": 1024 * 1024 * 1024,
}

// parseSize converts a byte string like "512", "256K", or "10M" into a
// positive byte count.
func parseSize(value string) (int64, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	numPart := strings.TrimRight(trimmed, "BKMG")
	unitPart := trimmed[len(numPart):]

	multiplier, ok := sizeUnits[unitPart]
	if !ok {
		return 0, fmt.Errorf("unsupported size unit %q in %q", unitPart, value)
	}

	n, err := strconv.ParseInt(strings.TrimSpace(numPart), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid upload size %q: %w", value, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("upload size %q must be positive", value)
	}
	if n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("upload size %q overflows", value)
	}
	return n * multiplier, nil
}
