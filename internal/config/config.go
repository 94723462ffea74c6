// =============================================================================
// Purchase Order Generator - Configuration Module
// =============================================================================
//
// This module is responsible for loading the optional configuration file.
//
// CONFIGURATION FILE:
//   pogen.yaml (or the path given with --config). Every key is optional; a
//   missing file at the default path means "use defaults".
//
// LOADING ORDER:
//   1. Read and parse the YAML file (if present)
//   2. Apply defaults for unset keys
//   3. Validate the result (go-playground/validator struct tags)
//
// Command line flags are applied on top by the cmd package.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// DefaultPath is the configuration file looked up when --config is not set.
	DefaultPath = "pogen.yaml"

	// DefaultOutputFile is the fixed output file name.
	DefaultOutputFile = "purchase_orders.csv"

	// DefaultCount is the record count used when no count argument is given.
	DefaultCount = 10000

	// DefaultMaxCount caps the record count accepted by the read API.
	DefaultMaxCount = 1000000

	DefaultOutputDir  = "."
	DefaultLogLevel   = "info"
	DefaultServerAddr = ":8000"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// OutputDir is the directory the generated files are written to.
	// Default: "." (the working directory)
	OutputDir string `yaml:"output_dir" validate:"required"`

	// OutputFile is the name of the generated CSV file.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	//   {count}     - Number of records
	// Default: "purchase_orders.csv"
	OutputFile string `yaml:"output_file" validate:"required,excludesall=/\\"`

	// DefaultCount is the number of records generated when no count is given.
	// Default: 10000
	DefaultCount int `yaml:"default_count" validate:"gte=1"`

	// MaxCount is the largest count POST /api/generate accepts. The command
	// line is not capped.
	// Default: 1000000, or default_count when that is larger
	MaxCount int `yaml:"max_count" validate:"gtefield=DefaultCount"`

	// Seed fixes the random source. Zero seeds from the clock.
	Seed uint64 `yaml:"seed"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// WriteXLSX additionally writes the dataset as an XLSX workbook.
	WriteXLSX bool `yaml:"write_xlsx"`

	// WriteXML additionally writes the dataset as an XML document.
	WriteXML bool `yaml:"write_xml"`

	// Server holds settings for the serve command.
	Server ServerConfig `yaml:"server"`
}

// ServerConfig holds settings for the read API.
type ServerConfig struct {
	// Addr is the listen address.
	// Default: ":8000"
	Addr string `yaml:"addr" validate:"required"`

	// CSVPath is the file served by the API.
	// Default: the generated output path
	CSVPath string `yaml:"csv_path"`
}

// =============================================================================
// LOADING
// =============================================================================

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - path: The configuration file path.
//   - explicit: Whether the path was chosen by the user. A missing file is
//     only an error when it was.
//
// RETURNS:
//   - The validated configuration.
//   - An error if the file cannot be read, parsed, or validated.
func Load(path string, explicit bool) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No config file: defaults only.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any unset option.
func applyDefaults(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = DefaultOutputFile
	}
	if cfg.DefaultCount == 0 {
		cfg.DefaultCount = DefaultCount
	}
	if cfg.MaxCount == 0 {
		cfg.MaxCount = max(DefaultMaxCount, cfg.DefaultCount)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fmt.Sprintf("%s failed %q (value: %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}
