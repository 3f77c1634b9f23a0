// Package config loads the pipeline configuration from environment
// variables with an optional YAML overlay, validated once at startup.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete pipeline configuration.
type Config struct {
	Input   InputConfig   `yaml:"input" envconfig:"INPUT"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	// Seed is the deterministic source for any future stochastic stage.
	// No current stage draws from it; it is threaded through pipeline
	// options rather than held in process-global state.
	Seed int64 `yaml:"seed" envconfig:"SEED" default:"42"`
}

// InputConfig locates the source workbook.
type InputConfig struct {
	WorkbookPath string `yaml:"workbook_path" envconfig:"WORKBOOK_PATH" default:"data/StudentData.xlsx" validate:"required"`
	// SheetName pins the data sheet. When empty the loader scans for a
	// sheet whose header row carries the required columns.
	SheetName string `yaml:"sheet_name" envconfig:"SHEET_NAME"`
}

// OutputConfig names the two CSV artifacts of a run.
type OutputConfig struct {
	CleanCSV       string `yaml:"clean_csv" envconfig:"CLEAN_CSV" default:"out/beverage_clean.csv" validate:"required"`
	PredictionsCSV string `yaml:"predictions_csv" envconfig:"PREDICTIONS_CSV" default:"out/ph_predictions.csv" validate:"required"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
}

// Load builds the configuration: defaults and environment first (prefix
// BEV), then an optional YAML file overlay, then validation.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("BEV", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", configPath, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}
