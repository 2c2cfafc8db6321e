// Package config provides configuration loading and validation for the
// lituus CLI.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidWorkers  = errors.New("pipeline workers must be positive")
	ErrInvalidFormat   = errors.New("output format must be json or gob")
	ErrInvalidLogLevel = errors.New("log level must be debug, info, warn or error")
)

// Default configuration values.
const (
	defaultWorkers   = 4
	defaultOutputDir = "trees"
	defaultFormat    = "json"
	defaultLogLevel  = "info"
)

// Config holds all configuration for a lituus run.
type Config struct {
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Output   OutputConfig   `mapstructure:"output"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Otel     OtelConfig     `mapstructure:"otel"`
}

// PipelineConfig holds batch processing configuration.
type PipelineConfig struct {
	Workers    int `mapstructure:"workers"`
	BufferSize int `mapstructure:"buffer_size"`
}

// CatalogConfig holds vocabulary configuration.
type CatalogConfig struct {
	// Overlay is an optional YAML file extending the built-in vocabulary.
	Overlay string `mapstructure:"overlay"`
}

// OutputConfig holds tree persistence configuration.
type OutputConfig struct {
	Directory string `mapstructure:"directory"`
	Format    string `mapstructure:"format"`
	Compress  bool   `mapstructure:"compress"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// OtelConfig holds telemetry export configuration.
type OtelConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Insecure bool   `mapstructure:"insecure"`
	// PrometheusAddr enables a /metrics scrape listener during graph runs.
	PrometheusAddr string `mapstructure:"prometheus_addr"`
}

// Load loads configuration from file and LITUUS_* environment variables.
// A missing config file is not an error; defaults apply.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("lituus")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
	}

	viperCfg.SetEnvPrefix("LITUUS")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		// An explicitly named file must exist; the default search may miss.
		var notFoundErr viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := validate(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("pipeline.workers", defaultWorkers)
	viperCfg.SetDefault("pipeline.buffer_size", defaultWorkers)

	viperCfg.SetDefault("output.directory", defaultOutputDir)
	viperCfg.SetDefault("output.format", defaultFormat)
	viperCfg.SetDefault("output.compress", false)

	viperCfg.SetDefault("logging.level", defaultLogLevel)
	viperCfg.SetDefault("logging.json", false)

	viperCfg.SetDefault("otel.insecure", true)
}

// validate checks the configuration.
func validate(config *Config) error {
	if config.Pipeline.Workers <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, config.Pipeline.Workers)
	}

	switch config.Output.Format {
	case "json", "gob":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, config.Output.Format)
	}

	switch config.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, config.Logging.Level)
	}

	return nil
}
