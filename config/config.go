// Package config loads the command-line tool's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/graphsearch"
	"github.com/pdrpinto/graphsearch/internal/logging"
)

// ErrInvalidConfig is returned when a configuration value is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Problem kinds.
const (
	KindGrid  = "grid"
	KindGraph = "graph"
)

// Config is the root of the configuration file.
type Config struct {
	Strategy      string        `yaml:"strategy" validate:"strategy"`
	Heuristic     string        `yaml:"heuristic"`
	MaxExpansions int           `yaml:"max_expansions" validate:"gte=0"`
	Log           LogConfig     `yaml:"log"`
	Problem       ProblemConfig `yaml:"problem"`
	Server        ServerConfig  `yaml:"server"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"loglevel"`
	Format string `yaml:"format" validate:"logformat"`
}

type ProblemConfig struct {
	Kind string `yaml:"kind" validate:"oneof=grid graph"`
	Path string `yaml:"path"`
	// Cost selects a grid step cost: unit, stay-east or stay-west.
	Cost string `yaml:"cost" validate:"omitempty,oneof=unit stay-east stay-west"`
}

type ServerConfig struct {
	Addr    string `yaml:"addr" validate:"required"`
	Metrics bool   `yaml:"metrics"`
}

var configValidate *validator.Validate

func init() {
	configValidate = validator.New()

	// Strategy, level and format names are checked by the same code that
	// consumes them.
	_ = configValidate.RegisterValidation("strategy", func(fl validator.FieldLevel) bool {
		_, err := graphsearch.ParseStrategy(fl.Field().String())
		return err == nil
	})
	_ = configValidate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, err := logging.ParseLevel(fl.Field().String())
		return err == nil
	})
	_ = configValidate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		return logging.ValidFormat(fl.Field().String())
	})
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Strategy:  string(graphsearch.AStar),
		Heuristic: "manhattan",
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatPretty,
		},
		Problem: ProblemConfig{
			Kind: KindGrid,
			Cost: "unit",
		},
		Server: ServerConfig{
			Addr:    ":8080",
			Metrics: true,
		},
	}
}

// Load reads path over the defaults and validates the result.
// Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks every enumerated field.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
