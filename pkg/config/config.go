// Package config loads and validates solver configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-thermosim/pkg/sim"
)

// ErrInvalidConfig reports a configuration that failed validation
var ErrInvalidConfig = errors.New("invalid configuration")

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Solver holds the solver tolerances and iteration cap
type Solver struct {
	StopCriterionEnergy   float64 `yaml:"stop_criterion_energy" validate:"gt=0"`
	StopCriterionMomentum float64 `yaml:"stop_criterion_momentum" validate:"gt=0"`
	StopCriterionMass     float64 `yaml:"stop_criterion_mass" validate:"gt=0"`
	StopCriterionSignal   float64 `yaml:"stop_criterion_signal" validate:"gt=0"`
	MaxIterations         int     `yaml:"max_iterations" validate:"gte=1"`
}

// Export holds the tabular export settings
type Export struct {
	DecimalComma bool   `yaml:"decimal_comma"`
	OutputPath   string `yaml:"output_path"`
}

// Config is the root configuration document
type Config struct {
	Solver Solver `yaml:"solver"`
	Export Export `yaml:"export"`
	Strict bool   `yaml:"strict"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Solver: Solver{
			StopCriterionEnergy:   1.0,
			StopCriterionMomentum: 1.0,
			StopCriterionMass:     0.001,
			StopCriterionSignal:   0.001,
			MaxIterations:         1000,
		},
		Export: Export{
			DecimalComma: true,
		},
	}
}

// Load reads and validates a YAML configuration file. Fields absent from the
// file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration bytes
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, formatValidationErrors(verrs))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// SimConfig converts the solver section into the solver's option struct
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		StopCriterionEnergy:   c.Solver.StopCriterionEnergy,
		StopCriterionMomentum: c.Solver.StopCriterionMomentum,
		StopCriterionMass:     c.Solver.StopCriterionMass,
		StopCriterionSignal:   c.Solver.StopCriterionSignal,
		MaxIterations:         c.Solver.MaxIterations,
	}
}

func formatValidationErrors(verrs validator.ValidationErrors) string {
	msg := ""
	for i, fe := range verrs {
		if i > 0 {
			msg += "; "
		}
		msg += fmt.Sprintf("field %s failed rule %q", fe.Namespace(), fe.Tag())
	}
	return msg
}
