package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the working directory when --config is not given.
const DefaultConfigFile = "foldbench.yaml"

var ErrInvalidConfig = errors.New("invalid config")

// Config selects the pass chain and the benchmark input.
type Config struct {
	Passes   []string   `yaml:"passes"`
	Strategy string     `yaml:"strategy"`
	Spins    int        `yaml:"spins"`
	Bench    BenchShape `yaml:"bench"`
}

// BenchShape describes the synthetic benchmark program: Arguments copies of
// Value followed by Statements copies of Value.
type BenchShape struct {
	Arguments  int `yaml:"arguments"`
	Statements int `yaml:"statements"`
	Value      int `yaml:"value"`
}

// DefaultBenchShape is the input the go test benchmarks always use.
var DefaultBenchShape = BenchShape{
	Arguments:  100,
	Statements: 100000,
	Value:      1,
}

func DefaultConfig() *Config {
	return &Config{
		Passes:   []string{PassDedup, PassDummy},
		Strategy: string(StrategyPerPass),
		Spins:    DefaultSpins,
		Bench:    DefaultBenchShape,
	}
}

// LoadConfig reads a YAML config from path on top of DefaultConfig. A missing
// file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every pass and the strategy are known and that the
// benchmark shape is usable.
func (c *Config) Validate() error {
	for _, name := range c.Passes {
		if name != PassDedup && name != PassDummy {
			return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrUnknownPass, name)
		}
	}
	if _, err := ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Spins < 0 {
		return fmt.Errorf("%w: spins must not be negative, got %d", ErrInvalidConfig, c.Spins)
	}
	if c.Bench.Arguments < 0 || c.Bench.Statements < 0 {
		return fmt.Errorf("%w: bench sizes must not be negative", ErrInvalidConfig)
	}
	return nil
}

// PassOptions returns the options passes built from c should use.
func (c *Config) PassOptions() PassOptions {
	return PassOptions{Spins: c.Spins}
}
