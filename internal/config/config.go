package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gitcero/kinematic-arm-simulation/internal/solver"
)

const (
	DefaultLinks     = 2
	DefaultTargetX   = 3.0
	DefaultTargetY   = 1.0
	DefaultFrameRate = 30
	DefaultMaxTicks  = 200
	DefaultTheme     = "retro"
)

type Config struct {
	Links     int          `yaml:"links"`
	Target    TargetConfig `yaml:"target"`
	Solver    SolverConfig `yaml:"solver"`
	FrameRate int          `yaml:"fps"`
	MaxTicks  int          `yaml:"max_ticks"`
	Theme     string       `yaml:"theme"`
}

type TargetConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type SolverConfig struct {
	StepSize  float64 `yaml:"step_size"`
	MaxIters  int     `yaml:"max_iters"`
	Tolerance float64 `yaml:"tolerance"`
	Delta     float64 `yaml:"delta"`
}

func DefaultConfig() *Config {
	return &Config{
		Links:  DefaultLinks,
		Target: TargetConfig{X: DefaultTargetX, Y: DefaultTargetY},
		Solver: SolverConfig{
			StepSize:  solver.DefaultStepSize,
			MaxIters:  solver.DefaultMaxIters,
			Tolerance: solver.DefaultTolerance,
			Delta:     solver.DefaultDelta,
		},
		FrameRate: DefaultFrameRate,
		MaxTicks:  DefaultMaxTicks,
		Theme:     DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Links < 2 {
		return fmt.Errorf("links must be at least 2, got %d", c.Links)
	}
	if c.Solver.StepSize <= 0 {
		return fmt.Errorf("step_size must be positive, got %f", c.Solver.StepSize)
	}
	if c.Solver.MaxIters <= 0 {
		return fmt.Errorf("max_iters must be positive, got %d", c.Solver.MaxIters)
	}
	if c.Solver.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %f", c.Solver.Tolerance)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FrameRate)
	}
	return nil
}

// SolverOptions maps the config onto solver options.
func (c *Config) SolverOptions() solver.Options {
	return solver.Options{
		StepSize:  c.Solver.StepSize,
		MaxIters:  c.Solver.MaxIters,
		Tolerance: c.Solver.Tolerance,
		Delta:     c.Solver.Delta,
	}
}
