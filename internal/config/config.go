// Package config carries the default numeric parameters for the engines
// as an explicit struct: nothing here is ambient state, the CLI loads a
// Config and threads its values into each engine call.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTolerance  = 1e-6
	DefaultMaxIter    = 100
	DefaultDiffStep   = 1e-4
	DefaultODENodes   = 101
	DefaultODETol     = 1e-6
	DefaultODEHMin    = 1e-10
	DefaultSamples    = 10_000
	DefaultMaxError   = 0.05
	DefaultTraceRows  = 15
	DefaultPlotHeight = 12
)

type Config struct {
	Roots      RootsConfig      `yaml:"roots"`
	Quadrature QuadratureConfig `yaml:"quadrature"`
	ODE        ODEConfig        `yaml:"ode"`
	Diff       DiffConfig       `yaml:"diff"`
	MonteCarlo MonteCarloConfig `yaml:"monte_carlo"`
	Display    DisplayConfig    `yaml:"display"`
}

type RootsConfig struct {
	Tolerance float64 `yaml:"tolerance"`
	MaxIter   int     `yaml:"max_iter"`
}

type QuadratureConfig struct {
	Subdivisions int `yaml:"subdivisions"`
}

type ODEConfig struct {
	Nodes     int     `yaml:"nodes"`
	Tolerance float64 `yaml:"tolerance"`
	HMin      float64 `yaml:"h_min"`
	HMax      float64 `yaml:"h_max"`
}

type DiffConfig struct {
	Step float64 `yaml:"step"`
}

type MonteCarloConfig struct {
	Samples  int     `yaml:"samples"`
	MaxError float64 `yaml:"max_error"`
	Seed     int64   `yaml:"seed"`
}

type DisplayConfig struct {
	TraceRows  int `yaml:"trace_rows"`
	PlotHeight int `yaml:"plot_height"`
}

func DefaultConfig() *Config {
	return &Config{
		Roots:      RootsConfig{Tolerance: DefaultTolerance, MaxIter: DefaultMaxIter},
		Quadrature: QuadratureConfig{Subdivisions: 100},
		ODE:        ODEConfig{Nodes: DefaultODENodes, Tolerance: DefaultODETol, HMin: DefaultODEHMin},
		Diff:       DiffConfig{Step: DefaultDiffStep},
		MonteCarlo: MonteCarloConfig{Samples: DefaultSamples, MaxError: DefaultMaxError},
		Display:    DisplayConfig{TraceRows: DefaultTraceRows, PlotHeight: DefaultPlotHeight},
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
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
