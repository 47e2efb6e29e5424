// Package config provides YAML-backed run configuration for the specgo CLI.
// It mirrors the analysis options recognized by the mcr models and applies
// the same validation rules, so a bad configuration file fails before any
// data is loaded.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chemolab/specgo/mcr"
	gerrors "github.com/chemolab/specgo/pkg/errors"
)

// Run holds the options of one analysis run.
type Run struct {
	// Interactive enables stepwise operator-driven selection.
	Interactive bool `yaml:"interactive"`

	// NComponents is the maximum number of pure compounds sought.
	NComponents int `yaml:"n_components"`

	// Tol is the convergence criterion on the percent of unexplained
	// variance. Only used in non-interactive runs.
	Tol float64 `yaml:"tol"`

	// Noise is the correction factor in percent for low-intensity
	// variables.
	Noise float64 `yaml:"noise"`

	// Verbose mirrors iteration summaries to the structured log.
	Verbose bool `yaml:"verbose"`

	// RCond is the singular-value cutoff of the least-squares solver.
	RCond float64 `yaml:"rcond"`
}

// Default returns the standard run configuration.
func Default() Run {
	return Run{
		Interactive: false,
		NComponents: 2,
		Tol:         0.1,
		Noise:       3,
		Verbose:     true,
		RCond:       1e-15,
	}
}

// Load reads a run configuration from a YAML file, overlaying the defaults.
// A missing file returns the defaults unchanged.
func Load(path string) (Run, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, gerrors.Wrapf(err, "config: reading %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, gerrors.Wrapf(err, "config: parsing %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate applies the constructor rules of the mcr models.
func (r Run) Validate() error {
	if r.NComponents < 2 {
		return gerrors.NewConfigurationError("n_components", "must be at least 2", r.NComponents)
	}
	if r.Tol <= 0 {
		return gerrors.NewConfigurationError("tol", "must be positive", r.Tol)
	}
	if r.Noise < 0 {
		return gerrors.NewConfigurationError("noise", "must be non-negative", r.Noise)
	}
	if r.RCond <= 0 {
		return gerrors.NewConfigurationError("rcond", "must be positive", r.RCond)
	}
	return nil
}

// Options translates the configuration into mcr functional options.
func (r Run) Options() []mcr.Option {
	return []mcr.Option{
		mcr.WithInteractive(r.Interactive),
		mcr.WithNComponents(r.NComponents),
		mcr.WithTol(r.Tol),
		mcr.WithNoise(r.Noise),
		mcr.WithVerbose(r.Verbose),
		mcr.WithRCond(r.RCond),
	}
}

// Save writes the configuration to a YAML file.
func Save(path string, r Run) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return gerrors.Wrap(err, "config: marshaling")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return gerrors.Wrapf(err, "config: writing %s", path)
	}
	return nil
}
