// Package config loads the optional quill.yaml project file that
// seeds the checker's lifetime universe and selects diagnostic
// rendering, mirroring the flat, no-magic style of the rest of the
// tree: one Load function, one struct, sane zero-value defaults.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Format selects how accumulated diagnostics are rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Lifetimes seeds the within-relation with predeclared named regions,
// so a unit can borrow against a lifetime it never locally introduces
// with a "block" statement (e.g. a request-scoped region a host
// embedding quillc declares ambient).
type Lifetimes struct {
	Within []string `yaml:"within"`
}

// Diagnostics controls how the CLI and pkg/quillc render errors.
type Diagnostics struct {
	Format Format `yaml:"format"`
}

// Config is the parsed shape of quill.yaml.
type Config struct {
	// StrictNullChecks is always true (§4.6 treats null as an ordinary
	// member of a union, never an implicit possibility) — kept as an
	// explicit field rather than removed, since relaxing it is a
	// plausible future knob, not a behavior this checker implements.
	StrictNullChecks bool        `yaml:"strictNullChecks"`
	Lifetimes        Lifetimes   `yaml:"lifetimes"`
	Diagnostics      Diagnostics `yaml:"diagnostics"`
}

// Default returns the configuration used when no quill.yaml is present.
func Default() *Config {
	return &Config{
		StrictNullChecks: true,
		Diagnostics:      Diagnostics{Format: FormatText},
	}
}

// Load reads and parses the quill.yaml file at path. A missing file is
// not an error: Load returns Default() so callers need no special
// casing for projects with no config file.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Diagnostics.Format == "" {
		cfg.Diagnostics.Format = FormatText
	}
	cfg.StrictNullChecks = true
	return cfg, nil
}
