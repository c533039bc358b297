package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "quill.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.StrictNullChecks {
		t.Errorf("expected StrictNullChecks true by default")
	}
	if cfg.Diagnostics.Format != FormatText {
		t.Errorf("expected default format %q, got %q", FormatText, cfg.Diagnostics.Format)
	}
}

func TestLoadParsesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill.yaml")
	contents := `
strictNullChecks: true
lifetimes:
  within:
    - request
    - session
diagnostics:
  format: json
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Diagnostics.Format != FormatJSON {
		t.Errorf("expected format json, got %q", cfg.Diagnostics.Format)
	}
	want := []string{"request", "session"}
	if len(cfg.Lifetimes.Within) != len(want) {
		t.Fatalf("expected %d lifetimes, got %d", len(want), len(cfg.Lifetimes.Within))
	}
	for i, w := range want {
		if cfg.Lifetimes.Within[i] != w {
			t.Errorf("lifetime %d: want %q, got %q", i, w, cfg.Lifetimes.Within[i])
		}
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill.yaml")
	if err := os.WriteFile(path, []byte("strictNullChecks: [this is not a bool"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("expected error for malformed yaml")
	}
}
