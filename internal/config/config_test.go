package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Roots.Tolerance <= 0 {
		t.Error("tolerance should be positive")
	}
	if cfg.Roots.MaxIter <= 0 {
		t.Error("max iterations should be positive")
	}
	if cfg.MonteCarlo.Samples <= 0 {
		t.Error("sample count should be positive")
	}
	if cfg.ODE.HMin <= 0 {
		t.Error("minimum step should be positive")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numlab.yaml")

	cfg := DefaultConfig()
	cfg.Roots.Tolerance = 1e-10
	cfg.MonteCarlo.Seed = 42

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Roots.Tolerance != 1e-10 {
		t.Errorf("tolerance = %g, want 1e-10", loaded.Roots.Tolerance)
	}
	if loaded.MonteCarlo.Seed != 42 {
		t.Errorf("seed = %d, want 42", loaded.MonteCarlo.Seed)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("roots:\n  max_iter: 250\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Roots.MaxIter != 250 {
		t.Errorf("max_iter = %d, want 250", cfg.Roots.MaxIter)
	}
	if cfg.Roots.Tolerance != DefaultTolerance {
		t.Errorf("tolerance = %g, want default %g", cfg.Roots.Tolerance, DefaultTolerance)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/numlab.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
