package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	trace := &Trace{
		Columns: []string{"iter", "x", "f(x)"},
		Rows: [][]float64{
			{0, 1.5, 0.25},
			{1, 1.4167, 0.0069},
		},
	}

	runID, err := st.Save("root", "newton", "x^2 - 2",
		map[string]float64{"x0": 1.5, "tol": 1e-6},
		map[string]float64{"root": 1.41421356},
		trace)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Kind != "root" {
		t.Errorf("expected kind 'root', got '%s'", meta.Kind)
	}

	if meta.Expression != "x^2 - 2" {
		t.Errorf("expected expression 'x^2 - 2', got '%s'", meta.Expression)
	}

	if meta.Results["root"] != 1.41421356 {
		t.Errorf("expected root 1.41421356, got %f", meta.Results["root"])
	}

	loaded, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}

	if len(loaded.Rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(loaded.Rows))
	}

	if len(loaded.Columns) != 3 {
		t.Errorf("expected 3 columns, got %d", len(loaded.Columns))
	}

	if loaded.Rows[1][1] != 1.4167 {
		t.Errorf("expected x 1.4167, got %g", loaded.Rows[1][1])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	_, err = st.Save("integral", "simpson13", "sin(x)", nil,
		map[string]float64{"value": 2.0}, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	trace := &Trace{Columns: []string{"n", "estimate"}, Rows: [][]float64{{10, 0.5}}}

	runID, err := st.Save("montecarlo", "uniform", "x*y", nil, nil, trace)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)

	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}

	if _, err := os.Stat(filepath.Join(runDir, "trace.csv")); os.IsNotExist(err) {
		t.Error("trace.csv not created")
	}
}

func TestStoreNoTraceSkipsCSV(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("diff", "central", "cos(x)", nil,
		map[string]float64{"derivative": -0.84147}, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, runID, "trace.csv")); !os.IsNotExist(err) {
		t.Error("trace.csv created for traceless run")
	}
}
