package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is the flat JSON shape for sharing a run outside the store.
type ExportData struct {
	Kind       string             `json:"kind"`
	Method     string             `json:"method"`
	Expression string             `json:"expression"`
	Params     map[string]float64 `json:"params"`
	Results    map[string]float64 `json:"results"`
	Columns    []string           `json:"columns,omitempty"`
	Rows       [][]float64        `json:"rows,omitempty"`
}

func ExportJSON(path string, meta *RunMetadata, trace *Trace) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return exportJSON(file, meta, trace)
}

func ExportJSONStdout(meta *RunMetadata, trace *Trace) error {
	return exportJSON(os.Stdout, meta, trace)
}

func exportJSON(w io.Writer, meta *RunMetadata, trace *Trace) error {
	data := ExportData{
		Kind:       meta.Kind,
		Method:     meta.Method,
		Expression: meta.Expression,
		Params:     meta.Params,
		Results:    meta.Results,
	}
	if trace != nil {
		data.Columns = trace.Columns
		data.Rows = trace.Rows
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
