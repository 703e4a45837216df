// Package render — JSON renderer.
// Serializes the full report, including both frequency maps, as indented JSON.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/pagestat/core"
)

// JSONRenderer produces structured JSON output from a Report.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts the report into indented JSON. Map keys are emitted in
// sorted order by encoding/json, so output is stable for a given input.
func (r *JSONRenderer) Render(report *core.Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
