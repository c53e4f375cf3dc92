package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dizzikim-dev/infraflow-sub006/pkg/spec"
)

// Diagram is the serialization envelope for a positioned layout: the output
// of Layout together with the spacing config that produced it. Used for file
// output, API responses, and caching.
type Diagram struct {
	Nodes  []PositionedNode `json:"nodes"`
	Edges  []Edge           `json:"edges"`
	Config Config           `json:"config"`
}

// Build runs the full layout over a spec and wraps the result in a Diagram.
func Build(s spec.Spec, cfg Config) Diagram {
	nodes, edges := Layout(s, cfg)
	return Diagram{Nodes: nodes, Edges: edges, Config: cfg.withDefaults()}
}

// Spec reverses the diagram back into an abstract spec via Unlayout.
func (d Diagram) Spec() spec.Spec {
	return Unlayout(d.Nodes, d.Edges)
}

// MarshalDiagram converts a Diagram to indented JSON bytes.
func MarshalDiagram(d Diagram) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDiagramTo(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDiagramFile writes a Diagram to a JSON file.
// The file is created with 0644 permissions.
func WriteDiagramFile(d Diagram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeDiagramTo(d, f)
}

// WriteDiagram writes a Diagram as JSON to an io.Writer.
func WriteDiagram(d Diagram, w io.Writer) error {
	return writeDiagramTo(d, w)
}

// ReadDiagramFile reads a JSON file and returns the decoded Diagram.
func ReadDiagramFile(path string) (Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return Diagram{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDiagram(f)
}

// ReadDiagram decodes a JSON diagram from an io.Reader.
func ReadDiagram(r io.Reader) (Diagram, error) {
	var d Diagram
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Diagram{}, fmt.Errorf("decode: %w", err)
	}
	return d, nil
}

func writeDiagramTo(d Diagram, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
