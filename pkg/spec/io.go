package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Spec Serialization API
// =============================================================================

// MarshalSpec converts a Spec to indented JSON bytes.
func MarshalSpec(s Spec) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeSpecTo(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSpecFile writes a Spec to a JSON file.
// The file is created with 0644 permissions.
func WriteSpecFile(s Spec, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeSpecTo(s, f)
}

// WriteSpec writes a Spec as JSON to an io.Writer.
func WriteSpec(s Spec, w io.Writer) error {
	return writeSpecTo(s, w)
}

// ReadSpecFile reads a JSON file and returns the decoded Spec.
func ReadSpecFile(path string) (Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return Spec{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readSpecFrom(f)
}

// ReadSpec decodes a JSON spec from an io.Reader.
// Node types are normalized into the closed NodeType set on the way in so
// downstream code never sees an out-of-enumeration type.
func ReadSpec(r io.Reader) (Spec, error) {
	return readSpecFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeSpecTo(s Spec, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readSpecFrom(r io.Reader) (Spec, error) {
	var s Spec
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Spec{}, fmt.Errorf("decode: %w", err)
	}
	for i := range s.Nodes {
		s.Nodes[i].Type = ParseNodeType(string(s.Nodes[i].Type))
	}
	return s, nil
}
