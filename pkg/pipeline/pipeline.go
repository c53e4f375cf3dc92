// Package pipeline provides the core layout pipeline for InfraFlow.
//
// This package implements the complete load → layout → export pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and validate an abstract spec (file, reader, or in-memory)
//  2. Layout: Compute positions for every node (tiering, layering, ordering)
//  3. Export: Generate output artifacts (JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    SpecPath: "diagram.json",
//	    Formats:  []string{"json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	artifact := result.Artifacts["json"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dizzikim-dev/infraflow-sub006/pkg/cache"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/errors"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/export"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/layout"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/spec"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one spec source must be set: a file path or an
	// in-memory spec.
	SpecPath string     `json:"spec_path,omitempty"`
	Spec     *spec.Spec `json:"spec,omitempty"`

	// Strict rejects specs that fail validation instead of relying on the
	// engine's graceful degradation.
	Strict bool `json:"strict,omitempty"`

	// Layout options.
	Layout layout.Config `json:"layout,omitempty"`

	// Export options.
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses cache reads (results are still written back).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Spec is the loaded (and possibly ID-completed) abstract spec.
	Spec spec.Spec

	// SpecHash is the content hash of the loaded spec.
	SpecHash string

	// Diagram is the positioned output.
	Diagram layout.Diagram

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	ExportTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether positioned output came from cache
	ExportHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	for _, f := range export.Formats {
		if f == format {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, dot)", format)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetExportDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for the load stage.
func (o *Options) ValidateForLoad() error {
	if o.SpecPath == "" && o.Spec == nil {
		return errors.New(errors.ErrCodeInvalidInput, "spec_path or spec is required")
	}
	if o.SpecPath != "" && o.Spec != nil {
		return errors.New(errors.ErrCodeInvalidInput, "spec_path and spec are mutually exclusive")
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetExportDefaults sets default values for the export stage.
func (o *Options) SetExportDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{export.FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		NodeWidth:     o.Layout.NodeWidth,
		NodeHeight:    o.Layout.NodeHeight,
		HorizontalGap: o.Layout.HorizontalGap,
		VerticalGap:   o.Layout.VerticalGap,
		StartX:        o.Layout.StartX,
		StartY:        o.Layout.StartY,
	}
}

// ExportKeyOpts returns cache key options for artifact export.
func (o *Options) ExportKeyOpts(format string) cache.ExportKeyOpts {
	return cache.ExportKeyOpts{Format: format}
}
