package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dizzikim-dev/infraflow-sub006/pkg/cache"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/export"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/layout"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/observability"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/spec"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	s, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Spec = s
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = len(s.Nodes)
	result.Stats.EdgeCount = len(s.Connections)

	// Compute spec hash for cache keys and API responses
	if specData, err := spec.MarshalSpec(s); err == nil {
		result.SpecHash = cache.Hash(specData)
	}

	r.Logger.Info("loaded spec",
		"nodes", len(s.Nodes),
		"connections", len(s.Connections),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	d, layoutHit, err := r.BuildWithCacheInfo(ctx, s, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Diagram = d
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"nodes", len(d.Nodes),
		"edges", len(d.Edges),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Export
	exportStart := time.Now()
	artifacts, exportHit, err := r.ExportWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)
	result.CacheInfo.ExportHit = exportHit

	r.Logger.Info("exported artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// Load reads the spec from the configured source, fills missing node IDs, and
// optionally validates it. Loading is never cached: file reads are cheap and
// the spec may change between runs.
func (r *Runner) Load(ctx context.Context, opts Options) (spec.Spec, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return spec.Spec{}, err
	}
	r.applyLogger(&opts)

	source := opts.SpecPath
	if source == "" {
		source = "inline"
	}
	observability.Pipeline().OnLoadStart(ctx, source)
	start := time.Now()

	var s spec.Spec
	var err error
	if opts.SpecPath != "" {
		s, err = spec.ReadSpecFile(opts.SpecPath)
	} else {
		s = *opts.Spec
	}
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, source, 0, time.Since(start), err)
		return spec.Spec{}, err
	}

	if assigned := s.EnsureIDs(); assigned > 0 {
		r.Logger.Debug("assigned missing node ids", "count", assigned)
	}
	if opts.Strict {
		if err := s.Validate(); err != nil {
			observability.Pipeline().OnLoadComplete(ctx, source, len(s.Nodes), time.Since(start), err)
			return spec.Spec{}, err
		}
	}

	observability.Pipeline().OnLoadComplete(ctx, source, len(s.Nodes), time.Since(start), nil)
	return s, nil
}

// BuildWithCacheInfo computes the positioned diagram with caching and returns
// cache hit info.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, s spec.Spec, opts Options) (layout.Diagram, bool, error) {
	r.applyLogger(&opts)

	// Compute cache key
	specData, _ := spec.MarshalSpec(s)
	specHash := cache.Hash(specData)
	cacheKey := r.Keyer.LayoutKey(specHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := layout.ReadDiagram(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	// Compute layout
	observability.Pipeline().OnLayoutStart(ctx, len(s.Nodes))
	start := time.Now()
	d := layout.Build(s, opts.Layout)
	observability.Pipeline().OnLayoutComplete(ctx, len(s.Nodes), time.Since(start), nil)

	// Cache the result
	if data, err := layout.MarshalDiagram(d); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return d, false, nil // Cache miss
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and discards the cache hit info.
func (r *Runner) Build(ctx context.Context, s spec.Spec, opts Options) (layout.Diagram, error) {
	d, _, err := r.BuildWithCacheInfo(ctx, s, opts)
	return d, err
}

// ExportWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, d layout.Diagram, opts Options) (map[string][]byte, bool, error) {
	opts.SetExportDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from positioned output
	diagramData, err := layout.MarshalDiagram(d)
	if err != nil {
		return nil, false, fmt.Errorf("serialize diagram for cache key: %w", err)
	}
	layoutHash := cache.Hash(diagramData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ExportKey(layoutHash, opts.ExportKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "export")
		return artifacts, true, nil // All artifacts from cache
	}

	// Export all formats
	observability.Pipeline().OnExportStart(ctx, opts.Formats)
	start := time.Now()
	exported := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := export.Export(d, format)
		if err != nil {
			observability.Pipeline().OnExportComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}
		exported[format] = data
	}
	observability.Pipeline().OnExportComplete(ctx, opts.Formats, time.Since(start), nil)

	// Cache each format
	for format, data := range exported {
		cacheKey := r.Keyer.ExportKey(layoutHash, opts.ExportKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLExport)
		observability.Cache().OnCacheSet(ctx, "export", len(data))
	}

	return exported, false, nil // Cache miss
}

// Export is a convenience wrapper that calls ExportWithCacheInfo and discards the cache hit info.
func (r *Runner) Export(ctx context.Context, d layout.Diagram, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.ExportWithCacheInfo(ctx, d, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
