// Package pkg provides the core libraries for Infraflow diagram layout.
//
// # Overview
//
// Infraflow turns abstract infrastructure specs into positioned diagrams:
// nodes are classified into security tiers, layered by dependency depth,
// ordered within layers to reduce edge crossings, and placed on a fixed
// grid. The pkg directory is organized into four main areas:
//
//  1. [spec] - The abstract diagram description and its JSON codec
//  2. [layout] - The layout engine (tiers, layering, ordering, placement)
//  3. [export] - Artifact generation (JSON, Graphviz DOT)
//  4. [pipeline] - Orchestration (load → layout → export) with caching
//
// # Architecture
//
// The typical data flow through Infraflow:
//
//	spec.json (nodes + connections)
//	         ↓
//	    [spec] package (parse, normalize, validate)
//	         ↓
//	    [layout] package (tier → layer → order → place)
//	         ↓
//	    [export] package (diagram JSON, DOT)
//
// The reverse direction also works: [layout.Unlayout] strips positions from
// a diagram and recovers the spec that describes it.
//
// # Quick Start
//
// Compute a layout and export it:
//
//	import (
//	    "github.com/dizzikim-dev/infraflow-sub006/pkg/export"
//	    "github.com/dizzikim-dev/infraflow-sub006/pkg/layout"
//	    "github.com/dizzikim-dev/infraflow-sub006/pkg/spec"
//	)
//
//	// 1. Load the spec
//	s, _ := spec.ReadSpecFile("infra.json")
//
//	// 2. Compute positions
//	d := layout.Build(s, layout.DefaultConfig())
//
//	// 3. Export
//	dot, _ := export.Export(d, export.FormatDOT)
//
// # Main Packages
//
// [spec] - The rendering-agnostic diagram description: typed nodes,
// directed connections, tiers, validation, and the JSON file format.
//
// [layout] - The layout engine. Pure functions only: tier classification,
// longest-path layering over the connection graph, barycenter crossing
// reduction, and grid placement. Crossing counts are exposed as a
// diagnostic.
//
// [export] - Converts positioned diagrams into artifacts: normalized
// diagram JSON and Graphviz DOT with pinned positions.
//
// [pipeline] - The load → layout → export pipeline shared by the CLI and
// the HTTP API, with per-stage caching keyed on content hashes.
//
// ## Infrastructure
//
// [cache] - Cache interface with file, redis, and null backends, plus the
// key derivation used by the pipeline.
//
// [errors] - Coded errors with user-facing messages.
//
// [observability] - Hook interfaces for pipeline, cache, and HTTP
// instrumentation; the server binds them to prometheus.
//
// [buildinfo] - Version metadata injected at build time via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/layout/...       # Layout engine only
//	go test -run Example ./pkg/... # Examples only
//
// [spec]: https://pkg.go.dev/github.com/dizzikim-dev/infraflow-sub006/pkg/spec
// [layout]: https://pkg.go.dev/github.com/dizzikim-dev/infraflow-sub006/pkg/layout
// [export]: https://pkg.go.dev/github.com/dizzikim-dev/infraflow-sub006/pkg/export
// [pipeline]: https://pkg.go.dev/github.com/dizzikim-dev/infraflow-sub006/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/dizzikim-dev/infraflow-sub006/pkg/cache
// [errors]: https://pkg.go.dev/github.com/dizzikim-dev/infraflow-sub006/pkg/errors
// [observability]: https://pkg.go.dev/github.com/dizzikim-dev/infraflow-sub006/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/dizzikim-dev/infraflow-sub006/pkg/buildinfo
// [layout.Unlayout]: https://pkg.go.dev/github.com/dizzikim-dev/infraflow-sub006/pkg/layout#Unlayout
package pkg
