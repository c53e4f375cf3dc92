// Package layout is the automatic graph layout engine for infrastructure
// diagrams: it converts an abstract spec of nodes and directed connections
// into concrete 2-D coordinates.
//
// The engine runs four phases over a spec:
//
//  1. Tier classification ([TierOf]) - maps each node's semantic type and
//     optional zone hint to one of four ordered tiers, used as the layering
//     fallback axis and as output metadata.
//  2. Layer assignment ([AssignLayers]) - longest-path layering from root
//     nodes via worklist relaxation, with tier-derived fallback layers for
//     edge-free graphs and nodes unreachable from any root.
//  3. Ordering ([OrderLayers]) - single-pass barycenter heuristic that
//     reduces edge crossings with stable tie-breaking.
//  4. Placement ([Place]) - fixed-spacing coordinates with columns compressed
//     over occupied layers and each column vertically centered on a shared
//     axis.
//
// [Layout] composes the phases into a single pure function; [Unlayout] is the
// reverse converter back to a spec. Both are side-effect free, hold no state
// between calls, and are safe for concurrent use. Worst-case cost is bounded
// by O(V+E) for layering plus O(V log V) per layer for ordering, well inside
// interactive latency for diagrams of a few hundred nodes.
//
// Malformed input never raises an error; see the individual phases for the
// degradation rules.
package layout
