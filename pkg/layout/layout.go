package layout

import (
	"fmt"

	"github.com/dizzikim-dev/infraflow-sub006/pkg/spec"
)

// =============================================================================
// Positioned Types
// =============================================================================

// PositionedNode is a NodeSpec with resolved coordinates and tier, ready for
// rendering. It is created fresh on every Layout call and never mutated in
// place; a new call fully recomputes positions.
type PositionedNode struct {
	Node spec.NodeSpec `json:"node"`
	X    float64       `json:"x"`
	Y    float64       `json:"y"`
	Tier spec.Tier     `json:"tier"`
}

// Edge is a rendered connection with a deterministic identifier.
type Edge struct {
	ID       string        `json:"id"`
	Source   string        `json:"source"`
	Target   string        `json:"target"`
	FlowType spec.FlowType `json:"flowType,omitempty"`
	Label    string        `json:"label,omitempty"`
}

// =============================================================================
// Forward: Spec → Positioned
// =============================================================================

// Layout converts an abstract spec into positioned nodes and edges.
//
// Layout is a pure function: no I/O, no shared mutable state, no caching.
// Concurrent invocations are safe because every call allocates its own
// adjacency and position maps. The zero Config takes documented defaults.
//
// Output preserves input order: exactly one positioned node per input
// NodeSpec (no drops, no duplicates) and exactly one edge per input
// ConnectionSpec. Edge IDs derive from (source, target, index-in-list),
// which disambiguates parallel edges between the same pair.
//
// Malformed input degrades gracefully instead of failing: dangling
// connections survive in the edge list but are excluded from layering,
// unknown types fall back to the internal tier, and empty input yields
// empty output.
func Layout(s spec.Spec, cfg Config) ([]PositionedNode, []Edge) {
	layers := AssignLayers(s.Nodes, s.Connections)
	ordered := OrderLayers(s.Nodes, s.Connections, layers)
	points := Place(ordered, cfg)

	nodes := make([]PositionedNode, len(s.Nodes))
	for i, n := range s.Nodes {
		p := points[n.ID]
		nodes[i] = PositionedNode{
			Node: n,
			X:    p.X,
			Y:    p.Y,
			Tier: resolveTier(n),
		}
	}

	edges := make([]Edge, len(s.Connections))
	for i, c := range s.Connections {
		edges[i] = Edge{
			ID:       edgeID(c, i),
			Source:   c.Source,
			Target:   c.Target,
			FlowType: c.FlowType,
			Label:    c.Label,
		}
	}
	return nodes, edges
}

// edgeID builds the deterministic edge identifier from the connection's
// endpoints and its index in the spec's connection list.
func edgeID(c spec.ConnectionSpec, index int) string {
	return fmt.Sprintf("%s-%s-%d", c.Source, c.Target, index)
}

// =============================================================================
// Reverse: Positioned → Spec
// =============================================================================

// Unlayout reconstructs an abstract spec from positioned nodes and edges,
// discarding coordinates and retaining only semantic fields.
//
// The resolved tier is kept as an explicit override on each recovered node so
// that re-laying-out the result reproduces the same fallback columns even if
// zone hints were lost along the way. Nodes whose semantic data is absent or
// malformed get the generic placeholder type; Unlayout never fails.
//
// Round trip: Unlayout(Layout(s)) preserves s's node-id set and the multiset
// of (source, target) pairs, though internal ordering of other fields may
// normalize.
func Unlayout(nodes []PositionedNode, edges []Edge) spec.Spec {
	s := spec.Spec{
		Nodes:       make([]spec.NodeSpec, len(nodes)),
		Connections: make([]spec.ConnectionSpec, len(edges)),
	}

	for i, pn := range nodes {
		n := pn.Node
		n.Type = spec.ParseNodeType(string(n.Type))
		if tier, ok := spec.ParseTier(string(pn.Tier)); ok {
			n.Tier = tier
		}
		s.Nodes[i] = n
	}

	for i, e := range edges {
		s.Connections[i] = spec.ConnectionSpec{
			Source:   e.Source,
			Target:   e.Target,
			FlowType: e.FlowType,
			Label:    e.Label,
		}
	}
	return s
}
