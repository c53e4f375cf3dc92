package layout

import (
	"slices"
	"testing"

	"github.com/dizzikim-dev/infraflow-sub006/pkg/spec"
)

func TestOrderLayers_AnchorLayerKeepsInsertionOrder(t *testing.T) {
	nodes := nodesOf("b", "a", "c", "x", "y")
	conns := []spec.ConnectionSpec{conn("b", "x"), conn("a", "y"), conn("c", "y")}

	layers := AssignLayers(nodes, conns)
	ordered := OrderLayers(nodes, conns, layers)

	if got, want := ordered[0], []string{"b", "a", "c"}; !slices.Equal(got, want) {
		t.Errorf("layer 0 = %v, want insertion order %v", got, want)
	}
}

func TestOrderLayers_BarycenterUncrossesEdges(t *testing.T) {
	// a→d and b→c cross when layer 1 keeps insertion order [c, d].
	// Barycenters: c←b (pos 1), d←a (pos 0), so the sorted order is [d, c].
	nodes := nodesOf("a", "b", "c", "d")
	conns := []spec.ConnectionSpec{conn("a", "d"), conn("b", "c")}

	layers := AssignLayers(nodes, conns)
	ordered := OrderLayers(nodes, conns, layers)

	if got, want := ordered[1], []string{"d", "c"}; !slices.Equal(got, want) {
		t.Errorf("layer 1 = %v, want barycenter order %v", got, want)
	}
	if got := CountCrossings(ordered, conns); got != 0 {
		t.Errorf("CountCrossings() = %d after ordering, want 0", got)
	}
}

func TestOrderLayers_TieKeepsOriginalOrder(t *testing.T) {
	// x and y share the identical predecessor set {r1, r2}: equal
	// barycenters must preserve the insertion order x before y.
	nodes := nodesOf("r1", "r2", "x", "y")
	conns := []spec.ConnectionSpec{
		conn("r1", "x"), conn("r2", "x"),
		conn("r1", "y"), conn("r2", "y"),
	}

	layers := AssignLayers(nodes, conns)
	ordered := OrderLayers(nodes, conns, layers)

	if got, want := ordered[1], []string{"x", "y"}; !slices.Equal(got, want) {
		t.Errorf("layer 1 = %v, want stable tie order %v", got, want)
	}
}

func TestOrderLayers_LongEdgePredecessorIgnored(t *testing.T) {
	// tail has predecessors mid (layer 1) and b (layer 0). Only the layer-1
	// predecessor may contribute to tail's barycenter; the long edge from b
	// must be skipped rather than polluting the mean with a stale position.
	nodes := nodesOf("a", "b", "mid", "tail")
	conns := []spec.ConnectionSpec{
		conn("a", "mid"), conn("mid", "tail"), conn("b", "tail"),
	}

	layers := AssignLayers(nodes, conns)
	if layers["tail"] != 2 || layers["b"] != 0 {
		t.Fatalf("unexpected layers %v", layers)
	}

	ordered := OrderLayers(nodes, conns, layers)
	if got, want := ordered[2], []string{"tail"}; !slices.Equal(got, want) {
		t.Errorf("layer 2 = %v, want %v", got, want)
	}
}

func TestOrderLayers_MixedPredecessorsSortAheadOfInfinity(t *testing.T) {
	// Layer 1 holds "wired" (predecessor in layer 0) and "adrift" (tier
	// fallback placed it in layer 1, no predecessors at all). The node with
	// a finite barycenter must come first regardless of insertion order.
	nodes := []spec.NodeSpec{
		{ID: "adrift", Type: spec.TypeFirewall}, // dmz fallback -> layer 1
		{ID: "root", Type: spec.TypeServer},
		{ID: "wired", Type: spec.TypeServer},
	}
	conns := []spec.ConnectionSpec{conn("root", "wired")}

	layers := AssignLayers(nodes, conns)
	if layers["adrift"] != 1 || layers["wired"] != 1 {
		t.Fatalf("unexpected layers %v", layers)
	}

	ordered := OrderLayers(nodes, conns, layers)
	if got, want := ordered[1], []string{"wired", "adrift"}; !slices.Equal(got, want) {
		t.Errorf("layer 1 = %v, want %v (finite barycenter first)", got, want)
	}
}

func TestCountLayerCrossings(t *testing.T) {
	forward := map[string][]string{"a": {"d"}, "b": {"c"}}
	if got := CountLayerCrossings([]string{"a", "b"}, []string{"c", "d"}, forward); got != 1 {
		t.Errorf("CountLayerCrossings() = %d, want 1", got)
	}
	if got := CountLayerCrossings([]string{"a", "b"}, []string{"d", "c"}, forward); got != 0 {
		t.Errorf("CountLayerCrossings() after swap = %d, want 0", got)
	}
	if got := CountLayerCrossings(nil, []string{"c"}, forward); got != 0 {
		t.Errorf("CountLayerCrossings(empty) = %d, want 0", got)
	}
}
