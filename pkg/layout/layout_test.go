package layout

import (
	"reflect"
	"testing"

	"github.com/dizzikim-dev/infraflow-sub006/pkg/spec"
)

// chainSpec builds the a→b→c scenario used across tests.
func chainSpec() spec.Spec {
	return spec.Spec{
		Nodes: nodesOf("a", "b", "c"),
		Connections: []spec.ConnectionSpec{
			conn("a", "b"), conn("b", "c"),
		},
	}
}

func positionOf(nodes []PositionedNode, id string) (PositionedNode, bool) {
	for _, n := range nodes {
		if n.Node.ID == id {
			return n, true
		}
	}
	return PositionedNode{}, false
}

func TestLayout_ChainScenario(t *testing.T) {
	nodes, edges := Layout(chainSpec(), Config{})

	if len(nodes) != 3 || len(edges) != 2 {
		t.Fatalf("got %d nodes / %d edges, want 3 / 2", len(nodes), len(edges))
	}

	a, _ := positionOf(nodes, "a")
	b, _ := positionOf(nodes, "b")
	c, _ := positionOf(nodes, "c")

	if !(a.X < b.X && b.X < c.X) {
		t.Errorf("x order = %v < %v < %v violated", a.X, b.X, c.X)
	}
	if a.Y != b.Y || b.Y != c.Y {
		t.Errorf("y positions differ along a single chain: %v/%v/%v", a.Y, b.Y, c.Y)
	}
}

func TestLayout_FanOutScenario(t *testing.T) {
	s := spec.Spec{
		Nodes: nodesOf("a", "b", "c"),
		Connections: []spec.ConnectionSpec{
			conn("a", "b"), conn("a", "c"),
		},
	}

	nodes, _ := Layout(s, Config{})

	a, _ := positionOf(nodes, "a")
	b, _ := positionOf(nodes, "b")
	c, _ := positionOf(nodes, "c")

	if b.X != c.X {
		t.Errorf("b and c should share a column: %v vs %v", b.X, c.X)
	}
	if b.Y == c.Y {
		t.Error("b and c should have distinct y positions")
	}
	// Symmetric about a's y.
	if (a.Y-b.Y) != (c.Y-a.Y) {
		t.Errorf("children not symmetric about parent: a=%v b=%v c=%v", a.Y, b.Y, c.Y)
	}
}

func TestLayout_TierFallbackScenario(t *testing.T) {
	s := spec.Spec{
		Nodes: []spec.NodeSpec{
			{ID: "db", Type: spec.TypeDatabase},
			{ID: "net", Type: spec.TypeInternet},
			{ID: "fw", Type: spec.TypeFirewall},
		},
	}

	nodes, edges := Layout(s, Config{})

	if len(edges) != 0 {
		t.Fatalf("got %d edges, want 0", len(edges))
	}

	net, _ := positionOf(nodes, "net")
	fw, _ := positionOf(nodes, "fw")
	db, _ := positionOf(nodes, "db")

	if !(net.X < fw.X && fw.X < db.X) {
		t.Errorf("tier x order violated: external=%v dmz=%v data=%v", net.X, fw.X, db.X)
	}
	if net.Tier != spec.TierExternal || fw.Tier != spec.TierDMZ || db.Tier != spec.TierData {
		t.Errorf("resolved tiers = %v/%v/%v", net.Tier, fw.Tier, db.Tier)
	}
}

func TestLayout_DanglingEdgePassesThrough(t *testing.T) {
	s := spec.Spec{
		Nodes: nodesOf("a", "b"),
		Connections: []spec.ConnectionSpec{
			conn("a", "b"),
			conn("a", "missing"),
		},
	}

	nodes, edges := Layout(s, Config{})

	// The dangling edge is excluded from layering but survives as a
	// rendering edge; host policy decides what to do with it.
	if len(nodes) != 2 || len(edges) != 2 {
		t.Fatalf("got %d nodes / %d edges, want 2 / 2", len(nodes), len(edges))
	}

	a, _ := positionOf(nodes, "a")
	b, _ := positionOf(nodes, "b")
	if !(a.X < b.X) {
		t.Errorf("layering corrupted by dangling edge: a=%v b=%v", a.X, b.X)
	}
}

func TestLayout_EmptySpec(t *testing.T) {
	nodes, edges := Layout(spec.Spec{}, Config{})
	if len(nodes) != 0 || len(edges) != 0 {
		t.Errorf("got %d nodes / %d edges, want empty output", len(nodes), len(edges))
	}
}

func TestLayout_PreservesInputOrderAndCount(t *testing.T) {
	s := spec.Spec{
		Nodes: nodesOf("z", "m", "a", "q"),
		Connections: []spec.ConnectionSpec{
			conn("z", "a"), conn("m", "q"),
		},
	}

	nodes, _ := Layout(s, Config{})

	if len(nodes) != len(s.Nodes) {
		t.Fatalf("got %d nodes, want %d", len(nodes), len(s.Nodes))
	}
	for i, n := range nodes {
		if n.Node.ID != s.Nodes[i].ID {
			t.Errorf("output[%d] = %s, want input order %s", i, n.Node.ID, s.Nodes[i].ID)
		}
	}
}

func TestLayout_Stability(t *testing.T) {
	s := spec.Spec{
		Nodes: nodesOf("a", "b", "c", "d", "e"),
		Connections: []spec.ConnectionSpec{
			conn("a", "c"), conn("b", "c"), conn("c", "d"), conn("c", "e"),
		},
	}

	n1, e1 := Layout(s, Config{})
	n2, e2 := Layout(s, Config{})

	if !reflect.DeepEqual(n1, n2) {
		t.Error("positions differ across identical layout calls")
	}
	if !reflect.DeepEqual(e1, e2) {
		t.Error("edges differ across identical layout calls")
	}
}

func TestLayout_ParallelEdgeIDsAreDistinct(t *testing.T) {
	s := spec.Spec{
		Nodes: nodesOf("a", "b"),
		Connections: []spec.ConnectionSpec{
			conn("a", "b"), conn("a", "b"),
		},
	}

	_, edges := Layout(s, Config{})

	if edges[0].ID == edges[1].ID {
		t.Errorf("parallel edges share id %q", edges[0].ID)
	}
}

func TestUnlayout_RoundTrip(t *testing.T) {
	s := spec.Spec{
		Nodes: []spec.NodeSpec{
			{ID: "net", Type: spec.TypeInternet, Label: "Internet"},
			{ID: "fw", Type: spec.TypeFirewall, Zone: "dmz"},
			{ID: "db", Type: spec.TypeDatabase, Description: "primary"},
		},
		Connections: []spec.ConnectionSpec{
			{Source: "net", Target: "fw", FlowType: spec.FlowRequest},
			{Source: "fw", Target: "db", FlowType: spec.FlowEncrypted, Label: "tls"},
		},
	}

	nodes, edges := Layout(s, Config{})
	got := Unlayout(nodes, edges)

	if len(got.Nodes) != len(s.Nodes) {
		t.Fatalf("round trip node count = %d, want %d", len(got.Nodes), len(s.Nodes))
	}
	for i, n := range got.Nodes {
		orig := s.Nodes[i]
		if n.ID != orig.ID || n.Type != orig.Type || n.Label != orig.Label ||
			n.Zone != orig.Zone || n.Description != orig.Description {
			t.Errorf("node %d semantic fields changed: %+v vs %+v", i, n, orig)
		}
	}
	if len(got.Connections) != len(s.Connections) {
		t.Fatalf("round trip connection count = %d, want %d", len(got.Connections), len(s.Connections))
	}
	for i, c := range got.Connections {
		orig := s.Connections[i]
		if c.Source != orig.Source || c.Target != orig.Target ||
			c.FlowType != orig.FlowType || c.Label != orig.Label {
			t.Errorf("connection %d changed: %+v vs %+v", i, c, orig)
		}
	}
}

func TestUnlayout_MalformedNodeGetsPlaceholderType(t *testing.T) {
	nodes := []PositionedNode{
		{Node: spec.NodeSpec{ID: "mystery"}, X: 1, Y: 2}, // no type at all
		{Node: spec.NodeSpec{ID: "odd", Type: spec.NodeType("no-such-type")}},
	}

	got := Unlayout(nodes, nil)

	if got.Nodes[0].Type != spec.TypeGeneric {
		t.Errorf("missing type resolved to %q, want %q", got.Nodes[0].Type, spec.TypeGeneric)
	}
	if got.Nodes[1].Type != spec.TypeGeneric {
		t.Errorf("unknown type resolved to %q, want %q", got.Nodes[1].Type, spec.TypeGeneric)
	}
}

func TestUnlayout_KeepsResolvedTierAsOverride(t *testing.T) {
	s := spec.Spec{
		Nodes: []spec.NodeSpec{{ID: "fw", Type: spec.TypeFirewall, Zone: "edge"}},
	}

	nodes, edges := Layout(s, Config{})
	got := Unlayout(nodes, edges)

	if got.Nodes[0].Tier != spec.TierDMZ {
		t.Errorf("recovered tier = %q, want resolved override %q", got.Nodes[0].Tier, spec.TierDMZ)
	}
}

func TestBuild_DiagramRoundTrip(t *testing.T) {
	d := Build(chainSpec(), Config{})

	if len(d.Nodes) != 3 || len(d.Edges) != 2 {
		t.Fatalf("diagram has %d nodes / %d edges", len(d.Nodes), len(d.Edges))
	}
	if d.Config.HorizontalGap != DefaultHorizontalGap {
		t.Errorf("config not defaulted: %+v", d.Config)
	}

	back := d.Spec()
	if len(back.Nodes) != 3 || len(back.Connections) != 2 {
		t.Errorf("Spec() round trip lost elements: %+v", back)
	}
}
