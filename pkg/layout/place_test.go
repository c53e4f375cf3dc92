package layout

import (
	"testing"
)

func TestPlace_ColumnsAdvanceByRank(t *testing.T) {
	ordered := map[int][]string{
		0: {"a"},
		1: {"b"},
		2: {"c"},
	}
	cfg := Config{HorizontalGap: 100, VerticalGap: 50, StartX: 10, StartY: 20}

	points := Place(ordered, cfg)

	if points["a"].X != 10 || points["b"].X != 110 || points["c"].X != 210 {
		t.Errorf("x positions = %v/%v/%v, want 10/110/210",
			points["a"].X, points["b"].X, points["c"].X)
	}
	// Single-node layers all sit on the shared axis.
	if points["a"].Y != points["b"].Y || points["b"].Y != points["c"].Y {
		t.Errorf("y positions differ across single-node layers: %v", points)
	}
}

func TestPlace_SparseLayerKeysCompress(t *testing.T) {
	// Layers 0 and 5 occupied, nothing in between: the second column sits at
	// rank 1, not rank 5 - empty layers never produce blank columns.
	ordered := map[int][]string{
		0: {"a"},
		5: {"b"},
	}
	cfg := Config{HorizontalGap: 100, StartX: 0, StartY: 10, VerticalGap: 50}

	points := Place(ordered, cfg)

	if got := points["b"].X - points["a"].X; got != 100 {
		t.Errorf("column gap = %v, want one horizontalGap (100)", got)
	}
}

func TestPlace_LayersCenterOnSharedAxis(t *testing.T) {
	ordered := map[int][]string{
		0: {"a"},
		1: {"b", "c", "d"},
	}
	cfg := Config{HorizontalGap: 100, VerticalGap: 40, StartX: 0, StartY: 100}

	points := Place(ordered, cfg)

	// Tallest layer has 3 nodes: centerY = 100 + (3-1)*40/2 = 140.
	if points["a"].Y != 140 {
		t.Errorf("single-node layer y = %v, want axis 140", points["a"].Y)
	}
	if points["b"].Y != 100 || points["c"].Y != 140 || points["d"].Y != 180 {
		t.Errorf("layer 1 y = %v/%v/%v, want 100/140/180",
			points["b"].Y, points["c"].Y, points["d"].Y)
	}
	// b and d are symmetric about the axis.
	if (points["c"].Y-points["b"].Y) != (points["d"].Y-points["c"].Y) {
		t.Error("layer 1 is not centered on the shared axis")
	}
}

func TestPlace_ZeroConfigTakesDefaults(t *testing.T) {
	points := Place(map[int][]string{0: {"a"}}, Config{})

	if points["a"].X != DefaultStartX {
		t.Errorf("x = %v, want default start %v", points["a"].X, DefaultStartX)
	}
	if points["a"].Y != DefaultStartY {
		t.Errorf("y = %v, want default start %v", points["a"].Y, DefaultStartY)
	}
}

func TestPlace_Empty(t *testing.T) {
	if points := Place(nil, DefaultConfig()); len(points) != 0 {
		t.Errorf("Place(nil) = %v, want empty", points)
	}
}

func TestConfigWithDefaults_PartialOverride(t *testing.T) {
	cfg := Config{HorizontalGap: 300}.withDefaults()

	if cfg.HorizontalGap != 300 {
		t.Errorf("HorizontalGap = %v, want explicit 300", cfg.HorizontalGap)
	}
	if cfg.VerticalGap != DefaultVerticalGap {
		t.Errorf("VerticalGap = %v, want default %v", cfg.VerticalGap, DefaultVerticalGap)
	}
	if cfg.NodeWidth != DefaultNodeWidth || cfg.NodeHeight != DefaultNodeHeight {
		t.Errorf("node size = %vx%v, want defaults", cfg.NodeWidth, cfg.NodeHeight)
	}
}
