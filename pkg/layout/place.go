package layout

import (
	"maps"
	"slices"
)

// Default spacing constants, in host rendering units.
const (
	DefaultNodeWidth     = 160.0
	DefaultNodeHeight    = 80.0
	DefaultHorizontalGap = 220.0
	DefaultVerticalGap   = 120.0
	DefaultStartX        = 80.0
	DefaultStartY        = 80.0
)

// Config carries the spacing constants for coordinate placement. All fields
// are optional; zero or negative values take the documented defaults, so a
// zero origin cannot be requested directly: Config{StartX: 0} means "default
// start", not x=0. Hosts that need the layout anchored at zero shift the
// returned coordinates instead.
// Relative ordering and centering behavior hold under any positive spacing.
type Config struct {
	NodeWidth     float64 `json:"nodeWidth,omitempty" toml:"node_width"`
	NodeHeight    float64 `json:"nodeHeight,omitempty" toml:"node_height"`
	HorizontalGap float64 `json:"horizontalGap,omitempty" toml:"horizontal_gap"`
	VerticalGap   float64 `json:"verticalGap,omitempty" toml:"vertical_gap"`
	StartX        float64 `json:"startX,omitempty" toml:"start_x"`
	StartY        float64 `json:"startY,omitempty" toml:"start_y"`
}

// DefaultConfig returns a Config populated with the default spacing.
func DefaultConfig() Config {
	return Config{
		NodeWidth:     DefaultNodeWidth,
		NodeHeight:    DefaultNodeHeight,
		HorizontalGap: DefaultHorizontalGap,
		VerticalGap:   DefaultVerticalGap,
		StartX:        DefaultStartX,
		StartY:        DefaultStartY,
	}
}

// withDefaults fills unset (non-positive) fields with the defaults.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.NodeWidth <= 0 {
		c.NodeWidth = d.NodeWidth
	}
	if c.NodeHeight <= 0 {
		c.NodeHeight = d.NodeHeight
	}
	if c.HorizontalGap <= 0 {
		c.HorizontalGap = d.HorizontalGap
	}
	if c.VerticalGap <= 0 {
		c.VerticalGap = d.VerticalGap
	}
	if c.StartX <= 0 {
		c.StartX = d.StartX
	}
	if c.StartY <= 0 {
		c.StartY = d.StartY
	}
	return c
}

// Point is a Cartesian position in host rendering units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Place converts ordered layers into Cartesian coordinates.
//
// Horizontal: columns are indexed by the rank of each occupied layer key in
// sorted order, so an unoccupied intermediate layer compresses instead of
// leaving a blank column. x = startX + rank*horizontalGap.
//
// Vertical: every layer is centered on a shared horizontal axis derived from
// the tallest layer. A layer with n nodes spans (n-1)*verticalGap and is
// centered around that axis, so single-node layers sit exactly on it.
func Place(ordered map[int][]string, cfg Config) map[string]Point {
	cfg = cfg.withDefaults()

	keys := slices.Sorted(maps.Keys(ordered))
	tallest := 0
	for _, k := range keys {
		if n := len(ordered[k]); n > tallest {
			tallest = n
		}
	}
	centerY := cfg.StartY + float64(tallest-1)*cfg.VerticalGap/2

	points := make(map[string]Point)
	for rank, k := range keys {
		column := ordered[k]
		x := cfg.StartX + float64(rank)*cfg.HorizontalGap
		top := centerY - float64(len(column)-1)*cfg.VerticalGap/2
		for row, id := range column {
			points[id] = Point{X: x, Y: top + float64(row)*cfg.VerticalGap}
		}
	}
	return points
}
