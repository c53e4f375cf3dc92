// Package export converts positioned diagrams into output artifacts.
//
// Two formats are supported: "json" (the positioned Diagram envelope, the
// canonical interchange format) and "dot" (Graphviz DOT text with pinned
// positions, convenient for quick inspection with external tools).
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dizzikim-dev/infraflow-sub006/pkg/errors"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/layout"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// Formats lists the supported output formats in preference order.
var Formats = []string{FormatJSON, FormatDOT}

// Export renders a diagram in the named format.
func Export(d layout.Diagram, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return layout.MarshalDiagram(d)
	case FormatDOT:
		return []byte(ToDOT(d)), nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported export format %q (supported: %s)",
			format, strings.Join(Formats, ", "))
	}
}

// ToDOT converts a positioned diagram to Graphviz DOT format. Positions are
// pinned with pos="x,y!" so neato reproduces the computed geometry instead of
// re-laying-out the graph. Coordinates are flipped on y because DOT's origin
// is bottom-left while ours is top-left.
func ToDOT(d layout.Diagram) string {
	maxY := 0.0
	for _, n := range d.Nodes {
		if n.Y > maxY {
			maxY = n.Y
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range d.Nodes {
		fmt.Fprintf(&buf, "  %q [label=%q, pos=\"%.0f,%.0f!\", tier=%q];\n",
			n.Node.ID, n.Node.DisplayLabel(), n.X, maxY-n.Y+d.Config.StartY, n.Tier)
	}

	buf.WriteString("\n")
	for _, e := range d.Edges {
		attrs := ""
		if e.Label != "" {
			attrs = fmt.Sprintf(" [label=%q]", e.Label)
		}
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", e.Source, e.Target, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}
