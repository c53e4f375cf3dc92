package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/dizzikim-dev/infraflow-sub006/pkg/layout"
)

// List styles
var (
	listNormalStyle = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command for browsing diagrams.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [diagram.json]",
		Short: "Browse a positioned diagram's columns interactively",
		Long: `Browse a positioned diagram's columns interactively.

The inspect command opens a terminal UI showing the diagram column by column:
how many nodes each column holds, how many edge crossings remain between
adjacent columns, and the nodes of the selected column with their tiers and
positions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0])
		},
	}
}

func (c *CLI) runInspect(input string) error {
	d, err := layout.ReadDiagramFile(input)
	if err != nil {
		return fmt.Errorf("load diagram %s: %w", input, err)
	}
	if len(d.Nodes) == 0 {
		printWarning("Diagram has no nodes")
		return nil
	}

	p := tea.NewProgram(newInspectModel(d), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run inspector: %w", err)
	}
	return nil
}

// =============================================================================
// inspectModel - Interactive column browser
// =============================================================================

// diagramColumn is one vertical slice of the diagram: all nodes sharing an
// x position, ordered top to bottom.
type diagramColumn struct {
	X     float64
	Nodes []layout.PositionedNode
}

// inspectModel is the bubbletea model for the diagram inspector.
type inspectModel struct {
	columns   []diagramColumn
	crossings []int // crossings between column i and i+1
	edgeCount int
	cursor    int
}

// newInspectModel groups the diagram's nodes into columns by x position and
// precomputes the crossing count for each adjacent pair.
func newInspectModel(d layout.Diagram) inspectModel {
	byX := make(map[float64][]layout.PositionedNode)
	for _, n := range d.Nodes {
		byX[n.X] = append(byX[n.X], n)
	}

	columns := make([]diagramColumn, 0, len(byX))
	for x, nodes := range byX {
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].Y < nodes[j].Y })
		columns = append(columns, diagramColumn{X: x, Nodes: nodes})
	}
	sort.Slice(columns, func(i, j int) bool { return columns[i].X < columns[j].X })

	forward := make(map[string][]string)
	for _, e := range d.Edges {
		forward[e.Source] = append(forward[e.Source], e.Target)
	}

	crossings := make([]int, 0, len(columns))
	for i := 0; i+1 < len(columns); i++ {
		crossings = append(crossings,
			layout.CountLayerCrossings(columnIDs(columns[i]), columnIDs(columns[i+1]), forward))
	}

	return inspectModel{
		columns:   columns,
		crossings: crossings,
		edgeCount: len(d.Edges),
	}
}

func columnIDs(col diagramColumn) []string {
	ids := make([]string, len(col.Nodes))
	for i, n := range col.Nodes {
		ids[i] = n.Node.ID
	}
	return ids
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l", "down", "j":
			if m.cursor < len(m.columns)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Diagram Inspector"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ select column  q quit"))
	b.WriteString("\n\n")

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for i, col := range m.columns {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		crossing := "—"
		if i < len(m.crossings) {
			crossing = strconv.Itoa(m.crossings[i])
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(i),
			fmt.Sprintf("%.0f", col.X),
			strconv.Itoa(len(col.Nodes)),
			crossing,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Column", "X", "Nodes", "Crossings →").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == m.cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	// Detail pane for the selected column
	selected := m.columns[m.cursor]
	b.WriteString(StyleHighlight.Render(fmt.Sprintf("Column %d", m.cursor)))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  x=%.0f  %d nodes", selected.X, len(selected.Nodes))))
	b.WriteString("\n")
	for _, n := range selected.Nodes {
		line := fmt.Sprintf("  %-20s %-12s %-10s y=%.0f",
			n.Node.DisplayLabel(), string(n.Node.Type), string(n.Tier), n.Y)
		b.WriteString(listNormalStyle.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d columns · %d edges · %d crossings total",
		len(m.columns), m.edgeCount, sum(m.crossings))))

	return b.String()
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
