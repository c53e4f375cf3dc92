package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dizzikim-dev/infraflow-sub006/pkg/layout"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/spec"
)

// unlayoutCommand creates the unlayout command for recovering specs.
func (c *CLI) unlayoutCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "unlayout [diagram.json]",
		Short: "Recover the abstract spec from a positioned diagram",
		Long: `Recover the abstract spec from a positioned diagram.

The unlayout command strips coordinates from a diagram.json file (produced by
'layout') and reconstructs the spec that describes it: node ids, types, zones,
and connections survive; positions are discarded. Running 'layout' on the
result reproduces an equivalent diagram.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runUnlayout(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.spec.json)")

	return cmd
}

func (c *CLI) runUnlayout(input, output string) error {
	d, err := layout.ReadDiagramFile(input)
	if err != nil {
		return fmt.Errorf("load diagram %s: %w", input, err)
	}

	s := d.Spec()

	out := outputPath(input, output, ".spec.json")
	if err := spec.WriteSpecFile(s, out); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	printSuccess("Spec recovered")
	printFile(out)
	printDetail("%d nodes, %d connections", len(s.Nodes), len(s.Connections))

	return nil
}
