package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dizzikim-dev/infraflow-sub006/pkg/layout"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/pipeline"
)

// layoutCommand creates the layout command for computing positioned diagrams.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{Layout: layout.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "layout [spec.json]",
		Short: "Compute a positioned diagram from an infrastructure spec",
		Long: `Compute a positioned diagram from an infrastructure spec.

The layout command takes a spec.json file and computes x/y positions for every
node: nodes are grouped into columns by dependency depth (with security tiers
as a fallback), ordered within each column to reduce edge crossings, and
spaced according to the layout config.

The output is a diagram.json file that can be browsed with 'inspect' or
rendered with 'export'. Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.diagram.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "reject specs with duplicate ids or dangling connections")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if a cached layout exists")

	// Spacing flags
	cmd.Flags().Float64Var(&opts.Layout.NodeWidth, "node-width", opts.Layout.NodeWidth, "node width")
	cmd.Flags().Float64Var(&opts.Layout.NodeHeight, "node-height", opts.Layout.NodeHeight, "node height")
	cmd.Flags().Float64Var(&opts.Layout.HorizontalGap, "horizontal-gap", opts.Layout.HorizontalGap, "gap between columns")
	cmd.Flags().Float64Var(&opts.Layout.VerticalGap, "vertical-gap", opts.Layout.VerticalGap, "gap between rows")
	cmd.Flags().Float64Var(&opts.Layout.StartX, "start-x", opts.Layout.StartX, "x origin of the first column (non-positive = default)")
	cmd.Flags().Float64Var(&opts.Layout.StartY, "start-y", opts.Layout.StartY, "y origin of the tallest column (non-positive = default)")

	return cmd
}

// runLayout loads the spec, computes the diagram, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.SpecPath = input
	opts.Logger = c.Logger

	s, err := runner.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load spec %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	d, cacheHit, err := runner.BuildWithCacheInfo(ctx, s, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	out := outputPath(input, output, ".diagram.json")
	if err := layout.WriteDiagramFile(d, out); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	printSuccess("Layout complete")
	printFile(out)
	printStats(len(d.Nodes), len(d.Edges), cacheHit)
	printNewline()
	printNextStep("Inspect", "infraflow inspect "+out)

	return nil
}
