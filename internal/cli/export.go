package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dizzikim-dev/infraflow-sub006/pkg/export"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/layout"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/pipeline"
)

// exportCommand creates the export command for rendering diagrams.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		formats string
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "export [diagram.json]",
		Short: "Render a positioned diagram to other formats",
		Long: `Render a positioned diagram to other formats.

The export command takes a diagram.json file (produced by 'layout') and writes
one artifact per requested format next to it. Supported formats:

  dot   Graphviz with pinned node positions (render with: neato -n2)
  json  The diagram itself, normalized

Artifacts are cached locally keyed on the diagram contents.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], parseFormats(formats), output, noCache)
		},
	}

	cmd.Flags().StringVarP(&formats, "format", "f", export.FormatDOT, "comma-separated output formats: dot, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: <input> without extension)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input string, formats []string, output string, noCache bool) error {
	d, err := layout.ReadDiagramFile(input)
	if err != nil {
		return fmt.Errorf("load diagram %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{Formats: formats, Logger: c.Logger}
	artifacts, cacheHit, err := runner.ExportWithCacheInfo(ctx, d, opts)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	base := outputPath(input, output, "")
	printSuccess("Export complete")
	for _, format := range formats {
		path := base + "." + format
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(len(d.Nodes), len(d.Edges), cacheHit)

	return nil
}
