package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dizzikim-dev/infraflow-sub006/pkg/errors"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/spec"
)

// validateCommand creates the validate command for checking specs.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [spec.json]",
		Short: "Check an infrastructure spec for structural problems",
		Long: `Check an infrastructure spec for structural problems.

Validation reports duplicate node ids, empty ids, and connections that
reference nodes not present in the spec. Nodes without an id are reported
rather than auto-assigned; use 'layout' (non-strict) to fill them in.

Exits non-zero if the spec is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0])
		},
	}
}

func (c *CLI) runValidate(input string) error {
	s, err := spec.ReadSpecFile(input)
	if err != nil {
		return fmt.Errorf("load spec %s: %w", input, err)
	}

	if err := s.Validate(); err != nil {
		printError("Spec is invalid")
		printDetail("%s", errors.UserMessage(err))
		return err
	}

	printSuccess("Spec is valid")
	printKeyValue("Nodes", strconv.Itoa(len(s.Nodes)))
	printKeyValue("Connections", strconv.Itoa(len(s.Connections)))

	return nil
}
