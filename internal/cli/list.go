// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var family string

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List the available algorithms",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := rootOpts.output(cmd.OutOrStdout())
			width := 0
			for _, name := range rootOpts.Registry.Names() {
				width = max(width, len(name))
			}
			for _, d := range rootOpts.Registry.Descriptors() {
				if family != "" && string(d.Family) != family {
					continue
				}
				params := "-"
				if len(d.Params) > 0 {
					params = strings.Join(d.Params, ",")
				}
				name := out.String(fmt.Sprintf("%-*s", width, d.Name)).Bold().String()
				fmt.Fprintf(out, "%s  %-6s  %s  [%s]\n", name, d.Family, d.Summary, params)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&family, "family", "", "only list algorithms over this structure (graph|tree|array|list|matrix)")

	return cmd
}
