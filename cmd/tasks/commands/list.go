package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List task labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, _ := cmd.Flags().GetBool("all")
			noIndex, _ := cmd.Flags().GetBool("no-index")

			lines, err := c.app.ListLabels(globals(cmd).root, all, noIndex)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, line := range lines {
				_, _ = fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().BoolP("all", "a", false, "Include hidden tasks")
	cmd.Flags().Bool("no-index", false, "Print labels without their index")
	return cmd
}
