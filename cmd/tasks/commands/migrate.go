package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Replace legacy docker input references in workspace JSON files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			results, err := c.app.Migrate(cmd.Context(), globals(cmd).root, dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				if !r.Changed {
					continue
				}
				if dryRun {
					_, _ = fmt.Fprint(out, r.Diff)
					continue
				}
				_, _ = fmt.Fprintf(out, "migrated %s\n", r.Path)
			}
			return nil
		},
	}
	cmd.Flags().Bool("dry-run", false, "Print a unified diff instead of rewriting files")
	return cmd
}
