package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/tasks/internal/app"
)

func (c *CLI) newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print a task or input definition",
	}
	cmd.PersistentFlags().StringP("format", "f", app.FormatJSON, "Output format: json or yaml")

	cmd.AddCommand(&cobra.Command{
		Use:   "task <label|index>",
		Short: "Print a task definition by label or index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			out, err := c.app.DescribeTask(globals(cmd).root, args[0], format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "input <id>",
		Short: "Print an input definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			out, err := c.app.DescribeInput(globals(cmd).root, args[0], format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})

	return cmd
}
