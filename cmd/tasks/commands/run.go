package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/tasks/internal/app"
	"go.trai.ch/zerr"
)

// ErrInvalidInputFlag is returned when an --input value is not of the form id=value.
var ErrInvalidInputFlag = zerr.New("invalid --input value, expected id=value")

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <label>",
		Short: "Run a task and its dependencies",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			raw, _ := cmd.Flags().GetStringArray("input")
			inputs, err := parseInputs(raw)
			if err != nil {
				return err
			}

			g := globals(cmd)
			return c.app.Run(cmd.Context(), args[0], app.RunOptions{
				Root:         g.root,
				SettingsFile: g.settings,
				Inputs:       inputs,
				Debug:        g.debug,
			})
		},
	}
	cmd.Flags().StringArrayP("input", "i", nil, "Input value as id=value (repeatable)")
	return cmd
}

func parseInputs(raw []string) (map[string]string, error) {
	inputs := make(map[string]string, len(raw))
	for _, kv := range raw {
		id, value, ok := strings.Cut(kv, "=")
		if !ok || id == "" {
			return nil, zerr.With(zerr.Wrap(ErrInvalidInputFlag, "cannot parse --input"), "value", kv)
		}
		inputs[id] = value
	}
	return inputs, nil
}
