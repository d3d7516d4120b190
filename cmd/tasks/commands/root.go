// Package commands implements the CLI commands for the tasks runner.
package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.trai.ch/tasks/internal/adapters/migrate"
	"go.trai.ch/tasks/internal/app"
	"go.trai.ch/tasks/internal/build"
)

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, label string, opts app.RunOptions) error
	ListLabels(root string, showHidden, noIndex bool) ([]string, error)
	DescribeTask(root, ref, format string) ([]byte, error)
	DescribeInput(root, id, format string) ([]byte, error)
	Migrate(ctx context.Context, root string, dryRun bool) ([]migrate.Result, error)
}

// CLI represents the command line interface for tasks.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	v       *viper.Viper
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "tasks",
		Short:         "Run editor workspace tasks from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().String("root", ".", "Workspace root holding the .vscode directory")
	rootCmd.PersistentFlags().String("settings", "", "Settings file name under .vscode (default settings.json)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable verbose output")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
		v:       newViper(),
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return c.bindFlags(cmd)
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newDescribeCmd())
	rootCmd.AddCommand(c.newMigrateCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix("TASKS")
	v.AutomaticEnv()
	return v
}

// envFlags are the global flags that may also be set as TASKS_<NAME>.
// The debug switch is presence based and read by the detector instead.
var envFlags = []string{"root", "settings"}

// bindFlags fills unchanged global flags from their TASKS_* environment variables.
func (c *CLI) bindFlags(cmd *cobra.Command) error {
	if err := c.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	for _, name := range envFlags {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed || !c.v.IsSet(name) {
			continue
		}
		if val := c.v.GetString(name); val != "" {
			if err := f.Value.Set(val); err != nil {
				return err
			}
		}
	}
	return nil
}

type globalOptions struct {
	root     string
	settings string
	debug    bool
}

func globals(cmd *cobra.Command) globalOptions {
	root, _ := cmd.Flags().GetString("root")
	settings, _ := cmd.Flags().GetString("settings")
	debug, _ := cmd.Flags().GetBool("debug")
	return globalOptions{root: root, settings: settings, debug: debug}
}
