// Package commands implements the CLI commands for jitc.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/jitc/internal/app"
	"go.trai.ch/jitc/internal/build"
	"go.trai.ch/jitc/internal/core/domain"
)

// CLI represents the command line interface for jitc.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	stdin   io.Reader
}

// Application represents the application logic interface.
type Application interface {
	Compile(ctx context.Context, req app.CompileRequest) (*domain.Module, error)
	Emit(ctx context.Context, req app.CompileRequest) (*domain.Entry, error)
	List(cacheDir string) (string, []domain.CachedEntry, error)
	Remove(cacheDir, entryID string) error
	Clean(cacheDir string) (int, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "jitc",
		Short:         "Compile generated C++ into cached, loadable modules",
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

	rootCmd.PersistentFlags().String("cache-dir", "",
		"Cache directory (default $"+domain.CacheDirEnv+" or "+domain.DefaultCacheDir+")")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newCompileCmd())
	rootCmd.AddCommand(c.newEmitCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newCleanCmd())
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

// SetInput sets the stream read when the source file is "-". Used for testing.
func (c *CLI) SetInput(in io.Reader) {
	c.stdin = in
	c.rootCmd.SetIn(in)
}

func cacheDirFlag(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("cache-dir")
	return dir
}
