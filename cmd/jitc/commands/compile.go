package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/jitc/internal/app"
	"go.trai.ch/jitc/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile NAME FILE",
		Short: "Compile a generated source file and load the module",
		Long: "Compile writes FILE into the cache directory as <NAME>_<hash>.cpp, builds it " +
			"unless an up to date artifact exists and loads the result. FILE \"-\" reads standard input.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := c.request(cmd, args)
			if err != nil {
				return err
			}

			mod, err := c.app.Compile(cmd.Context(), req)
			if err != nil {
				return err
			}
			defer func() { _ = mod.Close() }()

			status := "compiled"
			if mod.Cached {
				status = "reused"
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "entry:    %s\n", mod.EntryID)
			_, _ = fmt.Fprintf(out, "source:   %s\n", mod.SourcePath)
			_, _ = fmt.Fprintf(out, "artifact: %s\n", mod.LibraryPath)
			_, _ = fmt.Fprintf(out, "status:   %s\n", status)
			return nil
		},
	}
	addConfigFlags(cmd)
	return cmd
}

func (c *CLI) newEmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emit NAME FILE",
		Short: "Write the generated source file without compiling it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := c.request(cmd, args)
			if err != nil {
				return err
			}

			entry, err := c.app.Emit(cmd.Context(), req)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), entry.Path)
			return nil
		},
	}
	addConfigFlags(cmd)
	return cmd
}

func addConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringArray("source", nil, "Additional source file, relative to the cache directory (repeatable)")
	f.StringArray("dependency", nil, "File or directory whose changes trigger a rebuild (repeatable)")
	f.StringArrayP("include-dir", "I", nil, "Include directory (repeatable)")
	f.StringArray("compiler-arg", nil, "Extra compiler argument (repeatable)")
	f.StringArrayP("library", "l", nil, "Library to link (repeatable)")
	f.StringArrayP("library-dir", "L", nil, "Library search directory (repeatable)")
	f.StringArray("linker-arg", nil, "Extra linker argument (repeatable)")
}

func (c *CLI) request(cmd *cobra.Command, args []string) (app.CompileRequest, error) {
	source, err := c.readSource(args[1])
	if err != nil {
		return app.CompileRequest{}, err
	}

	f := cmd.Flags()
	values := func(name string) []string {
		v, _ := f.GetStringArray(name)
		return v
	}
	cfg, err := domain.NewBuildConfig(
		domain.WithSources(values("source")...),
		domain.WithDependencies(values("dependency")...),
		domain.WithIncludeDirs(values("include-dir")...),
		domain.WithCompilerArgs(values("compiler-arg")...),
		domain.WithLibraries(values("library")...),
		domain.WithLibraryDirs(values("library-dir")...),
		domain.WithLinkerArgs(values("linker-arg")...),
	)
	if err != nil {
		return app.CompileRequest{}, err
	}

	return app.CompileRequest{
		Name:     args[0],
		Source:   source,
		Config:   cfg,
		CacheDir: cacheDirFlag(cmd),
	}, nil
}

func (c *CLI) readSource(path string) (string, error) {
	if path == "" {
		return "", domain.ErrNoSourceGiven
	}
	if path == "-" {
		in := c.stdin
		if in == nil {
			in = os.Stdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return "", zerr.Wrap(err, domain.ErrFileOpenFailed.Error())
		}
		return string(data), nil
	}

	//nolint:gosec // reading the user supplied source is the point
	data, err := os.ReadFile(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	return string(data), nil
}
