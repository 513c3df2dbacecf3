package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the entries in the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, entries, err := c.app.List(cacheDirFlag(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				_, _ = fmt.Fprintf(out, "no entries in %s\n", dir)
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ENTRY\tSOURCE\tARTIFACT\tMODIFIED")
			for _, e := range entries {
				artifact := "-"
				if e.HasArtifact {
					artifact = humanize.IBytes(uint64(e.ArtifactSize)) //nolint:gosec // sizes are never negative
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					e.ID,
					humanize.IBytes(uint64(e.Size)), //nolint:gosec // sizes are never negative
					artifact,
					humanize.Time(e.ModTime),
				)
			}
			return w.Flush()
		},
	}
}
