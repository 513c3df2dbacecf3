package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove entries from the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := cacheDirFlag(cmd)
			entry, _ := cmd.Flags().GetString("entry")

			if entry != "" {
				return c.app.Remove(dir, entry)
			}

			n, err := c.app.Clean(dir)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %d %s\n", n, plural(n, "entry", "entries"))
			return nil
		},
	}

	cmd.Flags().StringP("entry", "e", "", "Remove only the entry with this ID")

	return cmd
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
