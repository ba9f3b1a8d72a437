package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/adapters/cache" //nolint:depguard // Flag default only
)

func (c *CLI) newCleanCmd() *cobra.Command {
	var cacheDir string

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove all build cache entries",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.app.Clean(cacheDir)
		},
	}

	cmd.Flags().StringVar(&cacheDir, "cache-dir", cache.DefaultDir, "Directory the build cache is stored in")

	return cmd
}
