package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/adapters/cache" //nolint:depguard // Flag default only
	"go.trai.ch/forge/internal/app"
	"go.trai.ch/forge/internal/engine/executor"
)

func (c *CLI) newRunCmd() *cobra.Command {
	var (
		jobs     int
		cacheDir string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "run [targets...]",
		Short: "Execute the specified targets and their dependencies",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Run(cmd.Context(), args, app.RunOptions{
				ConfigFile: c.configFile,
				CacheDir:   cacheDir,
				Jobs:       jobs,
				NoCache:    noCache,
			})
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", executor.DefaultConcurrency, "Maximum number of targets to run concurrently per wave")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", cache.DefaultDir, "Directory the build cache is stored in")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass cache lookups and re-execute every target")

	return cmd
}
