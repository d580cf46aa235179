package cli

import (
	"github.com/spf13/cobra"

	"commitgen.dev/commitgen/internal/cache"
	"commitgen.dev/commitgen/internal/runtime"
)

// newCacheCmd creates the cache command
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the suggestion cache",
	}

	cmd.AddCommand(newCacheClearCmd())

	return cmd
}

// newCacheClearCmd creates the cache clear command
func newCacheClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop the cached suggestions for this repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer func() { _ = rctx.Splog.Close() }()

			if err := cache.Clear(rctx.RepoRoot); err != nil {
				return err
			}

			rctx.Splog.Info("Cache cleared")
			return nil
		},
	}

	return cmd
}
