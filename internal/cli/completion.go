package cli

import (
	"github.com/spf13/cobra"

	"commitgen.dev/commitgen/internal/config"
)

// completeConfigKeys is a helper for cobra.ValidArgsFunction that returns the
// recognized configuration keys.
func completeConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return config.Keys(), cobra.ShellCompDirectiveNoFileComp
}
