package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "commitgen",
		Short: "Commitgen suggests conventional commit messages for your staged changes",
		Long: `Commitgen inspects the staged changes in your repository and suggests
conventional commit messages for them. A local model writes the suggestions
when one is reachable; a deterministic heuristic composer takes over when it
is not.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage: true,
	}

	// Add subcommands
	rootCmd.AddCommand(newSuggestCmd())
	rootCmd.AddCommand(newCommitCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCacheCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}
