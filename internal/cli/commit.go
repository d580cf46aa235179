package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"commitgen.dev/commitgen/internal/cache"
	"commitgen.dev/commitgen/internal/git"
	"commitgen.dev/commitgen/internal/runtime"
	"commitgen.dev/commitgen/internal/tui"
)

// newCommitCmd creates the commit command
func newCommitCmd() *cobra.Command {
	var (
		flags generateFlags
		edit  bool
		yes   bool
		amend bool
	)

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Commit the staged changes with a suggested message",
		Long: `Suggest commit messages for the staged changes, pick one and commit with it.

Attended runs ask which suggestion to use; --yes (and any run without a
terminal) takes the highest-confidence one. --edit opens the chosen message
in your editor before committing. --amend folds the staged changes into the
previous commit under the chosen message instead of creating a new commit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer func() { _ = rctx.Splog.Close() }()

			result, err := runSuggestionPipeline(cmd, rctx, &flags)
			if err != nil {
				return err
			}

			chosen, err := chooseSuggestion(result.Suggestions, yes)
			if err != nil {
				return err
			}

			message := chosen.FullMessage()
			if edit {
				edited, err := tui.OpenEditor(message, "COMMIT_EDITMSG-*")
				if err != nil {
					return fmt.Errorf("failed to edit message: %w", err)
				}
				message = strings.TrimSpace(edited)
				if message == "" {
					return fmt.Errorf("aborting commit due to empty message")
				}
			}

			if err := git.Commit(git.CommitOptions{Message: message, Amend: amend}); err != nil {
				return err
			}

			// The snapshot the cache entry was keyed on no longer exists.
			_ = cache.Clear(rctx.RepoRoot)

			verb := "Committed"
			if amend {
				verb = "Amended"
			}
			subject, _, _ := strings.Cut(message, "\n")
			rctx.Splog.Info("%s: %s", verb, subject)
			return nil
		},
	}

	addGenerateFlags(cmd, &flags)
	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "Open the chosen message in your editor before committing")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Commit with the highest-confidence suggestion, without prompting")
	cmd.Flags().BoolVar(&amend, "amend", false, "Fold the staged changes into the previous commit, replacing its message")

	return cmd
}
