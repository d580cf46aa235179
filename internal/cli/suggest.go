package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"commitgen.dev/commitgen/internal/engine"
	"commitgen.dev/commitgen/internal/runtime"
	"commitgen.dev/commitgen/internal/tui"
)

// newSuggestCmd creates the suggest command
func newSuggestCmd() *cobra.Command {
	var (
		flags      generateFlags
		jsonOutput bool
		selectOne  bool
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest conventional commit messages for the staged changes",
		Long: `Inspect the staged changes and suggest conventional commit messages for them.

Suggestions come from the configured model when one is reachable and from the
built-in heuristic composer otherwise. Results are cached against the current
snapshot, so re-running without restaging is instant.`,
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

			if jsonOutput {
				return printSuggestionsJSON(result)
			}

			// --yes and --select print a single bare message so the output
			// can feed straight into git commit -F - or similar.
			if yes || selectOne {
				chosen, err := chooseSuggestion(result.Suggestions, yes)
				if err != nil {
					return err
				}
				fmt.Println(chosen.FullMessage())
				return nil
			}

			splog := rctx.Splog
			splog.Page(tui.RenderSuggestions(result.Suggestions, result.Source))
			if len(result.ChangeSet.DegradedFiles) > 0 {
				splog.Page(tui.RenderDegradedNote(result.ChangeSet.DegradedFiles))
			}
			splog.Newline()
			splog.Tip("Run 'commitgen commit' to commit with one of these")
			return nil
		},
	}

	addGenerateFlags(cmd, &flags)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print suggestions as JSON for scripting")
	cmd.Flags().BoolVar(&selectOne, "select", false, "Pick one suggestion interactively and print only its message")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Print only the highest-confidence message, without prompting")

	return cmd
}

func printSuggestionsJSON(result *pipelineResult) error {
	payload := struct {
		Suggestions []engine.Suggestion `json:"suggestions"`
		Source      engine.Source       `json:"source"`
		Cached      bool                `json:"cached"`
		Degraded    []string            `json:"degradedFiles,omitempty"`
	}{result.Suggestions, result.Source, result.Cached, result.ChangeSet.DegradedFiles}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
