package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"commitgen.dev/commitgen/internal/cache"
	"commitgen.dev/commitgen/internal/engine"
	commitgenerrors "commitgen.dev/commitgen/internal/errors"
	"commitgen.dev/commitgen/internal/git"
	"commitgen.dev/commitgen/internal/runtime"
	"commitgen.dev/commitgen/internal/tui"
)

// generateFlags are the suggestion knobs shared by suggest and commit.
type generateFlags struct {
	stageAll    bool
	model       string
	noAI        bool
	timeout     time.Duration
	maxTokens   int
	temperature float64
	verbosity   string
	body        bool
	prompt      string
	noCache     bool
}

// addGenerateFlags registers the shared suggestion flags on cmd.
func addGenerateFlags(cmd *cobra.Command, f *generateFlags) {
	cmd.Flags().BoolVarP(&f.stageAll, "all", "a", false, "Stage all changes, including untracked files, before suggesting")
	cmd.Flags().StringVar(&f.model, "model", "", "Model to consult for suggestions. Overrides the configured model; pass 'none' to skip generation for this run")
	cmd.Flags().BoolVar(&f.noAI, "no-ai", false, "Skip the model entirely and compose suggestions heuristically")
	cmd.Flags().DurationVar(&f.timeout, "timeout", engine.DefaultTimeout, "How long to wait for the model before falling back to the heuristic composer")
	cmd.Flags().IntVar(&f.maxTokens, "max-tokens", 0, "Cap on newly generated tokens; 0 leaves the server default in place")
	cmd.Flags().Float64Var(&f.temperature, "temperature", 0, "Sampling temperature in (0,1]; 0 asks for deterministic decoding")
	cmd.Flags().StringVar(&f.verbosity, "verbosity", "", "Suggestion verbosity: concise, balanced or detailed")
	cmd.Flags().BoolVar(&f.body, "body", false, "Ask for bullet-point body lines in addition to the subject")
	cmd.Flags().StringVar(&f.prompt, "prompt", "", "Extra instruction appended to the model prompt")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "Bypass the suggestion cache for this run")
}

// pipelineResult is what a suggestion run hands back to the command layer.
type pipelineResult struct {
	ChangeSet   *engine.ChangeSet
	Suggestions []engine.Suggestion
	Source      engine.Source
	Cached      bool
}

// buildOptions folds the repository config and any explicitly set flags into
// engine options. A set flag wins over the config, even when set to its zero
// value.
func buildOptions(cmd *cobra.Command, rctx *runtime.Context, f *generateFlags, disabled bool) engine.Options {
	cfg := rctx.Config

	maxTokens := cfg.GetMaxTokens()
	if cmd.Flags().Changed("max-tokens") {
		maxTokens = f.maxTokens
	}
	temperature := cfg.GetTemperature()
	if cmd.Flags().Changed("temperature") {
		temperature = f.temperature
	}
	verbosity := cfg.GetVerbosity()
	if f.verbosity != "" {
		verbosity = f.verbosity
	}
	includeBody := cfg.GetIncludeBody()
	if cmd.Flags().Changed("body") {
		includeBody = f.body
	}
	custom := cfg.GetCustomPrompt()
	if f.prompt != "" {
		custom = f.prompt
	}

	params := engine.GenerateParams{
		MaxNewTokens: maxTokens,
		Temperature:  temperature,
	}
	if temperature > 0 {
		params.Sample = true
		params.TopP = engine.DefaultTopP
	}

	return engine.Options{
		Disabled: disabled,
		Timeout:  f.timeout,
		Params:   params,
		Prompt: engine.PromptOptions{
			Verbosity:         verbosity,
			CustomInstruction: custom,
			IncludeBody:       includeBody,
		},
		Logger: rctx.Splog.Logger(),
	}
}

// runSuggestionPipeline produces suggestions for the staged snapshot: cache
// first unless bypassed, then an engine run whose result is stored for the
// next invocation. The spinner only appears for attended generative runs;
// heuristic-only runs finish too fast to need one.
func runSuggestionPipeline(cmd *cobra.Command, rctx *runtime.Context, f *generateFlags) (*pipelineResult, error) {
	if f.stageAll {
		if err := git.StageAll(); err != nil {
			return nil, err
		}
	}

	cs, err := rctx.StagedChanges(cmd.Context())
	if err != nil {
		if errors.Is(err, commitgenerrors.ErrNoStagedChanges) {
			hintUnstaged(rctx.Splog)
		}
		return nil, err
	}

	if !f.noCache {
		if suggestions, ok := cache.Lookup(rctx.RepoRoot, cs.SummaryText); ok {
			return &pipelineResult{
				ChangeSet:   cs,
				Suggestions: suggestions,
				Source:      cache.Source,
				Cached:      true,
			}, nil
		}
	}

	eng, model, disabled := rctx.EngineFor(f.model)
	disabled = disabled || f.noAI
	opts := buildOptions(cmd, rctx, f, disabled)

	var res *engine.Result
	generate := func(ctx context.Context) error {
		var genErr error
		res, genErr = eng.Generate(ctx, cs, opts)
		return genErr
	}
	if disabled {
		err = generate(cmd.Context())
	} else {
		err = tui.RunWithSpinner(cmd.Context(), rctx.Splog, fmt.Sprintf("Consulting %s", model), generate)
	}
	if err != nil {
		return nil, err
	}

	if !f.noCache {
		if storeErr := cache.Store(rctx.RepoRoot, cs.SummaryText, res.Suggestions); storeErr != nil {
			rctx.Splog.Debug("cache store failed: %v", storeErr)
		}
	}

	return &pipelineResult{
		ChangeSet:   cs,
		Suggestions: res.Suggestions,
		Source:      res.Source,
		Cached:      false,
	}, nil
}

// hintUnstaged tells the user what the empty index could hold. Probe
// failures keep the hint quiet; the caller is already returning an error.
func hintUnstaged(splog *tui.Splog) {
	unstaged, err := git.HasUnstagedChanges()
	if err != nil {
		return
	}
	untracked, err := git.HasUntrackedFiles()
	if err != nil {
		return
	}

	switch {
	case unstaged && untracked:
		splog.Tip("You have unstaged edits and untracked files. Stage them with 'git add', or rerun with --all")
	case unstaged:
		splog.Tip("You have unstaged edits. Stage them with 'git add -p', or rerun with --all")
	case untracked:
		splog.Tip("You have untracked files. Stage them with 'git add', or rerun with --all")
	}
}

// chooseSuggestion resolves which suggestion a commit-like flow should act
// on. Unattended runs take the highest-confidence one; attended runs ask.
func chooseSuggestion(suggestions []engine.Suggestion, yes bool) (engine.Suggestion, error) {
	if len(suggestions) == 0 {
		return engine.Suggestion{}, fmt.Errorf("no suggestions available")
	}
	if yes || !tui.IsTTY() {
		return engine.Best(suggestions), nil
	}

	if len(suggestions) == 1 {
		header, _, _ := strings.Cut(suggestions[0].FullMessage(), "\n")
		ok, err := tui.PromptConfirm(fmt.Sprintf("Use %q?", header), true)
		if err != nil {
			return engine.Suggestion{}, err
		}
		if !ok {
			return engine.Suggestion{}, fmt.Errorf("canceled")
		}
		return suggestions[0], nil
	}

	labels := make([]string, len(suggestions))
	for i, s := range suggestions {
		header, _, _ := strings.Cut(s.FullMessage(), "\n")
		labels[i] = header
	}
	idx, err := tui.PromptSelect("Commit message", labels)
	if err != nil {
		return engine.Suggestion{}, err
	}
	return suggestions[idx], nil
}
