package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	commitgenerrors "commitgen.dev/commitgen/internal/errors"
)

// State is one step of the suggestion pipeline. Generate records the states
// it visits so each transition can be asserted directly.
type State string

const (
	StateDisabled   State = "disabled"
	StateLoading    State = "loading"
	StateGenerating State = "generating"
	StateParsing    State = "parsing"
	StateFallback   State = "fallback"
	StateDone       State = "done"
)

// Source identifies which path produced a result's suggestions.
type Source string

const (
	SourceGenerative Source = "generative"
	SourceHeuristic  Source = "heuristic"
)

// DefaultTimeout bounds the generative attempt when Options.Timeout is
// zero.
const DefaultTimeout = 45 * time.Second

// DefaultTopP is the nucleus sampling threshold callers use whenever
// sampling is on and no explicit value is configured.
const DefaultTopP = 0.9

// GenerateParams are the sampling knobs forwarded to the text model.
type GenerateParams struct {
	MaxNewTokens int
	Temperature  float64
	TopP         float64
	Sample       bool
}

// Generator is the external text-generation capability. Load verifies the
// model is usable; Generate returns the first candidate for a prompt.
// Implementations must tolerate being abandoned mid-call: the engine
// discards the result of a call that outlives its timeout.
type Generator interface {
	Load(ctx context.Context) error
	Generate(ctx context.Context, prompt string, params GenerateParams) (string, error)
}

// Options control one Generate invocation.
type Options struct {
	// Disabled skips the generative path entirely.
	Disabled bool
	// Timeout bounds the generative attempt; zero means DefaultTimeout.
	Timeout time.Duration
	Params  GenerateParams
	Prompt  PromptOptions
	// Logger receives warning events for generative-path failures. Nil
	// discards them.
	Logger *slog.Logger
}

// Result is one invocation's outcome.
type Result struct {
	Suggestions []Suggestion
	Source      Source
	States      []State
}

// Best returns the highest-confidence suggestion.
func (r *Result) Best() Suggestion {
	return Best(r.Suggestions)
}

// Best returns the highest-confidence suggestion from a non-empty slice.
// Callers holding suggestions without a Result (a cache hit, say) use this
// directly.
func Best(suggestions []Suggestion) Suggestion {
	best := suggestions[0]
	for _, s := range suggestions[1:] {
		if s.Confidence > best.Confidence {
			best = s
		}
	}
	return best
}

// Engine produces commit message suggestions for staged change sets. A nil
// generator permanently disables the generative path. The engine keeps no
// state between invocations, so a timed-out call's late result dies with
// its goroutine and cannot leak into a later run.
type Engine struct {
	gen Generator
}

// New creates an Engine around the given generator, which may be nil.
func New(gen Generator) *Engine {
	return &Engine{gen: gen}
}

// Generate returns at least one suggestion for a non-empty change set.
// Generative-path failures (load errors, call errors, timeouts, unusable
// output) are logged and absorbed by falling back to the heuristic path;
// they never surface to the caller.
func (e *Engine) Generate(ctx context.Context, cs *ChangeSet, opts Options) (*Result, error) {
	if cs == nil || !cs.HasChanges() {
		return nil, commitgenerrors.ErrEmptyChangeSet
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	res := &Result{}
	step := func(s State) { res.States = append(res.States, s) }
	fallback := func() *Result {
		step(StateFallback)
		res.Suggestions = []Suggestion{Heuristic(cs)}
		res.Source = SourceHeuristic
		step(StateDone)
		return res
	}

	if e.gen == nil || opts.Disabled {
		step(StateDisabled)
		return fallback(), nil
	}

	step(StateLoading)
	if err := e.load(ctx); err != nil {
		logger.Warn("model load failed, falling back to heuristic summary", "error", err)
		return fallback(), nil
	}

	step(StateGenerating)
	text, err := e.attempt(ctx, cs, opts)
	if err != nil {
		logger.Warn("generation failed, falling back to heuristic summary", "error", err)
		return fallback(), nil
	}

	step(StateParsing)
	suggestions := ParseResponse(text)
	if len(suggestions) == 0 {
		logger.Warn("model output contained no usable suggestions, falling back to heuristic summary")
		return fallback(), nil
	}

	res.Suggestions = suggestions
	res.Source = SourceGenerative
	step(StateDone)
	return res, nil
}

// Heuristic runs the deterministic path alone: extract, classify,
// summarize. It cannot fail for a non-empty change set.
func Heuristic(cs *ChangeSet) Suggestion {
	signals := Extract(cs)
	category := Classify(cs)
	return Summarize(cs, category, signals)
}

// load guards the generator's Load against panics.
func (e *Engine) load(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model load panicked: %v", r)
		}
	}()
	return e.gen.Load(ctx)
}

type attemptResult struct {
	text string
	err  error
}

// attempt builds the prompt and races the model call against the timeout.
// The losing call is abandoned, not cancelled: its goroutine writes into a
// buffered channel nobody reads and exits.
func (e *Engine) attempt(ctx context.Context, cs *ChangeSet, opts Options) (string, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ch := make(chan attemptResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- attemptResult{err: fmt.Errorf("generative attempt panicked: %v", r)}
			}
		}()
		prompt := BuildPrompt(cs, opts.Prompt)
		text, err := e.gen.Generate(ctx, prompt, opts.Params)
		ch <- attemptResult{text: text, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case r := <-ch:
		return r.text, r.err
	case <-timer.C:
		return "", commitgenerrors.ErrGenerateTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
