// Package runtime provides a context type that holds the shared state for
// commitgen commands. This avoids passing multiple parameters.
package runtime

import (
	"context"
	"path/filepath"

	"github.com/joho/godotenv"

	"commitgen.dev/commitgen/internal/ai"
	"commitgen.dev/commitgen/internal/config"
	"commitgen.dev/commitgen/internal/engine"
	commitgenerrors "commitgen.dev/commitgen/internal/errors"
	"commitgen.dev/commitgen/internal/git"
	"commitgen.dev/commitgen/internal/tui"
)

// Context provides access to shared state for commands
type Context struct {
	RepoRoot string
	Config   *config.Config
	Splog    *tui.Splog
}

// NewContext assembles a context from already-loaded pieces
func NewContext(repoRoot string, cfg *config.Config, splog *tui.Splog) *Context {
	return &Context{
		RepoRoot: repoRoot,
		Config:   cfg,
		Splog:    splog,
	}
}

// GetContext builds the shared context for a command run: repository
// discovery, .env bootstrap and configuration load.
func GetContext() (*Context, error) {
	// Initialize git repository
	if err := git.InitDefaultRepo(); err != nil {
		return nil, err
	}

	repoRoot, err := git.GetRepoRoot()
	if err != nil {
		return nil, err
	}

	// Model endpoint settings (COMMITGEN_MODEL, COMMITGEN_BASE_URL,
	// COMMITGEN_API_KEY) may live in a .env next to the repository; real
	// environment variables win over it.
	_ = godotenv.Load(filepath.Join(repoRoot, ".env"))

	cfg, err := config.Load(repoRoot)
	if err != nil {
		return nil, err
	}

	splog, err := tui.NewSplogWithFile(tui.GetLogFilePath())
	if err != nil {
		// File logging is optional; fall back to console-only
		splog = tui.NewSplog()
	}

	return NewContext(repoRoot, cfg, splog), nil
}

// EngineFor resolves the model name (flag, then config file, then
// COMMITGEN_MODEL, then the built-in default) and builds the suggestion
// engine for one invocation. Model is empty and disabled is true when a
// disable sentinel won the resolution.
func (c *Context) EngineFor(modelFlag string) (eng *engine.Engine, model string, disabled bool) {
	model, enabled := ai.ResolveModel(modelFlag, c.Config.GetModel())
	if !enabled {
		return engine.New(nil), "", true
	}
	return engine.New(ai.NewHTTPClient(model)), model, false
}

// StagedChanges snapshots the index. An empty snapshot is reported as
// ErrNoStagedChanges so every surface shows the same message.
func (c *Context) StagedChanges(ctx context.Context) (*engine.ChangeSet, error) {
	cs, err := git.StagedChanges(ctx)
	if err != nil {
		return nil, err
	}
	if !cs.HasChanges() {
		return nil, commitgenerrors.ErrNoStagedChanges
	}
	return cs, nil
}
