package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"commitgen.dev/commitgen/internal/cache"
	"commitgen.dev/commitgen/internal/engine"
	commitgenerrors "commitgen.dev/commitgen/internal/errors"
	"commitgen.dev/commitgen/internal/git"
)

// recentCommitCount is how many recent subjects the status endpoint reports.
const recentCommitCount = 5

type statusResponse struct {
	Branch        string              `json:"branch"`
	HasChanges    bool                `json:"hasChanges"`
	Summary       string              `json:"summary"`
	Files         []engine.FileChange `json:"files"`
	DegradedFiles []string            `json:"degradedFiles,omitempty"`
	RecentCommits []string            `json:"recentCommits"`
}

type stageRequest struct {
	// Mode is "all" (default) for every change including untracked files,
	// or "tracked" for updates to tracked files only.
	Mode string `json:"mode,omitempty"`
}

type diffResponse struct {
	Source string `json:"source"`
	Path   string `json:"path,omitempty"`
	Diff   string `json:"diff"`
}

type suggestRequest struct {
	Model   string `json:"model,omitempty"`
	NoCache bool   `json:"noCache,omitempty"`
}

type suggestResponse struct {
	Suggestions   []engine.Suggestion `json:"suggestions"`
	Source        engine.Source       `json:"source"`
	Cached        bool                `json:"cached"`
	DegradedFiles []string            `json:"degradedFiles,omitempty"`
}

type commitRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	cs, err := git.StagedChanges(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	branch, err := git.GetCurrentBranch()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	recent, err := git.RecentCommitSubjects(recentCommitCount)
	if err != nil {
		s.logger.Warn("failed to list recent commits", "error", err)
		recent = nil
	}

	s.writeJSON(w, http.StatusOK, statusResponse{
		Branch:        branch,
		HasChanges:    cs.HasChanges(),
		Summary:       cs.SummaryText,
		Files:         cs.Files,
		DegradedFiles: cs.DegradedFiles,
		RecentCommits: recent,
	})
}

// handleDiff serves the unified diff text behind the page's expandable file
// rows. source=index (the default) reads the staged diff; source=worktree
// reads unstaged edits so the user can preview what staging would pick up.
func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	if source == "" {
		source = "index"
	}

	var paths []string
	path := r.URL.Query().Get("path")
	if path != "" {
		paths = append(paths, path)
	}

	var diff string
	var err error
	switch source {
	case "index":
		diff, err = git.GetStagedDiff(paths...)
	case "worktree":
		diff, err = git.GetUnstagedDiff(paths...)
	default:
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("unknown diff source %q", source))
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, diffResponse{Source: source, Path: path, Diff: diff})
}

func (s *Server) handleStage(w http.ResponseWriter, r *http.Request) {
	var req stageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	switch req.Mode {
	case "", "all":
		if err := git.StageAll(); err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
	case "tracked":
		if err := git.StageTracked(); err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
	default:
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("unknown stage mode %q", req.Mode))
		return
	}

	// Answer with the refreshed snapshot so the page can re-render directly.
	s.handleStatus(w, r)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	cs, err := s.rctx.StagedChanges(r.Context())
	if err != nil {
		s.writeSnapshotError(w, err)
		return
	}

	if !req.NoCache {
		if suggestions, ok := cache.Lookup(s.rctx.RepoRoot, cs.SummaryText); ok {
			s.writeJSON(w, http.StatusOK, suggestResponse{
				Suggestions:   suggestions,
				Source:        cache.Source,
				Cached:        true,
				DegradedFiles: cs.DegradedFiles,
			})
			return
		}
	}

	eng, _, disabled := s.rctx.EngineFor(req.Model)
	res, err := eng.Generate(r.Context(), cs, s.engineOptions(disabled))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	if !req.NoCache {
		if storeErr := cache.Store(s.rctx.RepoRoot, cs.SummaryText, res.Suggestions); storeErr != nil {
			s.logger.Warn("failed to store suggestions", "error", storeErr)
		}
	}

	s.writeJSON(w, http.StatusOK, suggestResponse{
		Suggestions:   res.Suggestions,
		Source:        res.Source,
		Cached:        false,
		DegradedFiles: cs.DegradedFiles,
	})
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	var req commitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("message must not be empty"))
		return
	}

	if _, err := s.rctx.StagedChanges(r.Context()); err != nil {
		s.writeSnapshotError(w, err)
		return
	}

	if _, err := git.RunGitCommandWithContext(r.Context(), "commit", "-m", message); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	// The snapshot the cache entry was keyed on no longer exists.
	_ = cache.Clear(s.rctx.RepoRoot)

	subject, _, _ := strings.Cut(message, "\n")
	s.writeJSON(w, http.StatusOK, map[string]string{"subject": subject})
}

// engineOptions folds the repository config into engine options for a
// dashboard-triggered run.
func (s *Server) engineOptions(disabled bool) engine.Options {
	cfg := s.rctx.Config

	params := engine.GenerateParams{
		MaxNewTokens: cfg.GetMaxTokens(),
		Temperature:  cfg.GetTemperature(),
	}
	if params.Temperature > 0 {
		params.Sample = true
		params.TopP = engine.DefaultTopP
	}

	return engine.Options{
		Disabled: disabled,
		Params:   params,
		Prompt: engine.PromptOptions{
			Verbosity:         cfg.GetVerbosity(),
			CustomInstruction: cfg.GetCustomPrompt(),
			IncludeBody:       cfg.GetIncludeBody(),
		},
		Logger: s.logger,
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Warn("dashboard request failed", "status", status, "error", err)
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeSnapshotError maps snapshot failures to status codes: an empty index
// is a conflict with the requested operation, anything else is internal.
func (s *Server) writeSnapshotError(w http.ResponseWriter, err error) {
	if errors.Is(err, commitgenerrors.ErrNoStagedChanges) {
		s.writeError(w, http.StatusConflict, err)
		return
	}
	s.writeError(w, http.StatusInternalServerError, err)
}
