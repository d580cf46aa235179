// Package cache persists the suggestions from one engine run so repeated
// invocations against an unchanged index skip the generative call. The cache
// holds a single entry, keyed by the snapshot's summary line, and anything
// wrong with the stored file is a miss rather than an error.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"commitgen.dev/commitgen/internal/engine"
)

// CacheFileName is the cache file, kept inside .git so it never shows up
// as an untracked file.
const CacheFileName = ".commitgen_cache"

// TTL is how long a stored entry stays valid.
const TTL = 5 * time.Minute

// Source labels suggestions served from the stored entry rather than a fresh
// engine run.
const Source = engine.Source("cache")

// Entry is the persisted form: the suggestions from one engine run, the
// summary line of the snapshot they were computed from, and when they were
// stored.
type Entry struct {
	Suggestions    []engine.Suggestion `json:"suggestions"`
	ChangesSummary string              `json:"changesSummary"`
	Timestamp      time.Time           `json:"timestamp"`
}

// CachePath returns the cache file location for a repository root.
func CachePath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", CacheFileName)
}

// Lookup returns the cached suggestions for a snapshot whose summary line
// matches the stored one and whose entry is younger than TTL. Every other
// outcome, including an unreadable or corrupt file, is reported as a miss.
func Lookup(repoRoot, summary string) ([]engine.Suggestion, bool) {
	data, err := os.ReadFile(CachePath(repoRoot))
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if entry.ChangesSummary != summary {
		return nil, false
	}
	if time.Since(entry.Timestamp) >= TTL {
		return nil, false
	}
	if len(entry.Suggestions) == 0 {
		return nil, false
	}
	return entry.Suggestions, true
}

// Store writes the suggestions for the given summary line, replacing any
// previous entry.
func Store(repoRoot, summary string, suggestions []engine.Suggestion) error {
	entry := Entry{
		Suggestions:    suggestions,
		ChangesSummary: summary,
		Timestamp:      time.Now(),
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	if err := os.WriteFile(CachePath(repoRoot), data, 0600); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// Clear removes the cache file.
func Clear(repoRoot string) error {
	err := os.Remove(CachePath(repoRoot))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
