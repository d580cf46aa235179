package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"commitgen.dev/commitgen/internal/engine"
)

// cacheScene lays out a bare repository root with a .git directory, which
// is all the cache needs.
func cacheScene(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0755))
	return root
}

func sampleSuggestions() []engine.Suggestion {
	return []engine.Suggestion{
		{Type: engine.TypeFeat, Scope: "api", Subject: "add rate limiting", Body: "- cap requests per client", Confidence: 0.9},
		{Type: engine.TypeChore, Subject: "update request middleware", Confidence: 0.85},
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	const summary = "3 files changed, +24 -5"

	t.Run("returns stored suggestions while fresh", func(t *testing.T) {
		t.Parallel()
		root := cacheScene(t)

		require.NoError(t, Store(root, summary, sampleSuggestions()))

		got, ok := Lookup(root, summary)
		require.True(t, ok)
		require.Equal(t, sampleSuggestions(), got)
	})

	t.Run("misses when no cache file exists", func(t *testing.T) {
		t.Parallel()
		root := cacheScene(t)

		got, ok := Lookup(root, summary)
		require.False(t, ok)
		require.Nil(t, got)
	})

	t.Run("misses on a summary mismatch", func(t *testing.T) {
		t.Parallel()
		root := cacheScene(t)

		require.NoError(t, Store(root, summary, sampleSuggestions()))

		_, ok := Lookup(root, "4 files changed, +30 -5")
		require.False(t, ok)
	})

	t.Run("misses once the entry has aged out", func(t *testing.T) {
		t.Parallel()
		root := cacheScene(t)

		entry := Entry{
			Suggestions:    sampleSuggestions(),
			ChangesSummary: summary,
			Timestamp:      time.Now().Add(-TTL - time.Minute),
		}
		data, err := json.MarshalIndent(entry, "", "  ")
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(CachePath(root), data, 0600))

		_, ok := Lookup(root, summary)
		require.False(t, ok)
	})

	t.Run("misses on corrupt content", func(t *testing.T) {
		t.Parallel()
		root := cacheScene(t)

		require.NoError(t, os.WriteFile(CachePath(root), []byte("{not json"), 0600))

		_, ok := Lookup(root, summary)
		require.False(t, ok)
	})

	t.Run("misses on an entry with no suggestions", func(t *testing.T) {
		t.Parallel()
		root := cacheScene(t)

		require.NoError(t, Store(root, summary, nil))

		_, ok := Lookup(root, summary)
		require.False(t, ok)
	})
}

func TestStore(t *testing.T) {
	t.Parallel()

	t.Run("persists the rendered fullMessage alongside the parts", func(t *testing.T) {
		t.Parallel()
		root := cacheScene(t)

		require.NoError(t, Store(root, "1 files changed, +4 -0", []engine.Suggestion{
			{Type: engine.TypeFeat, Scope: "api", Subject: "add rate limiting", Confidence: 0.9},
		}))

		data, err := os.ReadFile(CachePath(root))
		require.NoError(t, err)
		require.Contains(t, string(data), `"fullMessage": "feat(api): add rate limiting"`)
		require.Contains(t, string(data), `"changesSummary": "1 files changed, +4 -0"`)
	})

	t.Run("replaces the previous entry", func(t *testing.T) {
		t.Parallel()
		root := cacheScene(t)

		require.NoError(t, Store(root, "1 files changed, +1 -0", sampleSuggestions()))
		require.NoError(t, Store(root, "2 files changed, +6 -1", sampleSuggestions()))

		_, ok := Lookup(root, "1 files changed, +1 -0")
		require.False(t, ok, "older entry should be gone")

		_, ok = Lookup(root, "2 files changed, +6 -1")
		require.True(t, ok)
	})
}

func TestClear(t *testing.T) {
	t.Parallel()

	t.Run("removes the cache file", func(t *testing.T) {
		t.Parallel()
		root := cacheScene(t)

		require.NoError(t, Store(root, "1 files changed, +1 -0", sampleSuggestions()))
		require.NoError(t, Clear(root))
		require.NoFileExists(t, CachePath(root))
	})

	t.Run("tolerates a missing file", func(t *testing.T) {
		t.Parallel()
		root := cacheScene(t)

		require.NoError(t, Clear(root))
	})
}
