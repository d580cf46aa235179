package cli_test

import (
	"encoding/json"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"commitgen.dev/commitgen/testhelpers"
)

func TestSuggestCommand(t *testing.T) {
	t.Parallel()
	binaryPath := getCommitgenBinary(t)

	t.Run("suggests heuristically for staged changes", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.StageFile("README.md", "# Usage\n\nRun the tool.\n"))

		cmd := exec.Command(binaryPath, "suggest", "--no-ai")
		cmd.Dir = scene.Dir
		output, err := cmd.CombinedOutput()

		require.NoError(t, err, "suggest command failed: %s", string(output))
		require.Contains(t, string(output), "docs: add README (85%)")
		require.Contains(t, string(output), "source: heuristic")
	})

	t.Run("reports no staged changes on a clean index", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)

		cmd := exec.Command(binaryPath, "suggest", "--no-ai")
		cmd.Dir = scene.Dir
		output, err := cmd.CombinedOutput()

		require.Error(t, err)
		require.Contains(t, string(output), "no staged changes")
	})

	t.Run("hints at untracked files when nothing is staged", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.WriteFile("README.md", "# Usage\n"))

		cmd := exec.Command(binaryPath, "suggest", "--no-ai")
		cmd.Dir = scene.Dir
		output, err := cmd.CombinedOutput()

		require.Error(t, err)
		require.Contains(t, string(output), "no staged changes")
		require.Contains(t, string(output), "untracked files")
		require.Contains(t, string(output), "rerun with --all")
	})

	t.Run("all stages the working tree before suggesting", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.WriteFile("README.md", "# Usage\n\nRun the tool.\n"))

		cmd := exec.Command(binaryPath, "suggest", "--no-ai", "--all", "--yes")
		cmd.Dir = scene.Dir
		output, err := cmd.CombinedOutput()

		require.NoError(t, err, "suggest command failed: %s", string(output))
		require.Equal(t, "docs: add README\n", string(output))
	})

	t.Run("fails outside a git repository", func(t *testing.T) {
		t.Parallel()

		cmd := exec.Command(binaryPath, "suggest", "--no-ai")
		cmd.Dir = t.TempDir()
		output, err := cmd.CombinedOutput()

		require.Error(t, err)
		require.Contains(t, string(output), "not a git repository")
	})

	t.Run("json output carries the rendered message", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.StageFile("README.md", "# Usage\n\nRun the tool.\n"))

		cmd := exec.Command(binaryPath, "suggest", "--no-ai", "--json")
		cmd.Dir = scene.Dir
		output, err := cmd.CombinedOutput()
		require.NoError(t, err, "suggest command failed: %s", string(output))

		var payload struct {
			Suggestions []struct {
				Type        string  `json:"type"`
				Scope       string  `json:"scope"`
				Subject     string  `json:"subject"`
				Confidence  float64 `json:"confidence"`
				FullMessage string  `json:"fullMessage"`
			} `json:"suggestions"`
			Source string `json:"source"`
			Cached bool   `json:"cached"`
		}
		require.NoError(t, json.Unmarshal(output, &payload), "not valid JSON: %s", string(output))
		require.Len(t, payload.Suggestions, 1)
		require.Equal(t, "docs", payload.Suggestions[0].Type)
		require.Equal(t, "add README", payload.Suggestions[0].Subject)
		require.Equal(t, "docs: add README", payload.Suggestions[0].FullMessage)
		require.InDelta(t, 0.85, payload.Suggestions[0].Confidence, 0.001)
		require.Equal(t, "heuristic", payload.Source)
		require.False(t, payload.Cached)
	})

	t.Run("serves the stored suggestions on a second run", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.StageFile("README.md", "# Usage\n\nRun the tool.\n"))

		cmd := exec.Command(binaryPath, "suggest", "--no-ai")
		cmd.Dir = scene.Dir
		output, err := cmd.CombinedOutput()
		require.NoError(t, err, "first suggest failed: %s", string(output))

		cmd = exec.Command(binaryPath, "suggest", "--no-ai")
		cmd.Dir = scene.Dir
		output, err = cmd.CombinedOutput()
		require.NoError(t, err, "second suggest failed: %s", string(output))

		require.Contains(t, string(output), "docs: add README (85%)")
		require.Contains(t, string(output), "source: cache")
	})

	t.Run("no-cache forces a fresh run", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.StageFile("README.md", "# Usage\n\nRun the tool.\n"))

		cmd := exec.Command(binaryPath, "suggest", "--no-ai")
		cmd.Dir = scene.Dir
		_, err := cmd.CombinedOutput()
		require.NoError(t, err)

		cmd = exec.Command(binaryPath, "suggest", "--no-ai", "--no-cache")
		cmd.Dir = scene.Dir
		output, err := cmd.CombinedOutput()
		require.NoError(t, err)
		require.Contains(t, string(output), "source: heuristic")
	})

	t.Run("yes prints only the message", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.StageFile("README.md", "# Usage\n\nRun the tool.\n"))

		cmd := exec.Command(binaryPath, "suggest", "--no-ai", "--yes")
		cmd.Dir = scene.Dir
		output, err := cmd.CombinedOutput()

		require.NoError(t, err, "suggest command failed: %s", string(output))
		require.Equal(t, "docs: add README\n", string(output))
	})

	t.Run("select falls back to the best suggestion without a terminal", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.StageFile("README.md", "# Usage\n\nRun the tool.\n"))

		cmd := exec.Command(binaryPath, "suggest", "--no-ai", "--select")
		cmd.Dir = scene.Dir
		output, err := cmd.CombinedOutput()

		require.NoError(t, err, "suggest command failed: %s", string(output))
		require.Equal(t, "docs: add README\n", string(output))
	})

	t.Run("model sentinel disables generation", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.StageFile("README.md", "# Usage\n\nRun the tool.\n"))

		cmd := exec.Command(binaryPath, "suggest", "--model", "none")
		cmd.Dir = scene.Dir
		output, err := cmd.CombinedOutput()

		require.NoError(t, err, "suggest command failed: %s", string(output))
		require.Contains(t, string(output), "source: heuristic")
	})

	t.Run("multi-file change carries a body", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.StageFile("docs/guide.md", "# Guide\n"))
		require.NoError(t, scene.Repo.StageFile("docs/install.md", "# Install\n"))

		cmd := exec.Command(binaryPath, "suggest", "--no-ai")
		cmd.Dir = scene.Dir
		output, err := cmd.CombinedOutput()

		require.NoError(t, err, "suggest command failed: %s", string(output))
		require.Contains(t, string(output), "docs(docs): update documentation (2 files)")
		require.Contains(t, string(output), "- Added: guide.md, install.md")
	})
}
