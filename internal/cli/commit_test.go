package cli_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"commitgen.dev/commitgen/testhelpers"
)

func TestCommitCommand(t *testing.T) {
	t.Parallel()
	binaryPath := getCommitgenBinary(t)

	t.Run("commits the highest-confidence suggestion with --yes", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.StageFile("README.md", "# Usage\n\nRun the tool.\n"))

		cmd := exec.Command(binaryPath, "commit", "--no-ai", "--yes")
		cmd.Dir = scene.Dir
		output, err := cmd.CombinedOutput()

		require.NoError(t, err, "commit command failed: %s", string(output))
		require.Contains(t, string(output), "Committed: docs: add README")

		messages, err := scene.Repo.ListCurrentBranchCommitMessages()
		require.NoError(t, err)
		require.Equal(t, "docs: add README", messages[0])
	})

	t.Run("defaults to the best suggestion without a terminal", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.StageFile("README.md", "# Usage\n\nRun the tool.\n"))

		cmd := exec.Command(binaryPath, "commit", "--no-ai")
		cmd.Dir = scene.Dir
		output, err := cmd.CombinedOutput()

		require.NoError(t, err, "commit command failed: %s", string(output))

		messages, err := scene.Repo.ListCurrentBranchCommitMessages()
		require.NoError(t, err)
		require.Equal(t, "docs: add README", messages[0])
	})

	t.Run("amend replaces the previous commit", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.StageFile("README.md", "# Usage\n\nRun the tool.\n"))

		before, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)

		cmd := exec.Command(binaryPath, "commit", "--no-ai", "--yes", "--amend")
		cmd.Dir = scene.Dir
		output, err := cmd.CombinedOutput()

		require.NoError(t, err, "commit command failed: %s", string(output))
		require.Contains(t, string(output), "Amended: docs: add README")

		// The tip was rewritten, not extended.
		after, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)
		require.NotEqual(t, before, after)
		testhelpers.ExpectCommits(t, scene.Repo, "main", []string{"docs: add README"})

		messages, err := scene.Repo.ListCurrentBranchCommitMessages()
		require.NoError(t, err)
		require.Len(t, messages, 1)
	})

	t.Run("reports no staged changes on a clean index", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)

		cmd := exec.Command(binaryPath, "commit", "--no-ai", "--yes")
		cmd.Dir = scene.Dir
		output, err := cmd.CombinedOutput()

		require.Error(t, err)
		require.Contains(t, string(output), "no staged changes")
	})

	t.Run("clears the cached suggestions after committing", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.StageFile("README.md", "# Usage\n\nRun the tool.\n"))

		cmd := exec.Command(binaryPath, "suggest", "--no-ai")
		cmd.Dir = scene.Dir
		_, err := cmd.CombinedOutput()
		require.NoError(t, err)
		require.FileExists(t, filepath.Join(scene.Dir, ".git", ".commitgen_cache"))

		cmd = exec.Command(binaryPath, "commit", "--no-ai", "--yes")
		cmd.Dir = scene.Dir
		output, err := cmd.CombinedOutput()
		require.NoError(t, err, "commit command failed: %s", string(output))

		require.NoFileExists(t, filepath.Join(scene.Dir, ".git", ".commitgen_cache"))
	})

	t.Run("passes the message through the editor with --edit", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.StageFile("README.md", "# Usage\n\nRun the tool.\n"))

		// An editor that leaves the file untouched commits the suggestion
		// verbatim.
		cmd := exec.Command(binaryPath, "commit", "--no-ai", "--yes", "--edit")
		cmd.Dir = scene.Dir
		cmd.Env = append(os.Environ(), "GIT_EDITOR=true")
		output, err := cmd.CombinedOutput()

		require.NoError(t, err, "commit command failed: %s", string(output))

		messages, err := scene.Repo.ListCurrentBranchCommitMessages()
		require.NoError(t, err)
		require.Equal(t, "docs: add README", messages[0])
	})
}
