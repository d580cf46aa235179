package testhelpers_test

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"commitgen.dev/commitgen/testhelpers"
)

func skipWithoutGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}
}

// TestExampleUsage demonstrates the basic pattern for using scenes.
func TestExampleUsage(t *testing.T) {
	skipWithoutGit(t)

	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	branches, err := scene.Repo.RunGitCommandAndGetOutput("branch", "--list")
	require.NoError(t, err)
	require.Contains(t, branches, "main")
}

// TestGitRepoBasicOperations tests basic Git repository operations.
func TestGitRepoBasicOperations(t *testing.T) {
	skipWithoutGit(t)

	scene := testhelpers.NewScene(t, nil)

	// Test creating a commit
	err := scene.Repo.CreateChangeAndCommit("test content", "test")
	require.NoError(t, err)

	// Test getting current branch
	branch, err := scene.Repo.CurrentBranchName()
	require.NoError(t, err)
	require.Equal(t, "main", branch)

	// Test listing commits
	messages, err := scene.Repo.ListCurrentBranchCommitMessages()
	require.NoError(t, err)
	require.Greater(t, len(messages), 0)
}

// TestStageFile shapes realistic trees for snapshot tests.
func TestStageFile(t *testing.T) {
	skipWithoutGit(t)

	scene := testhelpers.NewSceneParallel(t, func(s *testhelpers.Scene) error {
		return s.Repo.CreateChangeAndCommit("initial", "init")
	})

	err := scene.Repo.StageFile("src/components/Button.tsx", "export const Button = () => null;\n")
	require.NoError(t, err)

	staged, err := scene.Repo.RunGitCommandAndGetOutput("diff", "--cached", "--name-only")
	require.NoError(t, err)
	require.Contains(t, staged, "src/components/Button.tsx")
}

// TestExpectCommits demonstrates the commit assertion helper.
func TestExpectCommits(t *testing.T) {
	skipWithoutGit(t)

	scene := testhelpers.NewSceneParallel(t, func(s *testhelpers.Scene) error {
		if err := s.Repo.CreateChangeAndCommit("chore: first", "1"); err != nil {
			return err
		}
		return s.Repo.CreateChangeAndCommit("feat: second", "2")
	})

	testhelpers.ExpectCommits(t, scene.Repo, "main", []string{"feat: second", "chore: first"})
}
