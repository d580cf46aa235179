// Package testhelpers provides testing utilities for the commitgen CLI,
// including a scene system, Git repository helpers, and custom assertions.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// ExpectCommits asserts that the branch starts with the expected commit
// subjects, newest first.
func ExpectCommits(t *testing.T, repo *GitRepo, branch string, expected []string) {
	t.Helper()

	output, err := repo.RunGitCommandAndGetOutput("log", "--oneline", "--format=%s", branch)
	require.NoError(t, err, "Failed to list commits")

	commits := []string{}
	for _, c := range strings.Split(strings.TrimSpace(output), "\n") {
		c = strings.TrimSpace(c)
		if c != "" {
			commits = append(commits, c)
		}
	}

	if len(commits) < len(expected) {
		require.Fail(t, "Not enough commits", "Expected %d commits, got %d", len(expected), len(commits))
		return
	}

	require.Equal(t, expected, commits[:len(expected)], "Commits do not match")
}
