package git

import (
	"fmt"
	"os"
	"os/exec"
)

// CommitOptions controls how the staged changes are recorded.
type CommitOptions struct {
	// Message becomes the commit message verbatim, subject and body included.
	Message string
	// Amend folds the staged changes into the tip commit, replacing its
	// message, instead of adding a new commit.
	Amend bool
}

// Commit records the staged changes. The git process inherits our stdio so
// commit hooks can write to the terminal and prompt if they need to.
func Commit(opts CommitOptions) error {
	args := []string{"commit", "-m", opts.Message}
	if opts.Amend {
		args = append(args, "--amend")
	}

	cmd := exec.Command("git", args...)
	if defaultRunner.workingDir != "" {
		cmd.Dir = defaultRunner.workingDir
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// GetStagedDiff returns the unified diff between the index and HEAD,
// optionally narrowed to the given paths.
func GetStagedDiff(paths ...string) (string, error) {
	args := []string{"diff", "--cached"}
	if len(paths) > 0 {
		args = append(args, "--")
		args = append(args, paths...)
	}
	output, err := RunGitCommandRaw(args...)
	if err != nil {
		return "", fmt.Errorf("failed to get staged diff: %w", err)
	}
	return output, nil
}

// GetUnstagedDiff returns the unified diff between the working tree and the
// index, optionally narrowed to the given paths. Untracked files never
// appear in this diff.
func GetUnstagedDiff(paths ...string) (string, error) {
	args := []string{"diff"}
	if len(paths) > 0 {
		args = append(args, "--")
		args = append(args, paths...)
	}
	output, err := RunGitCommandRaw(args...)
	if err != nil {
		return "", fmt.Errorf("failed to get unstaged diff: %w", err)
	}
	return output, nil
}
