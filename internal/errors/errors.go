// Package errors provides sentinel errors and custom error types for the
// commitgen application. Use errors.Is() and errors.As() to check for
// specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrNotARepository indicates the working directory is not inside a
	// git repository
	ErrNotARepository = errors.New("not a git repository")

	// ErrNoStagedChanges indicates the index holds nothing to describe
	ErrNoStagedChanges = errors.New("no staged changes")

	// ErrEmptyChangeSet indicates an empty change set reached the engine
	ErrEmptyChangeSet = errors.New("change set is empty")

	// ErrModelUnavailable indicates the generative model could not be
	// reached or is not served
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrGenerateTimeout indicates a generative call exceeded its budget
	ErrGenerateTimeout = errors.New("generation timed out")
)

// ModelUnavailableError reports which model could not be served and why
type ModelUnavailableError struct {
	Model  string
	Reason string
}

func (e *ModelUnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("model %s unavailable: %s", e.Model, e.Reason)
	}
	return fmt.Sprintf("model %s unavailable", e.Model)
}

// Is returns true if the target error is ErrModelUnavailable
func (e *ModelUnavailableError) Is(target error) bool {
	return target == ErrModelUnavailable
}

// NewModelUnavailableError creates a new ModelUnavailableError
func NewModelUnavailableError(model, reason string) *ModelUnavailableError {
	return &ModelUnavailableError{Model: model, Reason: reason}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
