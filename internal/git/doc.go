// Package git provides low-level Git operations.
//
// It wraps git command execution and go-git and provides a Go-friendly
// interface for:
//   - Repo state queries (root, current branch, staged/unstaged status)
//   - The staged snapshot consumed by the suggestion engine
//   - Commit creation (message, amend, editor passthrough)
//   - Recent commit history lookups
//
// This package should be the only place where direct git commands are executed.
package git
