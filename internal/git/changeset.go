package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"commitgen.dev/commitgen/internal/engine"
)

// StatusEntry is one record from `git diff --cached --name-status -z`.
// Status keeps the raw porcelain code ("M", "A", "R100"); Path is the new
// path for renames and copies.
type StatusEntry struct {
	Status string
	Path   string
}

// LineStat holds the added and deleted line counts for one staged file.
// Binary files, which git reports as "-", count as zero.
type LineStat struct {
	Additions int
	Deletions int
}

// StagedChanges collects the staged snapshot as the suggestion engine's
// ChangeSet. Listing failures abort; per-file diff retrieval is best effort,
// a failing file keeps its entry with empty diff text and its path recorded
// in DegradedFiles. An empty snapshot returns an empty ChangeSet, not an
// error.
func StagedChanges(ctx context.Context) (*engine.ChangeSet, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	nameStatus, err := RunGitCommandRawWithContext(ctx, "diff", "--cached", "--name-status", "-z")
	if err != nil {
		return nil, fmt.Errorf("failed to list staged files: %w", err)
	}
	entries := ParseNameStatus(nameStatus)

	numstat, err := RunGitCommandRawWithContext(ctx, "diff", "--cached", "--numstat", "-z")
	if err != nil {
		return nil, fmt.Errorf("failed to collect staged line counts: %w", err)
	}
	stats := ParseNumstat(numstat)

	files := make([]engine.FileChange, 0, len(entries))
	var degraded []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stat := stats[entry.Path]
		change := engine.FileChange{
			Path:      entry.Path,
			Status:    engine.ParseFileStatus(entry.Status),
			Additions: stat.Additions,
			Deletions: stat.Deletions,
		}

		diff, err := RunGitCommandRawWithContext(ctx, "diff", "--cached", "--", entry.Path)
		if err != nil {
			degraded = append(degraded, entry.Path)
		} else {
			change.DiffText = diff
		}
		files = append(files, change)
	}

	return engine.NewChangeSet(files, degraded), nil
}

// ParseNameStatus parses NUL-separated `git diff --name-status -z` output.
// Rename and copy records carry two paths; the new path wins. Truncated
// trailing records are dropped.
func ParseNameStatus(out string) []StatusEntry {
	fields := strings.Split(out, "\x00")

	var entries []StatusEntry
	for i := 0; i < len(fields); {
		status := fields[i]
		if status == "" {
			i++
			continue
		}
		if status[0] == 'R' || status[0] == 'C' {
			if i+2 >= len(fields) {
				break
			}
			entries = append(entries, StatusEntry{Status: status, Path: fields[i+2]})
			i += 3
			continue
		}
		if i+1 >= len(fields) {
			break
		}
		entries = append(entries, StatusEntry{Status: status, Path: fields[i+1]})
		i += 2
	}
	return entries
}

// ParseNumstat parses NUL-separated `git diff --numstat -z` output into a
// map keyed by path. Rename and copy records leave the inline path empty and
// append the two paths as separate fields; the new path wins. Malformed
// records are skipped.
func ParseNumstat(out string) map[string]LineStat {
	fields := strings.Split(out, "\x00")

	stats := make(map[string]LineStat)
	for i := 0; i < len(fields); {
		record := fields[i]
		if record == "" {
			i++
			continue
		}

		added, rest, ok := strings.Cut(record, "\t")
		if !ok {
			i++
			continue
		}
		deleted, path, ok := strings.Cut(rest, "\t")
		if !ok {
			i++
			continue
		}

		if path == "" {
			if i+2 >= len(fields) {
				break
			}
			path = fields[i+2]
			i += 3
		} else {
			i++
		}

		stats[path] = LineStat{
			Additions: parseStatCount(added),
			Deletions: parseStatCount(deleted),
		}
	}
	return stats
}

// parseStatCount converts one numstat count field. Binary files report "-"
// and count as zero, as does anything unparseable.
func parseStatCount(field string) int {
	if field == "-" {
		return 0
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0
	}
	return n
}
