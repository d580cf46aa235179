package engine

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// HeuristicConfidence is the fixed confidence of every heuristic
// suggestion. The deterministic path never claims more than this.
const HeuristicConfidence = 0.85

// categoryAnnotations are the "why it matters" lines appended to a body
// when the classified category maps to one.
var categoryAnnotations = map[string]string{
	"features":      "Change type: new feature (high confidence)",
	"API":           "Change type: API update (high confidence)",
	"testing":       "Change type: test coverage (high confidence)",
	"documentation": "Change type: documentation (high confidence)",
	"configuration": "Change type: configuration (medium confidence)",
	"components":    "Change type: UI components (high confidence)",
}

// Summarize renders the deterministic suggestion for a classified change
// set. Two calls with the same inputs produce byte-identical output.
func Summarize(cs *ChangeSet, cat CommitCategory, sig DiffSignals) Suggestion {
	return Suggestion{
		Type:       cat.Type,
		Scope:      scopeFor(cs, cat),
		Subject:    subjectLine(cs, cat, sig),
		Body:       bodyText(cs, cat, sig),
		Confidence: HeuristicConfidence,
	}
}

func subjectLine(cs *ChangeSet, cat CommitCategory, sig DiffSignals) string {
	if len(cs.Files) == 1 {
		if sig.DominantPurpose != "" {
			return sig.DominantPurpose
		}
		f := cs.Files[0]
		switch f.Status {
		case StatusAdded:
			return "add " + stemOf(f.Path)
		case StatusDeleted:
			return "remove " + stemOf(f.Path)
		default:
			return "update " + stemOf(f.Path)
		}
	}

	if mostlyDeletions(cs) {
		return removalSubject(cs)
	}
	if sig.DominantPurpose != "" {
		return sig.DominantPurpose
	}

	n := len(cs.Files)
	switch cat.Category {
	case "documentation":
		return fmt.Sprintf("update documentation (%d files)", n)
	case "testing":
		return fmt.Sprintf("update tests (%d files)", n)
	case "configuration":
		return "update configuration files"
	case "API":
		return "update API endpoints and handlers"
	case "components":
		return fmt.Sprintf("update UI components (%d files)", n)
	case "styling":
		return "update styles and formatting"
	}

	// Mirror the classifier's additions-vs-deletions fallback.
	additions, deletions := cs.TotalAdditions(), cs.TotalDeletions()
	switch {
	case additions > 2*deletions:
		return fmt.Sprintf("add new functionality (%d files)", n)
	case deletions > 2*additions:
		return fmt.Sprintf("remove and refactor code (%d files)", n)
	default:
		return fmt.Sprintf("update implementation (%d files)", n)
	}
}

// bodyText renders the multi-bullet body. Single-file changes carry no
// body.
func bodyText(cs *ChangeSet, cat CommitCategory, sig DiffSignals) string {
	if len(cs.Files) <= 1 {
		return ""
	}

	var bullets []string
	add := func(format string, args ...interface{}) {
		bullets = append(bullets, fmt.Sprintf(format, args...))
	}

	if len(sig.Components) > 0 {
		add("New components: %s", namedList(sig.Components, sig.ComponentCount))
	}
	if len(sig.Types) > 0 {
		add("New classes: %s", namedList(sig.Types, sig.TypeCount))
	}
	if len(sig.Functions) > 0 && len(sig.Components) == 0 {
		add("New functions: %s", namedList(sig.Functions, sig.FunctionCount))
	}
	if len(sig.Dependencies) > 0 {
		add("New dependencies: %s", namedList(sig.Dependencies, sig.DependencyCount))
	}
	if len(sig.ConfigKeys) > 0 {
		add("Configuration changes: %s", namedList(sig.ConfigKeys, sig.ConfigKeyCount))
	}
	if len(sig.HTTPVerbs) > 0 {
		add("API endpoints: %s", strings.Join(sig.HTTPVerbs, ", "))
	}
	if sig.UITagCount > 5 && len(sig.Components) == 0 {
		add("Updated %d UI elements", sig.UITagCount)
	}

	if len(bullets) == 0 {
		bullets = statusCountBullets(cs)
	}

	add("Total: +%d -%d lines", cs.TotalAdditions(), cs.TotalDeletions())
	if note, ok := categoryAnnotations[cat.Category]; ok {
		add("%s", note)
	}

	for i, b := range bullets {
		bullets[i] = "- " + b
	}
	return strings.Join(bullets, "\n")
}

// statusCountBullets is the fallback body when no structural signals were
// extracted: one bullet per status group, enumerated by name when small.
func statusCountBullets(cs *ChangeSet) []string {
	var added, modified, deleted []FileChange
	for _, f := range cs.Files {
		switch f.Status {
		case StatusAdded:
			added = append(added, f)
		case StatusDeleted:
			deleted = append(deleted, f)
		default:
			modified = append(modified, f)
		}
	}

	var bullets []string
	if len(added) > 0 {
		if len(added) <= 3 {
			bullets = append(bullets, "Added: "+baseNames(added))
		} else {
			bullets = append(bullets, fmt.Sprintf("Added %d new files", len(added)))
		}
	}
	if len(modified) > 0 {
		if len(modified) <= 3 {
			bullets = append(bullets, "Modified: "+baseNames(modified))
		} else {
			bullets = append(bullets, fmt.Sprintf("Modified %d files", len(modified)))
		}
	}
	if len(deleted) > 0 {
		bullets = append(bullets, removalBullet(deleted))
	}
	return bullets
}

func baseNames(files []FileChange) string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = path.Base(f.Path)
	}
	return strings.Join(names, ", ")
}

// namedList renders up to three names, noting how many more the full
// deduplicated set held.
func namedList(names []string, total int) string {
	shown := names
	if len(shown) > 3 {
		shown = shown[:3]
	}
	s := strings.Join(shown, ", ")
	if total > len(shown) {
		s += fmt.Sprintf(" and %d more", total-len(shown))
	}
	return s
}

// scopeFor picks the suggestion scope: category-keyed scopes win, then the
// most frequent parent directory, then a lib-majority check.
func scopeFor(cs *ChangeSet, cat CommitCategory) string {
	switch cat.Category {
	case "API":
		return "api"
	case "components":
		return "ui"
	case "testing":
		return "tests"
	case "cli":
		return "cli"
	case "build":
		return "build"
	}

	counts := make(map[string]int)
	for _, f := range cs.Files {
		dir := path.Base(path.Dir(f.Path))
		switch dir {
		case ".", "/", "src", "lib":
			continue
		}
		counts[dir]++
	}
	if len(counts) > 0 {
		dirs := make([]string, 0, len(counts))
		for dir := range counts {
			dirs = append(dirs, dir)
		}
		sort.Slice(dirs, func(i, j int) bool {
			if counts[dirs[i]] != counts[dirs[j]] {
				return counts[dirs[i]] > counts[dirs[j]]
			}
			return dirs[i] < dirs[j]
		})
		return dirs[0]
	}

	libLike := 0
	for _, f := range cs.Files {
		if hasSegment(f.Path, "lib", "libs", "library") {
			libLike++
		}
	}
	if 10*libLike > 6*len(cs.Files) {
		return "lib"
	}
	return ""
}
