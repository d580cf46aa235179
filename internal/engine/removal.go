package engine

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode"
)

// pascalRe matches PascalCase compounds: an uppercase start, a lowercase
// run, then at least one more uppercase letter ("LegacyWidget").
var pascalRe = regexp.MustCompile(`^[A-Z][a-z0-9]+[A-Z]`)

// removalStopwords are basename words too generic to name a removal after.
var removalStopwords = map[string]bool{
	"index": true, "test": true, "spec": true, "main": true,
	"type": true, "types": true, "style": true, "styles": true,
	"util": true, "utils": true, "helper": true, "helpers": true,
	"old": true, "new": true, "backup": true,
}

func deletedFiles(cs *ChangeSet) []FileChange {
	var out []FileChange
	for _, f := range cs.Files {
		if f.Status == StatusDeleted {
			out = append(out, f)
		}
	}
	return out
}

// mostlyDeletions reports whether deleted files make up more than 70% of a
// multi-file set.
func mostlyDeletions(cs *ChangeSet) bool {
	return len(cs.Files) > 1 && 10*len(deletedFiles(cs)) > 7*len(cs.Files)
}

// removalSubject phrases a change set dominated by deletions. It tries, in
// order: a word shared across enough file basenames, a directory segment
// common to every deleted path, a file-type pattern covering most of the
// non-generated files, and a generic count.
func removalSubject(cs *ChangeSet) string {
	deleted := deletedFiles(cs)
	if word, ok := sharedRemovalWord(deleted); ok {
		if hasTypeDeclCompanion(deleted) {
			return fmt.Sprintf("remove deprecated %s class and related type definitions", word)
		}
		return fmt.Sprintf("remove %s-related components and files", word)
	}
	if module, ok := sharedPathModule(deleted); ok {
		return fmt.Sprintf("remove %s module and related files", module)
	}
	if group, ok := dominantRemovalGroup(deleted); ok {
		return group.subject
	}
	return fmt.Sprintf("remove unused files (%d files)", len(deleted))
}

// removalBullet summarizes deleted files for the body's status-count
// fallback, reusing the shared-word and file-type analysis when available.
func removalBullet(deleted []FileChange) string {
	if word, ok := sharedRemovalWord(deleted); ok {
		return fmt.Sprintf("Removed %d %s files", len(deleted), word)
	}
	if group, ok := dominantRemovalGroup(deleted); ok {
		return fmt.Sprintf("Removed %d %s files", len(deleted), group.label)
	}
	if len(deleted) <= 3 {
		names := make([]string, len(deleted))
		for i, f := range deleted {
			names[i] = path.Base(f.Path)
		}
		return "Removed: " + strings.Join(names, ", ")
	}
	return fmt.Sprintf("Removed %d files", len(deleted))
}

// sharedRemovalWord returns the basename word shared across at least
// max(2, ceil(30% of deleted count)) deleted files. PascalCase-shaped words
// weigh double so component and class names beat filler segments; remaining
// ties go to the longer, then lexicographically smaller word.
func sharedRemovalWord(deleted []FileChange) (string, bool) {
	if len(deleted) < 2 {
		return "", false
	}
	threshold := (3*len(deleted) + 9) / 10
	if threshold < 2 {
		threshold = 2
	}

	counts := make(map[string]int)
	weights := make(map[string]int)
	for _, f := range deleted {
		for _, w := range basenameWords(f.Path) {
			counts[w]++
			if pascalRe.MatchString(w) {
				weights[w] += 2
			} else {
				weights[w]++
			}
		}
	}

	best := ""
	for w, c := range counts {
		if c < threshold {
			continue
		}
		switch {
		case best == "",
			weights[w] > weights[best],
			weights[w] == weights[best] && len(w) > len(best),
			weights[w] == weights[best] && len(w) == len(best) && w < best:
			best = w
		}
	}
	return best, best != ""
}

// basenameWords lists candidate words for one path: the extension-stripped
// stem, its dot/dash/underscore segments, the camel-case humps of each
// segment, and adjacent hump pairs (so "LegacyWidgetHelpers" also yields
// "LegacyWidget" and "WidgetHelpers"). Short and generic words are dropped.
func basenameWords(p string) []string {
	stem := stemOf(p)
	raw := []string{stem}
	for _, seg := range strings.FieldsFunc(stem, func(r rune) bool {
		return r == '.' || r == '-' || r == '_'
	}) {
		raw = append(raw, seg)
		humps := camelHumps(seg)
		if len(humps) > 1 {
			raw = append(raw, humps...)
			for i := 0; i+1 < len(humps); i++ {
				raw = append(raw, humps[i]+humps[i+1])
			}
		}
	}

	var words []string
	for _, w := range dedupe(raw) {
		if len(w) < 3 || removalStopwords[strings.ToLower(w)] {
			continue
		}
		words = append(words, w)
	}
	return words
}

// camelHumps splits "LegacyWidgetHelpers" into Legacy, Widget, Helpers.
// All-caps words are left whole.
func camelHumps(s string) []string {
	if s == strings.ToUpper(s) {
		return []string{s}
	}
	var humps []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			humps = append(humps, s[start:i])
			start = i
		}
	}
	return append(humps, s[start:])
}

func hasTypeDeclCompanion(deleted []FileChange) bool {
	for _, f := range deleted {
		if strings.HasSuffix(strings.ToLower(f.Path), ".d.ts") {
			return true
		}
	}
	return false
}

// sharedPathModule returns the deepest directory segment common to every
// deleted path, skipping generic containers.
func sharedPathModule(deleted []FileChange) (string, bool) {
	if len(deleted) < 2 {
		return "", false
	}
	common := pathSegments(deleted[0].Path)
	for _, f := range deleted[1:] {
		segs := pathSegments(f.Path)
		n := 0
		for n < len(common) && n < len(segs) && common[n] == segs[n] {
			n++
		}
		common = common[:n]
		if len(common) == 0 {
			return "", false
		}
	}
	for i := len(common) - 1; i >= 0; i-- {
		switch strings.ToLower(common[i]) {
		case "src", "lib", "app", "packages":
			continue
		}
		return common[i], true
	}
	return "", false
}

func pathSegments(p string) []string {
	dir := path.Dir(p)
	if dir == "." || dir == "/" {
		return nil
	}
	return strings.Split(dir, "/")
}

// removalGroup is one recognizable kind of deleted file.
type removalGroup struct {
	label   string
	subject string
	match   func(string) bool
}

var removalGroups = []removalGroup{
	{"test", "remove obsolete test files", isTestPath},
	{"documentation", "remove outdated documentation", isDocPath},
	{"component", "remove unused components", isUIPath},
	{"deprecated", "remove deprecated and backup files", isDeprecatedPath},
	{"style", "remove unused styles", isStylePath},
	{"configuration", "remove legacy configuration files", isConfigPath},
}

func isDeprecatedPath(p string) bool {
	base := lowerBase(p)
	for _, marker := range []string{"old", "backup", "deprecated", "legacy", ".bak", ".orig"} {
		if strings.Contains(base, marker) {
			return true
		}
	}
	return false
}

// dominantRemovalGroup finds the first pattern covering more than half of
// the non-generated deleted files.
func dominantRemovalGroup(deleted []FileChange) (removalGroup, bool) {
	var considered []string
	for _, f := range deleted {
		if !isGeneratedPath(f.Path) {
			considered = append(considered, f.Path)
		}
	}
	if len(considered) == 0 {
		return removalGroup{}, false
	}
	for _, g := range removalGroups {
		n := 0
		for _, p := range considered {
			if g.match(p) {
				n++
			}
		}
		if 2*n > len(considered) {
			return g, true
		}
	}
	return removalGroup{}, false
}
