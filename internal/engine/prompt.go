package engine

import (
	"fmt"
	"strings"
)

// PromptOptions tune the instruction block sent to the generative model.
type PromptOptions struct {
	// Verbosity is "concise", "detailed" or "balanced" (the default).
	Verbosity string
	// CustomInstruction is appended verbatim when set.
	CustomInstruction string
	// IncludeBody asks the model for a bullet-point body after the header.
	IncludeBody bool
}

// Caps on prompt size. Large change sets get a shorter file list and fewer
// excerpts plus an explicit theme warning.
const (
	promptMaxFiles         = 10
	promptMaxFilesLarge    = 5
	promptMaxExcerpts      = 5
	promptMaxExcerptsLarge = 2
	promptExcerptLines     = 30
	largeChangeThreshold   = 20
)

// promptCue anchors the end of the prompt.
const promptCue = "Commit message:"

// instructionMarkers are phrases that occur only in the prompt's own
// instruction block. A response line containing one of them is echoed
// prompt text, and the parser discards everything from it onward.
var instructionMarkers = []string{
	"Files changed:",
	"Diff excerpts:",
	"Formatting rules:",
	"Use one of:",
	"Good example:",
	"Bad example:",
	"Describe the overall theme",
	promptCue,
}

// BuildPrompt renders the instruction block for a change set. It is a pure
// function of its inputs and never calls the model.
func BuildPrompt(cs *ChangeSet, opts PromptOptions) string {
	sections := []string{
		"Generate a conventional commit message for the staged changes below.",
		fileSection(cs),
		statsSection(cs),
	}
	if s := excerptSection(cs); s != "" {
		sections = append(sections, s)
	}
	sections = append(sections, rulesSection(opts), exampleSection())
	if len(cs.Files) > largeChangeThreshold {
		sections = append(sections, themeWarning(len(cs.Files)))
	}
	if opts.CustomInstruction != "" {
		sections = append(sections, opts.CustomInstruction)
	}
	if d := verbosityDirective(opts.Verbosity); d != "" {
		sections = append(sections, d)
	}
	sections = append(sections, promptCue)
	return strings.Join(sections, "\n\n")
}

func fileSection(cs *ChangeSet) string {
	limit := promptMaxFiles
	if len(cs.Files) > largeChangeThreshold {
		limit = promptMaxFilesLarge
	}
	var b strings.Builder
	b.WriteString("Files changed:")
	for i, f := range cs.Files {
		if i == limit {
			fmt.Fprintf(&b, "\n... and %d more files", len(cs.Files)-limit)
			break
		}
		fmt.Fprintf(&b, "\n- %s %s (+%d/-%d)", statusWord(f.Status), f.Path, f.Additions, f.Deletions)
	}
	return b.String()
}

func statusWord(s FileStatus) string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusDeleted:
		return "deleted"
	case StatusRenamed:
		return "renamed"
	case StatusCopied:
		return "copied"
	case StatusUnmerged:
		return "unmerged"
	}
	return "modified"
}

func statsSection(cs *ChangeSet) string {
	var added, modified, deleted int
	var docs, tests, config, components, api int
	for _, f := range cs.Files {
		switch f.Status {
		case StatusAdded:
			added++
		case StatusDeleted:
			deleted++
		default:
			modified++
		}
		if isDocPath(f.Path) {
			docs++
		}
		if isTestPath(f.Path) {
			tests++
		}
		if isConfigPath(f.Path) {
			config++
		}
		if isUIPath(f.Path) {
			components++
		}
		if isAPIPath(f.Path) {
			api++
		}
	}
	return fmt.Sprintf(
		"Summary: %d added, %d modified, %d deleted (docs: %d, tests: %d, config: %d, components: %d, api: %d), totalling +%d/-%d lines.",
		added, modified, deleted, docs, tests, config, components, api,
		cs.TotalAdditions(), cs.TotalDeletions())
}

func excerptSection(cs *ChangeSet) string {
	limit := promptMaxExcerpts
	if len(cs.Files) > largeChangeThreshold {
		limit = promptMaxExcerptsLarge
	}
	var b strings.Builder
	n := 0
	for _, f := range cs.Files {
		if n == limit {
			break
		}
		excerpt := diffExcerpt(f.DiffText, promptExcerptLines)
		if excerpt == "" {
			continue
		}
		if n == 0 {
			b.WriteString("Diff excerpts:")
		}
		fmt.Fprintf(&b, "\n--- %s ---\n%s", f.Path, excerpt)
		n++
	}
	return b.String()
}

// diffExcerpt keeps the first limit lines that are additions, deletions or
// hunk headers. File header lines ("+++", "---") are dropped.
func diffExcerpt(diff string, limit int) string {
	if diff == "" {
		return ""
	}
	var kept []string
	for _, line := range strings.Split(diff, "\n") {
		if len(kept) == limit {
			break
		}
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"), strings.HasPrefix(line, "-"), strings.HasPrefix(line, "@@"):
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func rulesSection(opts PromptOptions) string {
	rules := []string{
		"Formatting rules:",
		"- Format: type(scope): subject",
		"- Use one of: feat, fix, refactor, docs, style, test, chore, perf, ci, build",
		"- Subject: imperative mood, lower case, no trailing period, at most 72 characters",
		"- Scope is optional; use a short module or directory name",
	}
	if opts.IncludeBody {
		rules = append(rules, "- After a blank line, add a short bullet-point body explaining what changed")
	} else {
		rules = append(rules, "- Respond with the header line only, no body")
	}
	return strings.Join(rules, "\n")
}

func exampleSection() string {
	return strings.Join([]string{
		"Good example:",
		"feat(auth): add session refresh endpoint",
		"",
		"Bad example:",
		"type(scope): brief description of what was accomplished",
	}, "\n")
}

func themeWarning(n int) string {
	return fmt.Sprintf(
		"This change touches %d files. Describe the overall theme of the change instead of enumerating individual files.", n)
}

func verbosityDirective(verbosity string) string {
	switch verbosity {
	case "concise":
		return "Keep the message brief."
	case "detailed":
		return "Provide comprehensive detail in the body."
	}
	return ""
}
