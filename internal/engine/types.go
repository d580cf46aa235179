package engine

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FileStatus is the single-letter staged status of a file, as reported by
// the version-control adapter.
type FileStatus string

const (
	StatusAdded    FileStatus = "A"
	StatusModified FileStatus = "M"
	StatusDeleted  FileStatus = "D"
	StatusRenamed  FileStatus = "R"
	StatusCopied   FileStatus = "C"
	StatusUnmerged FileStatus = "U"
)

// ParseFileStatus maps a porcelain status code to a FileStatus. Rename and
// copy codes may carry a similarity score suffix ("R100"); only the leading
// letter matters. Unknown codes are treated as modifications.
func ParseFileStatus(code string) FileStatus {
	if code == "" {
		return StatusModified
	}
	switch code[0] {
	case 'A':
		return StatusAdded
	case 'M':
		return StatusModified
	case 'D':
		return StatusDeleted
	case 'R':
		return StatusRenamed
	case 'C':
		return StatusCopied
	case 'U':
		return StatusUnmerged
	}
	return StatusModified
}

// FileChange is one staged file: its repository-relative path, status,
// line counts and raw unified-diff text. DiffText may be empty when the
// per-file diff could not be retrieved.
type FileChange struct {
	Path      string     `json:"path"`
	Status    FileStatus `json:"status"`
	Additions int        `json:"additions"`
	Deletions int        `json:"deletions"`
	DiffText  string     `json:"-"`
}

// ChangeSet is the full staged snapshot for one engine run. Files keep the
// adapter's reporting order; no engine decision depends on that order.
// DegradedFiles lists paths whose individual diff retrieval failed and were
// kept as zero-diff placeholders.
type ChangeSet struct {
	Files         []FileChange `json:"files"`
	SummaryText   string       `json:"summaryText"`
	DegradedFiles []string     `json:"degradedFiles,omitempty"`
}

// NewChangeSet builds a ChangeSet and derives its summary line from the
// given files.
func NewChangeSet(files []FileChange, degraded []string) *ChangeSet {
	cs := &ChangeSet{Files: files, DegradedFiles: degraded}
	cs.SummaryText = fmt.Sprintf("%d files changed, +%d -%d",
		len(files), cs.TotalAdditions(), cs.TotalDeletions())
	return cs
}

// HasChanges reports whether the snapshot contains any files.
func (cs *ChangeSet) HasChanges() bool {
	return len(cs.Files) > 0
}

// TotalAdditions returns the number of added lines across all files.
func (cs *ChangeSet) TotalAdditions() int {
	total := 0
	for _, f := range cs.Files {
		total += f.Additions
	}
	return total
}

// TotalDeletions returns the number of deleted lines across all files.
func (cs *ChangeSet) TotalDeletions() int {
	total := 0
	for _, f := range cs.Files {
		total += f.Deletions
	}
	return total
}

// DiffSignals is the bag of shallow structural signals extracted from a
// change set. The name slices are deduplicated and capped to bound output
// length; the Count fields hold the deduplicated totals before capping and
// drive threshold decisions. The bag is purely intermediate and never
// persisted.
type DiffSignals struct {
	Functions    []string
	Types        []string
	Components   []string
	Dependencies []string
	ConfigKeys   []string
	UITags       []string
	HTTPVerbs    []string

	FunctionCount   int
	TypeCount       int
	ComponentCount  int
	UITagCount      int
	DependencyCount int
	ConfigKeyCount  int

	// DominantPurpose is the single best-guess phrase for the overall
	// intent of the change, or empty when no signal category dominates.
	DominantPurpose string
}

// CommitType is one of the ten conventional commit types.
type CommitType string

const (
	TypeFeat     CommitType = "feat"
	TypeFix      CommitType = "fix"
	TypeRefactor CommitType = "refactor"
	TypeDocs     CommitType = "docs"
	TypeStyle    CommitType = "style"
	TypeTest     CommitType = "test"
	TypeChore    CommitType = "chore"
	TypePerf     CommitType = "perf"
	TypeCI       CommitType = "ci"
	TypeBuild    CommitType = "build"
)

// commitTypes is the closed set of valid commit types.
var commitTypes = map[CommitType]bool{
	TypeFeat: true, TypeFix: true, TypeRefactor: true, TypeDocs: true,
	TypeStyle: true, TypeTest: true, TypeChore: true, TypePerf: true,
	TypeCI: true, TypeBuild: true,
}

// ValidCommitType reports whether s (case-insensitive) is one of the ten
// known commit types.
func ValidCommitType(s string) bool {
	return commitTypes[CommitType(strings.ToLower(s))]
}

// CommitCategory is the classifier's verdict: a commit type, a descriptive
// label that drives the summarizer's phrasing and default scope, and the
// files judged individually significant.
type CommitCategory struct {
	Type         CommitType
	Category     string
	NotableFiles []string
}

// Suggestion is one proposed commit message.
type Suggestion struct {
	Type       CommitType `json:"type"`
	Scope      string     `json:"scope,omitempty"`
	Subject    string     `json:"subject"`
	Body       string     `json:"body,omitempty"`
	Breaking   bool       `json:"breaking,omitempty"`
	Confidence float64    `json:"confidence"`
}

// FullMessage renders the canonical conventional form: the header
// "type(scope)!: subject" with scope and the breaking marker present only
// when set, then a blank line and the body when present.
func (s Suggestion) FullMessage() string {
	var b strings.Builder
	b.WriteString(string(s.Type))
	if s.Scope != "" {
		b.WriteString("(")
		b.WriteString(s.Scope)
		b.WriteString(")")
	}
	if s.Breaking {
		b.WriteString("!")
	}
	b.WriteString(": ")
	b.WriteString(s.Subject)
	if s.Body != "" {
		b.WriteString("\n\n")
		b.WriteString(s.Body)
	}
	return b.String()
}

// MarshalJSON emits the suggestion parts plus the rendered fullMessage, so
// persisted and API consumers get both forms without re-deriving the header
// grammar. Unmarshaling reads the parts and ignores fullMessage.
func (s Suggestion) MarshalJSON() ([]byte, error) {
	type plain Suggestion
	return json.Marshal(struct {
		plain
		FullMessage string `json:"fullMessage"`
	}{plain(s), s.FullMessage()})
}
