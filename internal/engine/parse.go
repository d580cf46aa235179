package engine

import (
	"regexp"
	"strings"
)

// GenerativeConfidence is attached to every suggestion recovered from model
// output.
const GenerativeConfidence = 0.9

// maxParsedSuggestions bounds how many suggestions one response may yield.
const maxParsedSuggestions = 2

// headerRe is the commit-header grammar: a known type, an optional
// parenthesized scope, an optional breaking marker, a colon and a subject.
var headerRe = regexp.MustCompile(
	`^(?i)(feat|fix|refactor|docs|style|test|chore|perf|ci|build)(?:\(([^)]+)\))?(!)?:\s*(.+)$`)

// placeholderSubjects mark a header line as echoed template text rather
// than a real suggestion.
var placeholderSubjects = []string{
	"type(scope)",
	"brief description",
	"what was accomplished",
}

// bodyLeakagePhrases mark a body line as leaked instruction text.
var bodyLeakagePhrases = []string{
	"commit message",
	"example",
	"format",
	"generate",
	"type:",
	"scope:",
	"description:",
}

// ParseResponse extracts structured suggestions from raw model output. It
// never fails: unusable text simply yields zero suggestions. At most two
// suggestions are returned, in discovery order.
func ParseResponse(text string) []Suggestion {
	lines := strings.Split(text, "\n")

	// Everything from the first echoed instruction line onward is the
	// prompt talking to itself.
	for i, line := range lines {
		if containsInstructionMarker(line) {
			lines = lines[:i]
			break
		}
	}

	var (
		out  []Suggestion
		open *Suggestion
		body []string
	)
	closeOpen := func() {
		if open == nil {
			return
		}
		open.Body = strings.Join(body, "\n")
		out = append(out, *open)
		open, body = nil, nil
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := headerRe.FindStringSubmatch(stripListMarker(line)); m != nil {
			if isPlaceholderHeader(line, m[4]) {
				continue
			}
			closeOpen()
			open = &Suggestion{
				Type:       CommitType(strings.ToLower(m[1])),
				Scope:      m[2],
				Breaking:   m[3] == "!",
				Subject:    strings.TrimSpace(m[4]),
				Confidence: GenerativeConfidence,
			}
			continue
		}

		if open != nil && !isBodyLeakage(line) {
			body = append(body, line)
		}
	}
	closeOpen()

	if len(out) > maxParsedSuggestions {
		out = out[:maxParsedSuggestions]
	}
	return out
}

func containsInstructionMarker(line string) bool {
	for _, marker := range instructionMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// stripListMarker removes list prefixes and backtick quoting so headers
// inside numbered or bulleted answers still parse.
func stripListMarker(line string) string {
	line = strings.TrimLeft(line, "-*> ")
	if i := strings.IndexByte(line, ' '); i > 0 && i <= 3 && strings.HasSuffix(line[:i], ".") {
		if _, numeric := parseListNumber(line[:i-1]); numeric {
			line = strings.TrimSpace(line[i:])
		}
	}
	return strings.Trim(line, "`")
}

func parseListNumber(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// isPlaceholderHeader discards header-shaped lines that repeat the prompt's
// template instead of describing the change.
func isPlaceholderHeader(line, subject string) bool {
	lower := strings.ToLower(strings.TrimSpace(subject))
	for _, phrase := range placeholderSubjects {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	if lower == "improvements" || lower == "updates" {
		return true
	}
	return strings.Contains(strings.ToLower(line), "description:")
}

func isBodyLeakage(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range bodyLeakagePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
