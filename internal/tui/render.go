package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"commitgen.dev/commitgen/internal/engine"
)

// palette is the color rotation used for scope highlighting.
var palette = [][]int{
	{76, 203, 241},  // Light blue
	{77, 202, 125},  // Green
	{110, 173, 38},  // Dark green
	{245, 200, 0},   // Yellow
	{248, 144, 72},  // Orange
	{244, 98, 81},   // Red
	{235, 130, 188}, // Pink
	{159, 131, 228}, // Purple
	{80, 132, 243},  // Blue
}

// typeColors maps each commit type to its display color.
var typeColors = map[engine.CommitType]lipgloss.Color{
	engine.TypeFeat:     lipgloss.Color("42"),
	engine.TypeFix:      lipgloss.Color("196"),
	engine.TypeRefactor: lipgloss.Color("205"),
	engine.TypeDocs:     lipgloss.Color("39"),
	engine.TypeStyle:    lipgloss.Color("213"),
	engine.TypeTest:     lipgloss.Color("220"),
	engine.TypeChore:    lipgloss.Color("245"),
	engine.TypePerf:     lipgloss.Color("208"),
	engine.TypeCI:       lipgloss.Color("75"),
	engine.TypeBuild:    lipgloss.Color("94"),
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render(text)
}

// ColorCommitType colors a commit type with its display color
func ColorCommitType(t engine.CommitType) string {
	color, ok := typeColors[t]
	if !ok {
		return string(t)
	}
	return lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		Render(string(t))
}

// GetScopeColor returns a deterministic color for a scope string
func GetScopeColor(scope string) (lipgloss.Color, bool) {
	if scope == "" {
		return lipgloss.Color(""), false
	}
	// Simple hash to select from the palette
	var hash uint32
	for i := 0; i < len(scope); i++ {
		hash = uint32(scope[i]) + (hash << 6) + (hash << 16) - hash
	}
	colorIndex := int(hash) % len(palette)
	color := palette[colorIndex]
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", color[0], color[1], color[2])), true
}

// ColorScope colors a scope string deterministically
func ColorScope(scope string) string {
	if color, ok := GetScopeColor(scope); ok {
		return lipgloss.NewStyle().Foreground(color).Render(scope)
	}
	return scope
}

// RenderHeader renders one suggestion's conventional header with the type,
// scope and breaking marker colored.
func RenderHeader(s engine.Suggestion) string {
	var b strings.Builder
	b.WriteString(ColorCommitType(s.Type))
	if s.Scope != "" {
		b.WriteString("(")
		b.WriteString(ColorScope(s.Scope))
		b.WriteString(")")
	}
	if s.Breaking {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("!"))
	}
	b.WriteString(": ")
	b.WriteString(s.Subject)
	return b.String()
}

// RenderSuggestions renders the numbered suggestion list with per-entry
// confidence and a trailing source line.
func RenderSuggestions(suggestions []engine.Suggestion, source engine.Source) string {
	var b strings.Builder
	for i, s := range suggestions {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			ColorDim(fmt.Sprintf("%d.", i+1)),
			RenderHeader(s),
			ColorDim(fmt.Sprintf("(%d%%)", confidencePercent(s.Confidence)))))
		if s.Body != "" {
			for _, line := range strings.Split(s.Body, "\n") {
				b.WriteString("     " + ColorDim(line) + "\n")
			}
		}
	}
	b.WriteString("\n")
	b.WriteString(ColorDim(fmt.Sprintf("  source: %s", source)))
	b.WriteString("\n")
	return b.String()
}

// RenderDegradedNote renders the note listing files whose diffs could not
// be read.
func RenderDegradedNote(paths []string) string {
	return ColorDim(fmt.Sprintf("  note: diffs unavailable for %s", strings.Join(paths, ", ")))
}

func confidencePercent(c float64) int {
	return int(c*100 + 0.5)
}
