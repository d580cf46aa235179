// Package tui provides the terminal user interface for commitgen.
//
// It handles:
//   - Interactive prompts and selections (using survey)
//   - Structured logging and status reporting (Splog)
//   - Suggestion rendering and terminal styling (using lipgloss)
//   - The generation spinner (using bubbletea)
package tui
