package tui

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// workDoneMsg is sent when the wrapped work function returns.
type workDoneMsg struct {
	err error
}

// workingModel is the bubbletea model shown while the engine consults the
// model. Ctrl+C cancels the work's context but the model keeps running
// until the work function returns, so the caller's captured results are
// never written after the program exits.
type workingModel struct {
	spinner     spinner.Model
	label       string
	cancel      context.CancelFunc
	interrupted bool
	done        bool
	err         error
	work        func() tea.Msg
}

func newWorkingModel(label string, cancel context.CancelFunc, work func() tea.Msg) workingModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return workingModel{
		spinner: s,
		label:   label,
		cancel:  cancel,
		work:    work,
	}
}

func (m workingModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.work)
}

func (m workingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.interrupted = true
			m.cancel()
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case workDoneMsg:
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m workingModel) View() string {
	if m.done {
		return ""
	}
	line := fmt.Sprintf("  %s %s", m.spinner.View(), m.label)
	if m.interrupted {
		line += " " + lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("(canceling)")
	}
	return line
}

// RunWithSpinner runs fn behind an animated spinner with the given label.
// Console logging is quieted while the spinner owns the terminal; records
// still reach the log file. In non-TTY environments the label is printed
// once and fn runs inline. Ctrl+C cancels fn's context; fn decides what
// cancellation means.
func RunWithSpinner(ctx context.Context, splog *Splog, label string, fn func(ctx context.Context) error) error {
	if !IsTTY() {
		splog.Info("%s", label)
		return fn(ctx)
	}

	wasQuiet := splog.IsQuiet()
	splog.SetQuiet(true)
	defer splog.SetQuiet(wasQuiet)

	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newWorkingModel(label, cancel, func() tea.Msg {
		return workDoneMsg{err: fn(workCtx)}
	})

	p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	final, err := p.Run()
	if err != nil {
		return err
	}

	if finalModel, ok := final.(workingModel); ok {
		return finalModel.err
	}
	return fmt.Errorf("unexpected model type")
}

// IsTTY returns true if we can use a TTY for interactive TUI
func IsTTY() bool {
	// First check if stdin/stdout are terminals
	if !((isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))) {
		return false
	}
	// Also try to open /dev/tty to verify it's actually available
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
