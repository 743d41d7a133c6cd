package exec

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simonhull/hatch/fledge/output"
)

// WaitWithSpinner shows a spinner with message on out while wait runs, then
// prints a final ✅ or ❌ line. The result of wait is returned unchanged.
func WaitWithSpinner(ctx context.Context, out io.Writer, message string, wait func() error) error {
	if out == nil {
		out = os.Stderr
	}

	m := newSpinnerModel(message)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithInput(nil), tea.WithContext(ctx))

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		// Spinner errors never affect the result.
		if _, err := p.Run(); err != nil {
			output.Verbosef("spinner: %v", err)
		}
	}()

	err := wait()

	p.Send(spinnerDoneMsg{err: err})

	// Give spinner time to render final state
	select {
	case <-finished:
	case <-time.After(200 * time.Millisecond):
		p.Quit()
		<-finished
	}

	return err
}

// spinnerModel is the bubbletea model for the spinner
type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
}

type spinnerDoneMsg struct {
	err error
}

func newSpinnerModel(message string) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &spinnerModel{
		spinner: s,
		message: message,
	}
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return fmt.Sprintf("❌ %s\n", m.message)
		}
		return fmt.Sprintf("✅ %s\n", m.message)
	}
	return fmt.Sprintf("%s %s...", m.spinner.View(), m.message)
}
