// Package input provides interactive terminal input utilities.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ErrClosed is returned when the input stream ends before an answer is read.
var ErrClosed = errors.New("input closed")

// Prompter asks questions on a line-based input stream.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool

	// For arrow-key selection. Only set when both ends are terminals.
	stdin  io.ReadCloser
	stdout io.WriteCloser
}

// NewPrompter creates a prompter over arbitrary streams. It never uses
// arrow-key menus; Select falls back to a typed answer.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if out == nil {
		out = io.Discard
	}
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// NewConsolePrompter creates a prompter on os.Stdin / os.Stdout. Menus are
// enabled when stdin is a terminal.
func NewConsolePrompter() *Prompter {
	p := NewPrompter(os.Stdin, os.Stdout)
	if IsTerminal(os.Stdin) {
		p.interactive = true
		p.stdin = os.Stdin
		p.stdout = os.Stdout
	}
	return p
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Interactive reports whether arrow-key menus are available.
func (p *Prompter) Interactive() bool {
	return p.interactive
}

// Prompt asks the user for text input with an optional default value.
// If the user presses Enter without typing anything, the default is returned.
//
// Example:
//
//	name, err := p.Prompt("Project name", "PROJECT_NAME")
//	// Displays: Project name (PROJECT_NAME): _
func (p *Prompter) Prompt(message, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprint(p.out, promptStyle.Render(message)+" "+
			hintStyle.Render(fmt.Sprintf("(%s)", defaultValue))+": ")
	} else {
		fmt.Fprint(p.out, promptStyle.Render(message)+": ")
	}

	line, err := p.readLine()
	if err != nil {
		return "", err
	}

	if line == "" {
		return defaultValue, nil
	}
	return line, nil
}

// Confirm asks the user a yes/no question.
// Returns true if the user answers yes (y/Y/yes/YES), false otherwise.
// If defaultYes is true, pressing Enter returns true.
func (p *Prompter) Confirm(message string, defaultYes bool) (bool, error) {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	fmt.Fprint(p.out, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")

	line, err := p.readLine()
	if err != nil {
		return false, err
	}

	line = strings.ToLower(line)
	if line == "" {
		return defaultYes, nil
	}
	return line == "y" || line == "yes", nil
}

// Select asks the user to pick one of choices. On a terminal an arrow-key
// menu is shown with the cursor on defaultValue; otherwise the answer is typed
// and returned as-is, so callers must validate it.
func (p *Prompter) Select(message string, choices []string, defaultValue string) (string, error) {
	if !p.interactive {
		hint := strings.Join(choices, "/")
		return p.Prompt(fmt.Sprintf("%s [%s]", message, hint), defaultValue)
	}

	cursor := 0
	for i, c := range choices {
		if c == defaultValue {
			cursor = i
			break
		}
	}

	sel := promptui.Select{
		Label:     message,
		Items:     choices,
		CursorPos: cursor,
		Stdin:     p.stdin,
		Stdout:    p.stdout,
	}
	_, choice, err := sel.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrInterrupt) {
			return "", fmt.Errorf("%w: %v", ErrClosed, err)
		}
		return "", fmt.Errorf("selection failed: %w", err)
	}
	return choice, nil
}

// readLine reads one line. A final line without a newline is accepted; an
// empty stream is ErrClosed.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			fmt.Fprintln(p.out)
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
			return "", ErrClosed
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
