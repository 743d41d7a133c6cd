package generator

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"
)

var (
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("green"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// UnifiedDiff returns a unified diff between the existing file and the
// generated content, with 3 lines of context. Identical inputs yield "".
func UnifiedDiff(path string, existing, proposed []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(existing)),
		B:        difflib.SplitLines(string(proposed)),
		FromFile: path + " (existing)",
		ToFile:   path + " (generated)",
		Context:  3,
	})
}

// ColorizeDiff styles a unified diff for the terminal.
func ColorizeDiff(diff string) string {
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = headerStyle.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = hunkStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = addedStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removedStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
