// Package output provides styled terminal output for hatch.
//
// Every user-facing line goes through this package so the CLI, the scaffold
// pipeline and the post-generation orchestrator share one look. Styling uses
// lipgloss; callers only pick the kind of message.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var (
	mu          sync.Mutex
	writer      io.Writer = os.Stdout
	verboseMode bool
)

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

// IsVerbose reports whether verbose output is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verboseMode
}

// SetWriter redirects all output to w and returns the previous writer.
// Passing nil restores os.Stdout.
func SetWriter(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := writer
	if w == nil {
		w = os.Stdout
	}
	writer = w
	return prev
}

// Success prints a success message with 🐣 and green color.
// Use this for completed operations.
//
// Example:
//
//	output.Success("Created project: demo")
func Success(msg string) {
	writeLine(successStyle.Render("🐣 " + msg))
}

// Error prints an error message with ❌ and red color.
func Error(msg string) {
	writeLine(errorStyle.Render("❌ " + msg))
}

// Warn prints a warning in yellow. Use it for recoverable situations the user
// should know about, such as a skipped file.
func Warn(msg string) {
	writeLine(warnStyle.Render("⚠️  " + msg))
}

// Info prints an informational message in cyan.
func Info(msg string) {
	writeLine(infoStyle.Render("ℹ️  " + msg))
}

// Step prints an indented step message in gray.
//
// Example:
//
//	output.Step("cd demo")
//	output.Step("npm start")
func Step(msg string) {
	writeLine(stepStyle.Render("   " + msg))
}

// Verbose prints a debug message only if verbose mode is enabled.
//
// Example:
//
//	output.Verbose("Using templates from: ./my-templates")
func Verbose(msg string) {
	if IsVerbose() {
		writeLine(stepStyle.Render("🔍 " + msg))
	}
}

// Verbosef is Verbose with fmt.Sprintf formatting.
func Verbosef(format string, args ...any) {
	if IsVerbose() {
		Verbose(fmt.Sprintf(format, args...))
	}
}

func writeLine(s string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(writer, s)
}
