// Package input provides interactive terminal input utilities.
//
// # Usage
//
//	p := input.NewConsolePrompter()
//
//	// Ask for text input with a default
//	name, err := p.Prompt("Project name", "PROJECT_NAME")
//
//	// Ask yes/no question
//	ok, err := p.Confirm("Continue?", true)
//
//	// Pick one of a fixed set
//	license, err := p.Select("License", []string{"MIT", "GPL-3.0"}, "MIT")
//
// # Styling
//
// Prompts are cyan and bold; hints (defaults, [Y/n]) are gray.
//
// # Non-Interactive Mode
//
// When stdin is not a terminal, Select degrades to a typed answer, so piped
// input works line by line. A closed stream yields ErrClosed instead of
// silently returning defaults; callers that want defaults should not prompt.
//
// NewPrompter accepts any reader and writer, which is how the tests drive it.
package input
