package generator

import (
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
)

// ConflictResolution represents what to do with an existing file
type ConflictResolution int

const (
	Skip ConflictResolution = iota
	Overwrite
	ShowDiff
	Cancel
)

func (c ConflictResolution) String() string {
	switch c {
	case Skip:
		return "skip"
	case Overwrite:
		return "overwrite"
	case ShowDiff:
		return "diff"
	default:
		return "cancel"
	}
}

// ConflictStrategy determines how to resolve conflicts
type ConflictStrategy interface {
	Resolve(path string, existing, newer []byte) (ConflictResolution, error)
}

// Resolver handles file conflict resolution
type Resolver struct {
	strategy ConflictStrategy
}

// NewResolver creates a conflict resolver with the specified flags.
// Returns error if --force is combined with --skip or --diff.
//
// Without flags, an interactive resolver asks the user; a non-interactive
// one fails with the conflict so nothing is overwritten silently.
func NewResolver(force, skip, diff, interactive bool) (*Resolver, error) {
	if force && (skip || diff) {
		return nil, fmt.Errorf("--force cannot be combined with --skip or --diff")
	}
	if skip && diff {
		return nil, fmt.Errorf("--skip cannot be combined with --diff")
	}

	return &Resolver{
		strategy: selectStrategy(force, skip, diff, interactive),
	}, nil
}

// NewResolverWithStrategy wraps an explicit strategy
func NewResolverWithStrategy(s ConflictStrategy) *Resolver {
	return &Resolver{strategy: s}
}

// ResolveConflict determines what to do with a file that already exists.
func (r *Resolver) ResolveConflict(path string, existing, newer []byte) (ConflictResolution, error) {
	return r.strategy.Resolve(path, existing, newer)
}

// selectStrategy chooses the appropriate strategy based on flags
func selectStrategy(force, skip, diff, interactive bool) ConflictStrategy {
	switch {
	case force:
		return &ForceStrategy{}
	case skip:
		return &SkipStrategy{}
	case diff:
		return &DiffStrategy{Out: os.Stdout, Ask: &InteractiveStrategy{}}
	case interactive:
		return &InteractiveStrategy{Out: os.Stdout}
	default:
		return &FailStrategy{}
	}
}

// ForceStrategy always returns Overwrite (no prompts)
type ForceStrategy struct{}

// Resolve always returns Overwrite for force mode
func (s *ForceStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return Overwrite, nil
}

// SkipStrategy always returns Skip (no prompts)
type SkipStrategy struct{}

// Resolve always returns Skip for skip mode
func (s *SkipStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return Skip, nil
}

// FailStrategy refuses to decide; the conflict becomes the error.
type FailStrategy struct{}

func (s *FailStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return Cancel, &ConflictError{Path: path, Existing: existing, Proposed: newer}
}

// DiffStrategy prints the diff then delegates to Ask
type DiffStrategy struct {
	Out io.Writer
	Ask ConflictStrategy
}

// Resolve shows the diff and then prompts for decision
func (s *DiffStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	if err := printDiff(s.Out, path, existing, newer); err != nil {
		return Cancel, err
	}
	return s.Ask.Resolve(path, existing, newer)
}

// SelectFunc shows label and items and returns the chosen index.
type SelectFunc func(label string, items []string) (int, error)

// InteractiveStrategy shows a menu and returns the user's choice.
// Choosing "Show diff" prints the diff and shows the menu again, so the
// user can review it before deciding.
type InteractiveStrategy struct {
	Out    io.Writer
	Select SelectFunc // defaults to a promptui menu
}

var conflictChoices = []string{
	"Show diff and decide",
	"Skip (keep existing file)",
	"Overwrite (replace with generated file)",
	"Cancel operation",
}

// Resolve shows interactive menu and returns user's choice.
func (s *InteractiveStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	sel := s.Select
	if sel == nil {
		sel = promptSelect
	}
	out := s.Out
	if out == nil {
		out = os.Stdout
	}

	label := fmt.Sprintf("File conflict detected: %s", path)
	for {
		idx, err := sel(label, conflictChoices)
		if err != nil {
			return Cancel, fmt.Errorf("failed to show menu: %w", err)
		}

		switch res := mapChoiceToResolution(idx); res {
		case ShowDiff:
			if err := printDiff(out, path, existing, newer); err != nil {
				return Cancel, err
			}
		default:
			return res, nil
		}
	}
}

// mapChoiceToResolution maps cursor position to resolution
func mapChoiceToResolution(cursor int) ConflictResolution {
	switch cursor {
	case 0:
		return ShowDiff
	case 1:
		return Skip
	case 2:
		return Overwrite
	default:
		return Cancel
	}
}

func promptSelect(label string, items []string) (int, error) {
	sel := promptui.Select{
		Label: label,
		Items: items,
	}
	idx, _, err := sel.Run()
	return idx, err
}

func printDiff(out io.Writer, path string, existing, newer []byte) error {
	if out == nil {
		out = os.Stdout
	}
	diff, err := UnifiedDiff(path, existing, newer)
	if err != nil {
		return fmt.Errorf("failed to diff %s: %w", path, err)
	}
	fmt.Fprintln(out, ColorizeDiff(diff))
	return nil
}
