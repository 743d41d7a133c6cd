package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ExecuteOptions configures execution behavior
type ExecuteOptions struct {
	DryRun   bool
	Force    bool
	Resolver *Resolver // Consulted on conflicts; nil means conflicts are errors
	Writer   io.Writer // Where to write output (defaults to os.Stdout)
}

// skipper is implemented by operations that describe themselves differently
// once a conflict resolves to Skip.
type skipper interface {
	MarkSkipped()
}

// Execute runs operations with validation.
//
// All operations are validated (and conflicts resolved) before anything is
// written. Execution then runs inside one Transaction: the first failure stops
// the run and rolls back every write made so far.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	// Phase 1: Validate all operations
	skipped := make([]bool, len(ops))
	for i, op := range ops {
		err := op.Validate(ctx, opts.Force)

		var conflict *ConflictError
		if errors.As(err, &conflict) && opts.Resolver != nil {
			resolution, rerr := opts.Resolver.ResolveConflict(conflict.Path, conflict.Existing, conflict.Proposed)
			if rerr != nil {
				return fmt.Errorf("validation failed: %w", rerr)
			}
			switch resolution {
			case Overwrite:
				err = op.Validate(ctx, true)
			case Skip:
				skipped[i] = true
				if s, ok := op.(skipper); ok {
					s.MarkSkipped()
				}
				err = nil
			default:
				return fmt.Errorf("%w at %s", ErrCancelled, conflict.Path)
			}
		}

		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	// Phase 2: Execute or report
	tx := NewTransaction()
	for i, op := range ops {
		if skipped[i] {
			if _, ok := op.(skipper); ok {
				fmt.Fprintf(opts.Writer, "- %s\n", op.Description())
			} else {
				fmt.Fprintf(opts.Writer, "- Skip %s\n", op.Description())
			}
			continue
		}
		if opts.DryRun {
			fmt.Fprintf(opts.Writer, "✓ [DRY RUN] %s\n", op.Description())
			continue
		}
		if err := op.Execute(ctx, tx); err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				return fmt.Errorf("execution failed: %w (rollback incomplete: %v)", err, rerr)
			}
			return fmt.Errorf("execution failed: %w", err)
		}
		fmt.Fprintf(opts.Writer, "✓ %s\n", op.Description())
	}

	return tx.Commit()
}
