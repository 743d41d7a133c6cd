package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it and has
// no side effects. force=true accepts overwriting a destination that differs.
//
// Execute performs the operation inside tx, so a later failure can undo it.
// It should only be called after Validate succeeds.
//
// Description returns a human-readable description for output (e.g., "Create src/app.js (234 bytes)").
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context, tx *Transaction) error
	Description() string
}

// writeState is what Validate found at the destination.
type writeState int

const (
	stateCreate writeState = iota
	stateIdentical
	stateOverwrite
	stateSkipped
)

// WriteFileOp writes content to a file.
//
// Validation behavior:
//   - Rejects nil content (empty is OK)
//   - Rejects a destination that is a directory
//   - Identical existing content makes the op a no-op
//   - Different existing content is a *ConflictError unless force=true
//
// Execution behavior:
//   - Creates parent directories if needed
//   - Writes through the transaction (temp file + rename)
type WriteFileOp struct {
	Path    string      // File path to create
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)
	Label   string      // Shown by Description instead of Path when set

	state writeState
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	info, err := os.Stat(op.Path)
	if errors.Is(err, fs.ErrNotExist) {
		op.state = stateCreate
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDestinationWrite, op.Path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrDestinationWrite, op.Path)
	}

	existing, err := os.ReadFile(op.Path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDestinationWrite, op.Path, err)
	}
	if bytes.Equal(existing, op.Content) {
		op.state = stateIdentical
		return nil
	}
	if !force {
		return &ConflictError{Path: op.Path, Existing: existing, Proposed: op.Content}
	}

	op.state = stateOverwrite
	return nil
}

// MarkSkipped records that a conflict was resolved by keeping the existing
// file. Execute then leaves the destination alone.
func (op *WriteFileOp) MarkSkipped() {
	op.state = stateSkipped
}

func (op *WriteFileOp) Execute(ctx context.Context, tx *Transaction) error {
	if op.state == stateIdentical || op.state == stateSkipped {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	mode := op.Mode
	if mode == 0 {
		mode = 0644
	}
	return tx.WriteFile(op.Path, op.Content, mode)
}

func (op *WriteFileOp) Description() string {
	name := op.Path
	if op.Label != "" {
		name = op.Label
	}
	switch op.state {
	case stateIdentical:
		return fmt.Sprintf("Identical %s", name)
	case stateSkipped:
		return fmt.Sprintf("Keep %s (existing file differs)", name)
	case stateOverwrite:
		return fmt.Sprintf("Overwrite %s (%d bytes)", name, len(op.Content))
	default:
		return fmt.Sprintf("Create %s (%d bytes)", name, len(op.Content))
	}
}
