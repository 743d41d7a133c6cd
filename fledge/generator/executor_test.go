package generator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileOp_Validate(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.txt")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0644))

	t.Run("new file", func(t *testing.T) {
		op := &WriteFileOp{Path: filepath.Join(dir, "new.txt"), Content: []byte("x")}
		require.NoError(t, op.Validate(context.Background(), false))
		assert.Contains(t, op.Description(), "Create")
	})

	t.Run("empty content allowed", func(t *testing.T) {
		op := &WriteFileOp{Path: filepath.Join(dir, "empty.js"), Content: []byte{}}
		require.NoError(t, op.Validate(context.Background(), false))
	})

	t.Run("nil content rejected", func(t *testing.T) {
		op := &WriteFileOp{Path: filepath.Join(dir, "nil.txt")}
		err := op.Validate(context.Background(), false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "content is nil")
	})

	t.Run("identical content", func(t *testing.T) {
		op := &WriteFileOp{Path: existing, Content: []byte("old")}
		require.NoError(t, op.Validate(context.Background(), false))
		assert.Contains(t, op.Description(), "Identical")
	})

	t.Run("conflict", func(t *testing.T) {
		op := &WriteFileOp{Path: existing, Content: []byte("new")}
		err := op.Validate(context.Background(), false)
		require.ErrorIs(t, err, ErrConflict)

		var conflict *ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, []byte("old"), conflict.Existing)
		assert.Equal(t, []byte("new"), conflict.Proposed)
	})

	t.Run("conflict forced", func(t *testing.T) {
		op := &WriteFileOp{Path: existing, Content: []byte("new")}
		require.NoError(t, op.Validate(context.Background(), true))
		assert.Contains(t, op.Description(), "Overwrite")
	})

	t.Run("destination is a directory", func(t *testing.T) {
		op := &WriteFileOp{Path: dir, Content: []byte("x")}
		assert.ErrorIs(t, op.Validate(context.Background(), true), ErrDestinationWrite)
	})
}

func TestExecute_WritesAllFiles(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	ops := []Operation{
		&WriteFileOp{Path: filepath.Join(dir, "index.js"), Content: []byte("a"), Mode: 0644},
		&WriteFileOp{Path: filepath.Join(dir, "src", "app.js"), Content: []byte("b"), Mode: 0644},
	}

	require.NoError(t, Execute(context.Background(), ops, ExecuteOptions{Writer: &out}))

	got, err := os.ReadFile(filepath.Join(dir, "src", "app.js"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(got))
	assert.Contains(t, out.String(), "✓ Create")
}

func TestExecute_DryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	ops := []Operation{
		&WriteFileOp{Path: filepath.Join(dir, "index.js"), Content: []byte("a")},
	}

	require.NoError(t, Execute(context.Background(), ops, ExecuteOptions{DryRun: true, Writer: &out}))

	_, err := os.Stat(filepath.Join(dir, "index.js"))
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, out.String(), "[DRY RUN]")
}

func TestExecute_ConflictWithoutResolverFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(path, []byte("mine"), 0644))

	ops := []Operation{
		&WriteFileOp{Path: filepath.Join(dir, "index.js"), Content: []byte("a")},
		&WriteFileOp{Path: path, Content: []byte("generated")},
	}

	err := Execute(context.Background(), ops, ExecuteOptions{Writer: &bytes.Buffer{}})
	require.ErrorIs(t, err, ErrConflict)

	// Nothing is written when validation fails.
	_, statErr := os.Stat(filepath.Join(dir, "index.js"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExecute_ConflictResolutions(t *testing.T) {
	tests := []struct {
		name     string
		strategy ConflictStrategy
		want     string
		wantErr  error
	}{
		{"force", &ForceStrategy{}, "generated", nil},
		{"skip", &SkipStrategy{}, "mine", nil},
		{"fail", &FailStrategy{}, "mine", ErrConflict},
		{"cancel", cancelStrategy{}, "mine", ErrCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "README.md")
			require.NoError(t, os.WriteFile(path, []byte("mine"), 0644))

			ops := []Operation{&WriteFileOp{Path: path, Content: []byte("generated")}}
			err := Execute(context.Background(), ops, ExecuteOptions{
				Resolver: NewResolverWithStrategy(tt.strategy),
				Writer:   &bytes.Buffer{},
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestExecute_SkipDescribesKeptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.js")
	require.NoError(t, os.WriteFile(path, []byte("mine"), 0644))

	tests := []struct {
		name   string
		dryRun bool
	}{
		{"real", false},
		{"dry run", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			ops := []Operation{&WriteFileOp{Path: path, Content: []byte("generated"), Label: "index.js"}}
			err := Execute(context.Background(), ops, ExecuteOptions{
				DryRun:   tt.dryRun,
				Resolver: NewResolverWithStrategy(&SkipStrategy{}),
				Writer:   &out,
			})
			require.NoError(t, err)

			assert.Equal(t, "- Keep index.js (existing file differs)\n", out.String())
			assert.NotContains(t, out.String(), "Create")
		})
	}
}

func TestWriteFileOp_SkippedExecuteWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.js")
	require.NoError(t, os.WriteFile(path, []byte("mine"), 0644))

	op := &WriteFileOp{Path: path, Content: []byte("generated")}
	op.MarkSkipped()

	tx := NewTransaction()
	require.NoError(t, op.Execute(context.Background(), tx))
	require.NoError(t, tx.Commit())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mine", string(got))
}

func TestExecute_RollsBackOnFailure(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "index.js")

	ops := []Operation{
		&WriteFileOp{Path: first, Content: []byte("a")},
		failingOp{},
	}

	err := Execute(context.Background(), ops, ExecuteOptions{Writer: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "execution failed")

	_, statErr := os.Stat(first)
	assert.True(t, os.IsNotExist(statErr), "first file should be rolled back")
}

type cancelStrategy struct{}

func (cancelStrategy) Resolve(string, []byte, []byte) (ConflictResolution, error) {
	return Cancel, nil
}

type failingOp struct{}

func (failingOp) Validate(context.Context, bool) error { return nil }
func (failingOp) Execute(context.Context, *Transaction) error {
	return errors.New("disk full")
}
func (failingOp) Description() string { return "Fail" }
