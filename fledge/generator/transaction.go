package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Transaction journals file writes so a failed run can be undone.
//
// Each write is atomic on its own (temp file in the target directory, then
// rename), so a reader never sees a half-written file. Rollback removes files
// the transaction created, restores the previous bytes of files it
// overwrote, and removes directories it created.
type Transaction struct {
	journal   []journalEntry
	dirs      []string
	committed bool
}

// journalEntry records the state of a path before the transaction touched it
type journalEntry struct {
	path     string
	existed  bool
	previous []byte
	mode     fs.FileMode
}

// NewTransaction creates a new file operation transaction
func NewTransaction() *Transaction {
	return &Transaction{
		journal: make([]journalEntry, 0),
	}
}

// WriteFile writes content to path immediately and journals the previous state.
func (t *Transaction) WriteFile(path string, content []byte, mode fs.FileMode) error {
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}

	entry := journalEntry{path: path, mode: mode}
	if info, err := os.Stat(path); err == nil {
		previous, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrDestinationWrite, path, err)
		}
		entry.existed = true
		entry.previous = previous
		entry.mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %v", ErrDestinationWrite, path, err)
	}

	if err := t.mkdirAll(filepath.Dir(path)); err != nil {
		return fmt.Errorf("%w: cannot create directory for %s: %v", ErrDestinationWrite, path, err)
	}

	if err := writeAtomic(path, content, mode); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDestinationWrite, path, err)
	}

	t.journal = append(t.journal, entry)
	return nil
}

// Commit marks the transaction as done; Rollback becomes a no-op.
func (t *Transaction) Commit() error {
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}
	t.committed = true
	t.journal = nil
	t.dirs = nil
	return nil
}

// Rollback undoes every journaled write in reverse order. Best effort: it
// keeps going after individual failures and returns the first one.
func (t *Transaction) Rollback() error {
	if t.committed {
		return nil
	}

	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	for i := len(t.journal) - 1; i >= 0; i-- {
		entry := t.journal[i]
		if entry.existed {
			keep(writeAtomic(entry.path, entry.previous, entry.mode))
		} else if err := os.Remove(entry.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			keep(err)
		}
	}

	// Deepest directories first; only empty ones go.
	for i := len(t.dirs) - 1; i >= 0; i-- {
		_ = os.Remove(t.dirs[i])
	}

	t.journal = nil
	t.dirs = nil
	return firstErr
}

// mkdirAll creates dir and remembers which levels did not exist before.
func (t *Transaction) mkdirAll(dir string) error {
	var missing []string
	for d := dir; ; d = filepath.Dir(d) {
		if _, err := os.Stat(d); err == nil {
			break
		}
		missing = append(missing, d)
		if parent := filepath.Dir(d); parent == d {
			break
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for i := len(missing) - 1; i >= 0; i-- {
		t.dirs = append(t.dirs, missing[i])
	}
	return nil
}

// writeAtomic writes via a temp file in the same directory and renames it into place.
func writeAtomic(path string, content []byte, mode fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// WriteFileAtomic writes a single file atomically, creating parent directories.
// Use it for writes that are not part of a larger transaction.
func WriteFileAtomic(path string, content []byte, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: cannot create directory for %s: %v", ErrDestinationWrite, path, err)
	}
	if err := writeAtomic(path, content, mode); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDestinationWrite, path, err)
	}
	return nil
}
