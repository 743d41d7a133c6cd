// Package templates holds the built-in template set and resolves which
// template produces which file of a new project.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/otiai10/copy"
)

//go:embed files
var embedded embed.FS

const embeddedRoot = "files"

// Embedded returns the built-in template set.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, embeddedRoot)
	if err != nil {
		// embeddedRoot is compiled in.
		panic(err)
	}
	return sub
}

// Dir returns a template set read from a directory on disk. The directory
// must use the same identifiers as the built-in set.
func Dir(dir string) (fs.FS, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template directory: %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}

// List returns every template identifier in fsys, sorted.
func List(fsys fs.FS) ([]string, error) {
	var ids []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			ids = append(ids, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

// Export writes the built-in template set to dest so it can be edited and
// passed back with --templates. dest must not exist yet.
func Export(dest string) error {
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("export destination %s already exists", dest)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("export destination: %w", err)
	}

	opts := copy.Options{
		FS:                embedded,
		PermissionControl: copy.AddPermission(0o200),
	}
	if err := copy.Copy(embeddedRoot, dest, opts); err != nil {
		return fmt.Errorf("exporting templates: %w", err)
	}
	return nil
}

// Missing returns the identifiers tasks read that fsys does not provide.
func Missing(fsys fs.FS, tasks []Task) []string {
	seen := make(map[string]bool)
	var missing []string
	for _, t := range tasks {
		if seen[t.Source] {
			continue
		}
		seen[t.Source] = true
		if _, err := fs.Stat(fsys, path.Clean(t.Source)); err != nil {
			missing = append(missing, t.Source)
		}
	}
	return missing
}
