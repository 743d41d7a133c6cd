package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ManifestFile is the Node.js package manifest.
const ManifestFile = "package.json"

// Info describes a target directory.
type Info struct {
	Root          string
	Exists        bool   // Root is an existing directory
	Empty         bool   // Root is missing or has no entries
	HasManifest   bool   // package.json present
	HasRepository bool   // .git present
	Name          string // "name" from package.json, if readable
}

// Detect inspects root. A missing root is not an error.
func Detect(root string) (*Info, error) {
	info := &Info{Root: root, Empty: true}

	st, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return info, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", root, err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("%s exists and is not a directory", root)
	}
	info.Exists = true

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", root, err)
	}
	info.Empty = len(entries) == 0

	for _, e := range entries {
		switch e.Name() {
		case ".git":
			info.HasRepository = true
		case ManifestFile:
			info.HasManifest = !e.IsDir()
		}
	}

	if info.HasManifest {
		info.Name = manifestName(filepath.Join(root, ManifestFile))
	}
	return info, nil
}

// manifestName returns the package name, or "" when the manifest cannot be
// read. Validation happens when the manifest is merged.
func manifestName(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var pkg struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return ""
	}
	return pkg.Name
}
