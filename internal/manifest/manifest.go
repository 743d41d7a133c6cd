// Package manifest builds and merges the generated project's package.json.
package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/simonhull/hatch/fledge/generator"
	"github.com/simonhull/hatch/fledge/output"
	"github.com/simonhull/hatch/internal/answers"
	"github.com/simonhull/hatch/internal/templates"
)

// ErrManifestParse is returned when an existing package.json cannot be used
// as a merge target.
var ErrManifestParse = errors.New("invalid package.json")

// FileName is the manifest written into every project.
const FileName = "package.json"

// Fields are the answers that end up in the manifest.
type Fields struct {
	ProjectName        string
	ProjectDescription string
	Author             string
	License            string
	GithubUsername     string
	Keywords           []string
}

// Patch is what generation contributes to package.json.
type Patch struct {
	Generated       Fields
	DevDependencies map[string]string
}

// NewPatch builds the patch for rec with the static dev dependencies.
func NewPatch(rec answers.Record) Patch {
	return Patch{
		Generated: Fields{
			ProjectName:        rec.ProjectName,
			ProjectDescription: rec.ProjectDescription,
			Author:             rec.Author,
			License:            rec.License,
			GithubUsername:     rec.GithubUsername,
			Keywords:           rec.KeywordList(),
		},
		DevDependencies: DevDependencies(),
	}
}

// Merger renders the package.json template and merges it with what a
// project already has.
type Merger struct {
	Templates fs.FS
	Renderer  *generator.Renderer
}

// NewMerger creates a merger reading package.json from fsys.
func NewMerger(fsys fs.FS) *Merger {
	return &Merger{Templates: fsys, Renderer: generator.NewRenderer()}
}

var defaultMerger = NewMerger(templates.Embedded())

// Merge merges patch into existing using the built-in template.
func Merge(existing map[string]any, patch Patch) (map[string]any, error) {
	return defaultMerger.Merge(existing, patch)
}

// Merge returns existing with the generated manifest merged over it. A nil
// existing manifest means the file is being created. Nested objects merge
// key by key; scalars and arrays from the generated side win.
func (m *Merger) Merge(existing map[string]any, patch Patch) (map[string]any, error) {
	generated, err := m.render(patch.Generated)
	if err != nil {
		return nil, err
	}

	keywords := make([]any, len(patch.Generated.Keywords))
	for i, k := range patch.Generated.Keywords {
		keywords[i] = k
	}
	deps := make(map[string]any, len(patch.DevDependencies))
	for name, rng := range patch.DevDependencies {
		deps[name] = rng
	}

	generated = deepMerge(generated, map[string]any{
		"devDependencies": deps,
		"keywords":        keywords,
	})
	if existing == nil {
		return generated, nil
	}
	return deepMerge(existing, generated), nil
}

// MergeFile merges patch into the manifest at path, creating it if absent.
// The file is replaced atomically.
func (m *Merger) MergeFile(ctx context.Context, path string, patch Patch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	existing, err := Load(path)
	if err != nil {
		return err
	}
	if existing != nil {
		output.Verbosef("Merging into existing %s", path)
	}

	merged, err := m.Merge(existing, patch)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	out, err := Encode(merged)
	if err != nil {
		return err
	}
	return generator.WriteFileAtomic(path, out, 0o644)
}

// Load reads and validates the manifest at path. A missing file yields a
// nil manifest and no error.
func Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", generator.ErrDestinationWrite, path, err)
	}
	existing, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return existing, nil
}

// Encode writes a manifest the way npm does: two-space indent and a
// trailing newline. Keys come out sorted.
func Encode(manifest map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", FileName, err)
	}
	return buf.Bytes(), nil
}

func (m *Merger) render(f Fields) (map[string]any, error) {
	vars := map[string]string{
		"projectName":        jsonEscape(f.ProjectName),
		"projectDescription": jsonEscape(f.ProjectDescription),
		"author":             jsonEscape(f.Author),
		"license":            jsonEscape(f.License),
		"githubUsername":     jsonEscape(f.GithubUsername),
	}

	renderer := m.Renderer
	if renderer == nil {
		renderer = generator.NewRenderer()
	}
	rendered, err := renderer.RenderFS(m.Templates, FileName, vars)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(rendered))
	dec.UseNumber()
	var generated map[string]any
	if err := dec.Decode(&generated); err != nil {
		return nil, fmt.Errorf("%w: rendered template: %v", ErrManifestParse, err)
	}
	return generated, nil
}

// jsonEscape returns s as the inside of a JSON string literal.
func jsonEscape(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // strings always encode
	return strings.TrimSuffix(strings.TrimSpace(buf.String()), `"`)[1:]
}

// deepMerge returns a new map holding dst with src merged over it.
func deepMerge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		if srcMap, ok := v.(map[string]any); ok {
			if dstMap, ok := out[k].(map[string]any); ok {
				out[k] = deepMerge(dstMap, srcMap)
				continue
			}
		}
		out[k] = v
	}
	return out
}
