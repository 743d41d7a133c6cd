package generator

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
	"text/template"
	"text/template/parse"
)

// leftoverMarkers are opening delimiters that must never survive a render:
// ours, and the EJS style older templates were written in.
var leftoverMarkers = []string{"{{", "<%"}

// Renderer substitutes {{ .name }} placeholders with string values.
//
// Only text and single-field actions are accepted. Anything else (pipelines,
// conditionals, ranges, nested templates) is rejected with
// ErrUnsupportedTemplate, which keeps templates plain substitution documents.
// Parsed templates are cached by name and reparsed when the source changes.
type Renderer struct {
	cache map[string]*parsedTemplate
	mu    sync.RWMutex // Protect cache for concurrent access
}

type parsedTemplate struct {
	source string
	tmpl   *template.Template
	fields []string // sorted, unique placeholder names
}

// NewRenderer creates a renderer with an empty cache
func NewRenderer() *Renderer {
	return &Renderer{
		cache: make(map[string]*parsedTemplate),
	}
}

// Render renders src with vars. The name is used for caching and error messages.
func (r *Renderer) Render(name string, src []byte, vars map[string]string) ([]byte, error) {
	pt, err := r.parse(name, string(src))
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, f := range pt.fields {
		if _, ok := vars[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: template '%s' needs %s", ErrMissingVariable, name, strings.Join(missing, ", "))
	}

	out, err := r.execute(pt, vars)
	if err != nil {
		return nil, err
	}

	// Render again with blank values: whatever markers remain came from the template itself.
	blank, err := r.execute(pt, blankVars(pt.fields))
	if err != nil {
		return nil, err
	}
	for _, marker := range leftoverMarkers {
		if bytes.Contains(blank, []byte(marker)) {
			return nil, fmt.Errorf("%w: template '%s' still contains %q after rendering", ErrUnresolvedPlaceholder, name, marker)
		}
	}

	return out, nil
}

// RenderFS renders a template read from a filesystem (embedded or on disk)
func (r *Renderer) RenderFS(fsys fs.FS, path string, vars map[string]string) ([]byte, error) {
	src, err := fs.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to read template from fs '%s': %w", path, err)
	}
	return r.Render(path, src, vars)
}

// Placeholders returns the sorted placeholder names referenced by src.
func (r *Renderer) Placeholders(name string, src []byte) ([]string, error) {
	pt, err := r.parse(name, string(src))
	if err != nil {
		return nil, err
	}
	return append([]string(nil), pt.fields...), nil
}

func (r *Renderer) parse(name, src string) (*parsedTemplate, error) {
	r.mu.RLock()
	if pt, ok := r.cache[name]; ok && pt.source == src {
		r.mu.RUnlock()
		return pt, nil
	}
	r.mu.RUnlock()

	tmpl, err := template.New(name).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
	}
	if len(tmpl.Templates()) > 1 {
		return nil, fmt.Errorf("%w: template '%s' defines nested templates", ErrUnsupportedTemplate, name)
	}

	fields, err := collectFields(name, tmpl.Tree)
	if err != nil {
		return nil, err
	}

	pt := &parsedTemplate{source: src, tmpl: tmpl, fields: fields}

	r.mu.Lock()
	r.cache[name] = pt
	r.mu.Unlock()

	return pt, nil
}

func (r *Renderer) execute(pt *parsedTemplate, vars map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	if err := pt.tmpl.Execute(&buf, vars); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", pt.tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

// collectFields walks the parse tree and returns every {{ .name }} reference.
func collectFields(name string, tree *parse.Tree) ([]string, error) {
	seen := make(map[string]bool)
	if tree != nil && tree.Root != nil {
		for _, node := range tree.Root.Nodes {
			switch n := node.(type) {
			case *parse.TextNode, *parse.CommentNode:
			case *parse.ActionNode:
				field, ok := singleField(n)
				if !ok {
					loc, _ := tree.ErrorContext(n)
					return nil, fmt.Errorf("%w: %s: %s", ErrUnsupportedTemplate, loc, n.String())
				}
				seen[field] = true
			default:
				return nil, fmt.Errorf("%w: template '%s': %s", ErrUnsupportedTemplate, name, node.String())
			}
		}
	}

	fields := make([]string, 0, len(seen))
	for f := range seen {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields, nil
}

func singleField(n *parse.ActionNode) (string, bool) {
	if n.Pipe == nil || len(n.Pipe.Decl) > 0 || len(n.Pipe.Cmds) != 1 {
		return "", false
	}
	args := n.Pipe.Cmds[0].Args
	if len(args) != 1 {
		return "", false
	}
	field, ok := args[0].(*parse.FieldNode)
	if !ok || len(field.Ident) != 1 {
		return "", false
	}
	return field.Ident[0], true
}

func blankVars(fields []string) map[string]string {
	vars := make(map[string]string, len(fields))
	for _, f := range fields {
		vars[f] = ""
	}
	return vars
}
