package materialize

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/simonhull/hatch/fledge/generator"
	"github.com/simonhull/hatch/internal/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"empty.js":    {Data: []byte("module.exports = {};\n")},
		"README.md":   {Data: []byte("# {{ .projectName }} by {{ .githubUsername }}\n")},
		"LICENSE-MIT": {Data: []byte("(c) {{ .year }} {{ .author }}\n")},
		"broken.md":   {Data: []byte("{{ if .x }}x{{ end }}\n")},
		"blank":       {Data: []byte{}},
	}
}

func newMaterializer(t *testing.T) (*Materializer, string, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	var out bytes.Buffer
	m := New(root, testFS())
	m.Writer = &out
	return m, root, &out
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestMaterialize_CopyAndRender(t *testing.T) {
	m, root, out := newMaterializer(t)

	tasks := []templates.Task{
		{Source: "empty.js", Destination: "src/models/index.js", Mode: templates.Copy},
		{Source: "empty.js", Destination: "src/utils/index.js", Mode: templates.Copy},
		{Source: "README.md", Destination: "README.md", Mode: templates.Render,
			Vars: map[string]string{"projectName": "demo", "githubUsername": "octo"}},
		{Source: "blank", Destination: "blank.txt", Mode: templates.Copy},
	}
	require.NoError(t, m.Materialize(context.Background(), tasks))

	assert.Equal(t, "module.exports = {};\n", readFile(t, filepath.Join(root, "src/models/index.js")))
	assert.Equal(t, "module.exports = {};\n", readFile(t, filepath.Join(root, "src/utils/index.js")))
	assert.Equal(t, "# demo by octo\n", readFile(t, filepath.Join(root, "README.md")))
	assert.Equal(t, "", readFile(t, filepath.Join(root, "blank.txt")))
	assert.Contains(t, out.String(), "Create README.md")
}

func TestMaterialize_Deterministic(t *testing.T) {
	vars := map[string]string{"author": "A. Dev", "year": "2024"}
	task := templates.Task{Source: "LICENSE-MIT", Destination: "LICENSE", Mode: templates.Render, Vars: vars}

	m1, root1, _ := newMaterializer(t)
	m2, root2, _ := newMaterializer(t)
	require.NoError(t, m1.Materialize(context.Background(), []templates.Task{task}))
	require.NoError(t, m2.Materialize(context.Background(), []templates.Task{task}))

	assert.Equal(t, readFile(t, filepath.Join(root1, "LICENSE")), readFile(t, filepath.Join(root2, "LICENSE")))
}

func TestMaterialize_MissingVariableWritesNothing(t *testing.T) {
	m, root, _ := newMaterializer(t)

	tasks := []templates.Task{
		{Source: "empty.js", Destination: "index.js", Mode: templates.Copy},
		{Source: "LICENSE-MIT", Destination: "LICENSE", Mode: templates.Render,
			Vars: map[string]string{"author": "A. Dev"}},
	}
	err := m.Materialize(context.Background(), tasks)

	require.ErrorIs(t, err, generator.ErrMissingVariable)
	assert.Contains(t, err.Error(), "year")
	assert.NoFileExists(t, filepath.Join(root, "LICENSE"))
	assert.NoFileExists(t, filepath.Join(root, "index.js"))
}

func TestMaterialize_SourceNotFound(t *testing.T) {
	m, _, _ := newMaterializer(t)

	for _, mode := range []templates.Mode{templates.Copy, templates.Render} {
		err := m.Materialize(context.Background(), []templates.Task{
			{Source: "nope.js", Destination: "nope.js", Mode: mode},
		})
		assert.ErrorIs(t, err, generator.ErrSourceNotFound, "mode %s", mode)
	}
}

func TestMaterialize_UnsupportedTemplate(t *testing.T) {
	m, root, _ := newMaterializer(t)

	err := m.Materialize(context.Background(), []templates.Task{
		{Source: "broken.md", Destination: "broken.md", Mode: templates.Render, Vars: map[string]string{"x": "1"}},
	})
	assert.ErrorIs(t, err, generator.ErrUnsupportedTemplate)
	assert.NoFileExists(t, filepath.Join(root, "broken.md"))
}

func TestMaterialize_DestinationStaysUnderRoot(t *testing.T) {
	m, root, _ := newMaterializer(t)

	require.NoError(t, m.Materialize(context.Background(), []templates.Task{
		{Source: "empty.js", Destination: "../../escape.js", Mode: templates.Copy},
	}))

	assert.FileExists(t, filepath.Join(root, "escape.js"))
	assert.NoFileExists(t, filepath.Join(filepath.Dir(root), "escape.js"))
}

func TestMaterialize_DestinationIsDirectory(t *testing.T) {
	m, root, _ := newMaterializer(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "index.js"), 0o755))

	err := m.Materialize(context.Background(), []templates.Task{
		{Source: "empty.js", Destination: "index.js", Mode: templates.Copy},
	})
	assert.ErrorIs(t, err, generator.ErrDestinationWrite)
}

func TestMaterialize_Conflicts(t *testing.T) {
	task := templates.Task{Source: "empty.js", Destination: "index.js", Mode: templates.Copy}

	t.Run("identical is a no-op", func(t *testing.T) {
		m, root, out := newMaterializer(t)
		require.NoError(t, os.WriteFile(filepath.Join(root, "index.js"), []byte("module.exports = {};\n"), 0o644))

		require.NoError(t, m.Materialize(context.Background(), []templates.Task{task}))
		assert.Contains(t, out.String(), "Identical index.js")
	})

	t.Run("differing without resolver fails", func(t *testing.T) {
		m, root, _ := newMaterializer(t)
		require.NoError(t, os.WriteFile(filepath.Join(root, "index.js"), []byte("mine\n"), 0o644))

		err := m.Materialize(context.Background(), []templates.Task{task})
		assert.ErrorIs(t, err, generator.ErrConflict)
		assert.Equal(t, "mine\n", readFile(t, filepath.Join(root, "index.js")))
	})

	t.Run("force overwrites", func(t *testing.T) {
		m, root, _ := newMaterializer(t)
		require.NoError(t, os.WriteFile(filepath.Join(root, "index.js"), []byte("mine\n"), 0o644))
		r, err := generator.NewResolver(true, false, false, false)
		require.NoError(t, err)
		m.Resolver = r

		require.NoError(t, m.Materialize(context.Background(), []templates.Task{task}))
		assert.Equal(t, "module.exports = {};\n", readFile(t, filepath.Join(root, "index.js")))
	})

	t.Run("skip keeps", func(t *testing.T) {
		m, root, _ := newMaterializer(t)
		require.NoError(t, os.WriteFile(filepath.Join(root, "index.js"), []byte("mine\n"), 0o644))
		r, err := generator.NewResolver(false, true, false, false)
		require.NoError(t, err)
		m.Resolver = r

		require.NoError(t, m.Materialize(context.Background(), []templates.Task{task}))
		assert.Equal(t, "mine\n", readFile(t, filepath.Join(root, "index.js")))
	})
}

func TestMaterialize_DryRun(t *testing.T) {
	m, root, out := newMaterializer(t)
	m.DryRun = true

	require.NoError(t, m.Materialize(context.Background(), []templates.Task{
		{Source: "empty.js", Destination: "index.js", Mode: templates.Copy},
	}))

	assert.NoFileExists(t, filepath.Join(root, "index.js"))
	assert.Contains(t, out.String(), "[DRY RUN] Create index.js")
}

func TestMaterialize_EmbeddedTemplates(t *testing.T) {
	root := t.TempDir()
	m := New(root, templates.Embedded())
	m.Writer = &bytes.Buffer{}

	tasks := []templates.Task{
		{Source: "LICENSE-GPL", Destination: "LICENSE", Mode: templates.Copy},
		{Source: "ignoregit", Destination: ".gitignore", Mode: templates.Copy},
	}
	require.NoError(t, m.Materialize(context.Background(), tasks))

	assert.Contains(t, readFile(t, filepath.Join(root, "LICENSE")), "GNU GENERAL PUBLIC LICENSE")
	assert.Contains(t, readFile(t, filepath.Join(root, ".gitignore")), "node_modules")
}
