package answers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreset_KeywordForms(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"comma string", "keywords: Node, NodeJS , React\n", "node, nodejs, react"},
		{"yaml list", "keywords:\n  - Node\n  - React\n", "node, react"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePreset([]byte(tt.yaml))
			require.NoError(t, err)
			v, ok := p.Value(KeyKeywords)
			assert.True(t, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestParsePreset_OnlyGivenKeysAreSet(t *testing.T) {
	p, err := ParsePreset([]byte("author: A. Dev\n"))
	require.NoError(t, err)

	v, ok := p.Value(KeyAuthor)
	assert.True(t, ok)
	assert.Equal(t, "A. Dev", v)

	_, ok = p.Value(KeyProjectName)
	assert.False(t, ok)
	assert.False(t, p.Has(KeyKeywords))
}

func TestParsePreset_UnknownKey(t *testing.T) {
	_, err := ParsePreset([]byte("licence: MIT\n"))
	assert.Error(t, err)
}

func TestParsePreset_InvalidYAML(t *testing.T) {
	_, err := ParsePreset([]byte("projectName: [unclosed\n"))
	assert.Error(t, err)
}

func TestLoadPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.yml")
	require.NoError(t, os.WriteFile(path, []byte("projectName: demo\n"), 0o644))

	p, err := LoadPreset(path)
	require.NoError(t, err)
	v, _ := p.Value(KeyProjectName)
	assert.Equal(t, "demo", v)

	_, err = LoadPreset(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
