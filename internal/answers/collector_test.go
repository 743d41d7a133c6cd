package answers

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/simonhull/hatch/fledge/input"
	"github.com/simonhull/hatch/internal/license"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectFrom(t *testing.T, lines ...string) (Record, string, error) {
	t.Helper()
	var out bytes.Buffer
	c := &Collector{
		Prompter: input.NewPrompter(strings.NewReader(strings.Join(lines, "")), &out),
		Defaults: BuiltinDefaults(),
	}
	rec, err := c.Collect()
	return rec, out.String(), err
}

func TestCollect_TypedAnswers(t *testing.T) {
	rec, _, err := collectFrom(t, "demo\n", "\n", "\n", "A. Dev\n", "MIT\n", "a, b\n")
	require.NoError(t, err)

	assert.Equal(t, "demo", rec.ProjectName)
	assert.Equal(t, "PROJECT_DESCRIPTION", rec.ProjectDescription)
	assert.Equal(t, "agm-dev", rec.GithubUsername)
	assert.Equal(t, "A. Dev", rec.Author)
	assert.Equal(t, "MIT", rec.License)
	assert.Equal(t, []string{"a", "b"}, rec.Keywords)
}

func TestCollect_AllDefaults(t *testing.T) {
	rec, _, err := collectFrom(t, "\n\n\n\n\n\n")
	require.NoError(t, err)

	assert.Equal(t, "PROJECT_NAME", rec.ProjectName)
	assert.Equal(t, "Adrián Gonzalo", rec.Author)
	assert.Equal(t, "MIT", rec.License)
	assert.Equal(t, []string{"node", "nodejs"}, rec.Keywords)
}

func TestCollect_PromptOrder(t *testing.T) {
	_, out, err := collectFrom(t, "\n\n\n\n\n\n")
	require.NoError(t, err)

	order := []string{
		"name of your new project",
		"Description of your new project",
		"GitHub username",
		"Author of this project",
		"Choose a license",
		"keywords separated by comma",
	}
	last := -1
	for _, msg := range order {
		idx := strings.Index(out, msg)
		require.NotEqual(t, -1, idx, "missing prompt %q", msg)
		assert.Greater(t, idx, last, "prompt %q out of order", msg)
		last = idx
	}
}

func TestCollect_LicenseReaskedUntilValid(t *testing.T) {
	rec, out, err := collectFrom(t, "demo\n", "\n", "\n", "\n", "BSD\n", "GPL-3.0\n", "\n")
	require.NoError(t, err)

	assert.Equal(t, license.GPLv3, rec.License)
	assert.Equal(t, 2, strings.Count(out, "Choose a license"))
}

func TestCollect_ClosedInput(t *testing.T) {
	_, _, err := collectFrom(t, "demo\n", "desc\n")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputUnavailable))
	assert.True(t, errors.Is(err, input.ErrClosed))
}

func TestCollect_NonInteractiveUsesDefaults(t *testing.T) {
	c := &Collector{
		Defaults:       BuiltinDefaults().Merge(Defaults{Author: "A. Dev"}),
		NonInteractive: true,
	}

	rec, err := c.Collect()
	require.NoError(t, err)
	assert.Equal(t, "A. Dev", rec.Author)
	assert.Equal(t, []string{"node", "nodejs"}, rec.Keywords)
}

func TestCollect_UnknownDefaultLicense(t *testing.T) {
	c := &Collector{
		Defaults:       BuiltinDefaults().Merge(Defaults{License: "WTFPL"}),
		NonInteractive: true,
	}

	_, err := c.Collect()
	assert.ErrorIs(t, err, license.ErrUnknownLicense)
}

func TestCollect_PresetSkipsQuestions(t *testing.T) {
	preset, err := ParsePreset([]byte("projectName: demo\nlicense: GPL-3.0\nkeywords: [Go, CLI]\n"))
	require.NoError(t, err)

	var out bytes.Buffer
	c := &Collector{
		Prompter: input.NewPrompter(strings.NewReader("\n\n\n"), &out),
		Defaults: BuiltinDefaults(),
		Preset:   preset,
	}

	rec, err := c.Collect()
	require.NoError(t, err)
	assert.Equal(t, "demo", rec.ProjectName)
	assert.Equal(t, license.GPLv3, rec.License)
	assert.Equal(t, []string{"go", "cli"}, rec.Keywords)
	assert.NotContains(t, out.String(), "name of your new project")
	assert.NotContains(t, out.String(), "Choose a license")
}

func TestCollect_PresetUnknownLicense(t *testing.T) {
	preset, err := ParsePreset([]byte("license: BSD\n"))
	require.NoError(t, err)

	c := &Collector{Defaults: BuiltinDefaults(), Preset: preset, NonInteractive: true}

	_, err = c.Collect()
	assert.ErrorIs(t, err, license.ErrUnknownLicense)
}

func TestCollect_EmptyPresetValuesUseDefaults(t *testing.T) {
	preset, err := ParsePreset([]byte("projectName: \"\"\nauthor: \"\"\nlicense: \"\"\nkeywords: \"\"\n"))
	require.NoError(t, err)

	c := &Collector{Defaults: BuiltinDefaults(), Preset: preset, NonInteractive: true}

	rec, err := c.Collect()
	require.NoError(t, err)
	assert.Equal(t, "PROJECT_NAME", rec.ProjectName)
	assert.Equal(t, "Adrián Gonzalo", rec.Author)
	assert.Equal(t, license.MIT, rec.License)
	assert.Equal(t, []string{"node", "nodejs"}, rec.Keywords)
}

func TestCollect_EmptyPresetValueIsNotAsked(t *testing.T) {
	preset, err := ParsePreset([]byte("projectName: \"  \"\n"))
	require.NoError(t, err)

	var out bytes.Buffer
	c := &Collector{
		Prompter: input.NewPrompter(strings.NewReader("\n\n\n\n\n"), &out),
		Defaults: BuiltinDefaults(),
		Preset:   preset,
	}

	rec, err := c.Collect()
	require.NoError(t, err)
	assert.Equal(t, "PROJECT_NAME", rec.ProjectName)
	assert.NotContains(t, out.String(), "name of your new project")
}
