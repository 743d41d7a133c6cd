package answers

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Preset holds answers supplied up front, typically from an answers file.
// Questions with a preset value are not asked.
type Preset struct {
	values   map[string]string
	keywords []string
	set      map[string]bool
}

// presetFile mirrors the answers file. Keywords may be written as a YAML
// list or as one comma-separated string.
type presetFile struct {
	ProjectName        string   `mapstructure:"projectName"`
	ProjectDescription string   `mapstructure:"projectDescription"`
	GithubUsername     string   `mapstructure:"githubUsername"`
	Author             string   `mapstructure:"author"`
	License            string   `mapstructure:"license"`
	Keywords           []string `mapstructure:"keywords"`
}

// LoadPreset reads a YAML answers file.
//
//	projectName: demo
//	license: MIT
//	keywords: a, b
func LoadPreset(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("reading answers file: %w", err)
	}
	return ParsePreset(data)
}

// ParsePreset decodes answers file content.
func ParsePreset(data []byte) (Preset, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Preset{}, fmt.Errorf("parsing answers file: %w", err)
	}

	var file presetFile
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Metadata:         &md,
		Result:           &file,
	})
	if err != nil {
		return Preset{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Preset{}, fmt.Errorf("decoding answers file: %w", err)
	}

	p := Preset{
		values: map[string]string{
			KeyProjectName:        file.ProjectName,
			KeyProjectDescription: file.ProjectDescription,
			KeyGithubUsername:     file.GithubUsername,
			KeyAuthor:             file.Author,
			KeyLicense:            file.License,
		},
		keywords: NormalizeKeywords(strings.Join(file.Keywords, ",")),
		set:      make(map[string]bool, len(md.Keys)),
	}
	for _, k := range md.Keys {
		p.set[k] = true
	}
	return p, nil
}

// Has reports whether key was given.
func (p Preset) Has(key string) bool {
	return p.set[key]
}

// Value returns the preset string for key. Keywords are reported as their
// comma-joined form.
func (p Preset) Value(key string) (string, bool) {
	if !p.Has(key) {
		return "", false
	}
	if key == KeyKeywords {
		return strings.Join(p.keywords, ", "), true
	}
	return p.values[key], true
}
