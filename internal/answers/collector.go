package answers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/simonhull/hatch/fledge/input"
	"github.com/simonhull/hatch/fledge/output"
	"github.com/simonhull/hatch/internal/license"
)

// Prompter is the input widget the collector drives. *input.Prompter
// implements it.
type Prompter interface {
	Prompt(message, defaultValue string) (string, error)
	Select(message string, choices []string, defaultValue string) (string, error)
}

// Collector asks the fixed question sequence.
//
// Answers come from, in order: Preset (an answers file), the Prompter, or
// the question's default when NonInteractive is set.
type Collector struct {
	Prompter       Prompter
	Defaults       Defaults
	Preset         Preset
	NonInteractive bool
}

type question struct {
	key     string
	message string
	def     string
	choices []string
}

func (c *Collector) questions() []question {
	d := c.Defaults
	return []question{
		{key: KeyProjectName, message: "Tell me the name of your new project", def: d.ProjectName},
		{key: KeyProjectDescription, message: "Description of your new project", def: d.ProjectDescription},
		{key: KeyGithubUsername, message: "Tell me your GitHub username", def: d.GithubUsername},
		{key: KeyAuthor, message: "Author of this project", def: d.Author},
		{key: KeyLicense, message: "Choose a license for this project", def: d.License, choices: license.IDs()},
		{key: KeyKeywords, message: "Add some keywords separated by comma", def: d.Keywords},
	}
}

// Collect runs every question and returns the completed record.
func (c *Collector) Collect() (Record, error) {
	if _, err := license.Lookup(c.Defaults.License); err != nil {
		return Record{}, fmt.Errorf("default license: %w", err)
	}
	if !c.NonInteractive && c.Prompter == nil {
		return Record{}, fmt.Errorf("%w: no prompter configured", ErrInputUnavailable)
	}

	values := make(map[string]string, 6)
	for _, q := range c.questions() {
		v, err := c.answer(q)
		if err != nil {
			return Record{}, err
		}
		values[q.key] = v
	}

	rec := Record{
		ProjectName:        values[KeyProjectName],
		ProjectDescription: values[KeyProjectDescription],
		GithubUsername:     values[KeyGithubUsername],
		Author:             values[KeyAuthor],
		License:            values[KeyLicense],
		Keywords:           NormalizeKeywords(values[KeyKeywords]),
	}
	return rec, nil
}

func (c *Collector) answer(q question) (string, error) {
	if v, ok := c.Preset.Value(q.key); ok {
		// An empty preset answers the question with its default.
		if strings.TrimSpace(v) == "" {
			output.Verbosef("%s: %s (default, empty in answers file)", q.key, q.def)
			return q.def, nil
		}
		if q.key == KeyLicense {
			if _, err := license.Lookup(v); err != nil {
				return "", err
			}
		}
		output.Verbosef("%s: %s (from answers file)", q.key, v)
		return v, nil
	}

	if c.NonInteractive {
		return q.def, nil
	}

	if q.choices == nil {
		v, err := c.Prompter.Prompt(q.message, q.def)
		if err != nil {
			return "", unavailable(q, err)
		}
		return v, nil
	}

	// Typed answers can be anything; ask again until one is registered.
	for {
		v, err := c.Prompter.Select(q.message, q.choices, q.def)
		if err != nil {
			return "", unavailable(q, err)
		}
		if _, err := license.Lookup(v); err != nil {
			output.Warn(err.Error())
			continue
		}
		return v, nil
	}
}

func unavailable(q question, err error) error {
	if errors.Is(err, input.ErrClosed) {
		return fmt.Errorf("%w: %s: %w", ErrInputUnavailable, q.key, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrInputUnavailable, q.key, err)
}
