// Package answers collects the six answers a new project is generated from.
package answers

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInputUnavailable means prompting could not proceed (stdin closed or
// unreadable). Nothing has been written when it is returned.
var ErrInputUnavailable = errors.New("input unavailable")

// Keys of the answer record, in prompt order.
const (
	KeyProjectName        = "projectName"
	KeyProjectDescription = "projectDescription"
	KeyGithubUsername     = "githubUsername"
	KeyAuthor             = "author"
	KeyLicense            = "license"
	KeyKeywords           = "keywords"
)

// Record is the completed set of answers. It is passed by value and never
// modified after collection; use KeywordList for a private copy of Keywords.
type Record struct {
	ProjectName        string
	ProjectDescription string
	GithubUsername     string
	Author             string
	License            string
	Keywords           []string
}

// KeywordList returns a copy of the normalized keywords.
func (r Record) KeywordList() []string {
	return append([]string{}, r.Keywords...)
}

// Defaults holds the value each prompt falls back to on empty input.
// Keywords is the raw comma-separated text, as a user would type it.
type Defaults struct {
	ProjectName        string `mapstructure:"project_name"`
	ProjectDescription string `mapstructure:"project_description"`
	GithubUsername     string `mapstructure:"github_username"`
	Author             string `mapstructure:"author"`
	License            string `mapstructure:"license"`
	Keywords           string `mapstructure:"keywords"`
}

// BuiltinDefaults returns the defaults used when nothing is configured.
func BuiltinDefaults() Defaults {
	return Defaults{
		ProjectName:        "PROJECT_NAME",
		ProjectDescription: "PROJECT_DESCRIPTION",
		GithubUsername:     "agm-dev",
		Author:             "Adrián Gonzalo",
		License:            "MIT",
		Keywords:           "node, nodejs",
	}
}

// Merge returns d with every non-empty field of override applied.
func (d Defaults) Merge(override Defaults) Defaults {
	pick := func(base, over string) string {
		if over != "" {
			return over
		}
		return base
	}
	return Defaults{
		ProjectName:        pick(d.ProjectName, override.ProjectName),
		ProjectDescription: pick(d.ProjectDescription, override.ProjectDescription),
		GithubUsername:     pick(d.GithubUsername, override.GithubUsername),
		Author:             pick(d.Author, override.Author),
		License:            pick(d.License, override.License),
		Keywords:           pick(d.Keywords, override.Keywords),
	}
}

// NormalizeKeywords splits comma-separated text into trimmed, lowercase
// tokens. Order and duplicates are kept; empty tokens are dropped.
//
//	NormalizeKeywords("Node, NodeJS , React") // ["node", "nodejs", "react"]
//	NormalizeKeywords("a,,b, ")               // ["a", "b"]
func NormalizeKeywords(raw string) []string {
	// A Caser keeps state between calls and must not be shared.
	lower := cases.Lower(language.Und)
	keywords := []string{}
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		keywords = append(keywords, lower.String(tok))
	}
	return keywords
}
