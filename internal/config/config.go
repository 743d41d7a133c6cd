// Package config loads user defaults for hatch from hatch.yml and HATCH_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/simonhull/hatch/fledge/output"
	"github.com/simonhull/hatch/internal/answers"
	"github.com/simonhull/hatch/internal/license"
)

// Config is the merged result of built-in defaults, the config file and the
// environment.
type Config struct {
	Defaults answers.Defaults
	Post     Post

	// File is the config file that was read, empty when none was found.
	File string
}

// Post controls the commands run after generation.
type Post struct {
	Enabled     bool
	SkipInstall bool
}

// Environment variables that override the config file.
var envBindings = map[string]string{
	"defaults.project_name":        "HATCH_PROJECT_NAME",
	"defaults.project_description": "HATCH_PROJECT_DESCRIPTION",
	"defaults.github_username":     "HATCH_GITHUB_USERNAME",
	"defaults.author":              "HATCH_AUTHOR",
	"defaults.license":             "HATCH_LICENSE",
	"defaults.keywords":            "HATCH_KEYWORDS",
	"post.skip_install":            "HATCH_SKIP_INSTALL",
	"post.enabled":                 "HATCH_POST_ENABLED",
}

// Load reads configuration. With an explicit path that file must exist;
// otherwise hatch.yml (or .yaml/.json/.toml) is looked up in the working
// directory and then $HOME/.config/hatch, and a missing file is fine.
func Load(path string) (*Config, error) {
	v := viper.New()

	builtin := answers.BuiltinDefaults()
	v.SetDefault("defaults.project_name", builtin.ProjectName)
	v.SetDefault("defaults.project_description", builtin.ProjectDescription)
	v.SetDefault("defaults.github_username", builtin.GithubUsername)
	v.SetDefault("defaults.author", builtin.Author)
	v.SetDefault("defaults.license", builtin.License)
	v.SetDefault("defaults.keywords", builtin.Keywords)
	v.SetDefault("post.enabled", true)
	v.SetDefault("post.skip_install", false)

	// Enable environment variable overrides
	v.SetEnvPrefix("HATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env, "HATCH_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_"))); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("hatch")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "hatch"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Defaults: answers.Defaults{
			ProjectName:        v.GetString("defaults.project_name"),
			ProjectDescription: v.GetString("defaults.project_description"),
			GithubUsername:     v.GetString("defaults.github_username"),
			Author:             v.GetString("defaults.author"),
			License:            v.GetString("defaults.license"),
			Keywords:           keywords(v.Get("defaults.keywords")),
		},
		Post: Post{
			Enabled:     v.GetBool("post.enabled"),
			SkipInstall: v.GetBool("post.skip_install"),
		},
		File: v.ConfigFileUsed(),
	}
	if cfg.File != "" {
		output.Verbosef("Using config %s", cfg.File)
	}

	if _, err := license.Lookup(cfg.Defaults.License); err != nil {
		return nil, fmt.Errorf("config defaults.license: %w", err)
	}
	return cfg, nil
}

// keywords accepts a YAML list as well as comma-separated text.
func keywords(raw any) string {
	switch val := raw.(type) {
	case []any:
		parts := make([]string, 0, len(val))
		for _, p := range val {
			parts = append(parts, fmt.Sprint(p))
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(val, ", ")
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}
