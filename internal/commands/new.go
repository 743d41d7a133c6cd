package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/simonhull/hatch/fledge/exec"
	"github.com/simonhull/hatch/fledge/generator"
	"github.com/simonhull/hatch/fledge/input"
	"github.com/simonhull/hatch/fledge/output"
	"github.com/simonhull/hatch/internal/answers"
	"github.com/simonhull/hatch/internal/config"
	"github.com/simonhull/hatch/internal/postgen"
	"github.com/simonhull/hatch/internal/scaffold"
	"github.com/simonhull/hatch/internal/templates"
	"github.com/spf13/cobra"
)

// newOrchestrator builds the process spawner for post-generation steps.
var newOrchestrator = func() *postgen.Orchestrator {
	return postgen.New(nil)
}

type newOptions struct {
	answersFile string
	yes         bool
	templateDir string
	force       bool
	skip        bool
	diff        bool
	dryRun      bool
	skipInstall bool
	noPost      bool
	wait        bool
}

// NewCmd creates and returns the 'new' command for scaffolding projects
func NewCmd() *cobra.Command {
	var opts newOptions

	cmd := &cobra.Command{
		Use:   "new [dir]",
		Short: "Create a new Node.js project",
		Long: `Creates a new Node.js project with:
• README.md and LICENSE
• index.js, src/ layout and an example jest test
• .gitignore and .eslintrc.js
• package.json with dev dependencies and keywords

After the files are written, git init, npm install, lint, test and a first
commit are started in the background.

Example:
  hatch new myapp
  hatch new myapp --answers answers.yml --yes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			configPath, _ := cmd.Flags().GetString("config")
			return runNew(cmd, dir, configPath, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.answersFile, "answers", "", "YAML file with answers; those questions are not asked")
	f.BoolVarP(&opts.yes, "yes", "y", false, "Use defaults for every unanswered question")
	f.StringVar(&opts.templateDir, "templates", "", "Directory replacing the built-in templates")
	f.BoolVar(&opts.force, "force", false, "Overwrite existing files that differ")
	f.BoolVar(&opts.skip, "skip", false, "Keep existing files that differ")
	f.BoolVar(&opts.diff, "diff", false, "Show a diff for existing files that differ, then ask")
	f.BoolVar(&opts.dryRun, "dry-run", false, "Show what would be written without writing")
	f.BoolVar(&opts.skipInstall, "skip-install", false, "Do not run npm install")
	f.BoolVar(&opts.noPost, "no-post", false, "Do not run git or npm afterwards")
	f.BoolVar(&opts.wait, "wait", false, "Wait for the post-generation commands to finish")

	return cmd
}

func runNew(cmd *cobra.Command, dir, configPath string, opts newOptions) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var preset answers.Preset
	if opts.answersFile != "" {
		if preset, err = answers.LoadPreset(opts.answersFile); err != nil {
			return err
		}
	}

	tfs := templates.Embedded()
	if opts.templateDir != "" {
		if tfs, err = templates.Dir(opts.templateDir); err != nil {
			return err
		}
		output.Verbosef("Using templates from %s", opts.templateDir)
	}

	prompter, interactive := newPrompter(cmd)
	resolver, err := generator.NewResolver(opts.force, opts.skip, opts.diff, interactive)
	if err != nil {
		return err
	}

	output.Verbose(fmt.Sprintf("Creating new project in %s", dir))

	s := scaffold.New(scaffold.Options{
		Dir:       dir,
		Templates: tfs,
		Collector: &answers.Collector{
			Prompter:       prompter,
			Defaults:       answers.BuiltinDefaults().Merge(cfg.Defaults),
			Preset:         preset,
			NonInteractive: opts.yes,
		},
		DryRun:       opts.dryRun,
		Resolver:     resolver,
		Confirm:      confirmFunc(prompter, interactive, opts),
		Writer:       cmd.OutOrStdout(),
		PostEnabled:  cfg.Post.Enabled && !opts.noPost,
		SkipInstall:  cfg.Post.SkipInstall || opts.skipInstall,
		Orchestrator: newOrchestrator(),
	})

	res, err := s.Run(cmd.Context())
	if err != nil {
		return err
	}

	if opts.dryRun {
		output.Info("Dry run: nothing was written")
		return nil
	}

	output.Success(fmt.Sprintf("Created project: %s", res.Record.ProjectName))

	if opts.wait && (res.Init != nil || res.Post != nil) {
		err := exec.WaitWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Waiting for git and npm", res.Wait)
		if err != nil {
			output.Warn(fmt.Sprintf("Some commands failed: %v", err))
		}
		return nil
	}

	if res.Post != nil {
		output.Info("git and npm are finishing in the background")
	}
	if abs, err := filepath.Abs(dir); err == nil && dir != "." {
		output.Info("Next steps:")
		output.Step(fmt.Sprintf("cd %s", abs))
		output.Step("npm run dev")
	}
	return nil
}

// confirmFunc asks before generating into a non-empty directory, but only
// on a terminal and when no flag already decided how existing files are
// treated.
func confirmFunc(p *input.Prompter, interactive bool, opts newOptions) func(string, bool) (bool, error) {
	if !interactive || opts.yes || opts.force || opts.skip || opts.dryRun {
		return nil
	}
	return p.Confirm
}

// newPrompter reads from the command's input. Arrow-key menus are only
// offered when that input is the terminal.
func newPrompter(cmd *cobra.Command) (*input.Prompter, bool) {
	in := cmd.InOrStdin()
	if in == os.Stdin {
		p := input.NewConsolePrompter()
		return p, p.Interactive()
	}
	return input.NewPrompter(in, cmd.OutOrStdout()), false
}
