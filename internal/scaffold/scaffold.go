// Package scaffold runs the generation pipeline for a new project.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/simonhull/hatch/fledge/generator"
	"github.com/simonhull/hatch/fledge/output"
	"github.com/simonhull/hatch/fledge/project"
	"github.com/simonhull/hatch/internal/answers"
	"github.com/simonhull/hatch/internal/manifest"
	"github.com/simonhull/hatch/internal/materialize"
	"github.com/simonhull/hatch/internal/postgen"
	"github.com/simonhull/hatch/internal/templates"
)

// Options configures one generation run.
type Options struct {
	Dir       string // project root, created if missing
	Templates fs.FS  // nil means the built-in set
	Collector *answers.Collector

	DryRun   bool
	Resolver *generator.Resolver
	Writer   io.Writer // progress lines; nil means stdout

	// Confirm is asked before generating into a non-empty directory. Nil
	// proceeds without asking.
	Confirm func(message string, defaultYes bool) (bool, error)

	PostEnabled  bool
	SkipInstall  bool
	Orchestrator *postgen.Orchestrator // nil means real processes

	Now func() time.Time // nil means time.Now
}

// Result is what a run leaves behind.
type Result struct {
	Record answers.Record
	Root   string
	Target *project.Info // what Root held before the run
	Tasks  []templates.Task

	// Manifest is the package.json found in Root, nil when there is none.
	Manifest map[string]any

	// Init and Post are the spawned command batches, nil when not run.
	Init *postgen.Batch
	Post *postgen.Batch
}

// Wait blocks until every spawned command has exited.
func (r *Result) Wait() error {
	var errs []error
	for _, b := range []*postgen.Batch{r.Init, r.Post} {
		if b != nil {
			errs = append(errs, b.Wait())
		}
	}
	return errors.Join(errs...)
}

// Scaffolder runs the steps of a generation in order.
type Scaffolder struct {
	opts  Options
	steps []Step
}

// Step is one stage of the pipeline.
type Step interface {
	Run(ctx context.Context, s *Scaffolder, res *Result) error
}

// New creates a scaffolder with the standard step chain.
func New(opts Options) *Scaffolder {
	if opts.Templates == nil {
		opts.Templates = templates.Embedded()
	}
	if opts.Orchestrator == nil {
		opts.Orchestrator = postgen.New(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}

	return &Scaffolder{
		opts: opts,
		steps: []Step{
			InspectTarget{},
			CollectAnswers{},
			InitRepository{},
			ResolveTemplates{},
			MaterializeFiles{},
			MergeManifest{},
			SubmitPostGeneration{},
		},
	}
}

// Run executes every step. The first failing step stops the chain; commands
// already spawned keep running.
func (s *Scaffolder) Run(ctx context.Context) (*Result, error) {
	res := &Result{Root: s.opts.Dir}
	for _, step := range s.steps {
		if err := step.Run(ctx, s, res); err != nil {
			return res, err
		}
	}
	return res, nil
}

// InspectTarget records what the project root already contains. An
// existing package.json is validated here, before any prompt or write.
type InspectTarget struct{}

func (InspectTarget) Run(_ context.Context, s *Scaffolder, res *Result) error {
	info, err := project.Detect(res.Root)
	if err != nil {
		return fmt.Errorf("%w: %v", generator.ErrDestinationWrite, err)
	}
	res.Target = info

	if info.HasManifest {
		existing, err := manifest.Load(filepath.Join(res.Root, project.ManifestFile))
		if err != nil {
			return err
		}
		res.Manifest = existing

		name := info.Name
		if name == "" {
			name = "unnamed package"
		}
		output.Info(fmt.Sprintf("Existing %s (%s) found; generated fields will be merged into it", project.ManifestFile, name))
	}

	if info.Exists && !info.Empty && s.opts.Confirm != nil {
		ok, err := s.opts.Confirm(fmt.Sprintf("%s is not empty. Generate into it?", res.Root), false)
		if err != nil {
			return fmt.Errorf("%w: %v", answers.ErrInputUnavailable, err)
		}
		if !ok {
			return fmt.Errorf("%w: %s is not empty", generator.ErrCancelled, res.Root)
		}
	}
	return nil
}

// CollectAnswers fills the answer record.
type CollectAnswers struct{}

func (CollectAnswers) Run(_ context.Context, s *Scaffolder, res *Result) error {
	if s.opts.Collector == nil {
		return fmt.Errorf("%w: no answer source", answers.ErrInputUnavailable)
	}
	rec, err := s.opts.Collector.Collect()
	if err != nil {
		return err
	}
	res.Record = rec
	return nil
}

// InitRepository creates the project root and starts git init in it
// without waiting. An existing repository is left alone.
type InitRepository struct{}

func (InitRepository) Run(ctx context.Context, s *Scaffolder, res *Result) error {
	if !s.opts.PostEnabled || s.opts.DryRun {
		return nil
	}
	if res.Target != nil && res.Target.HasRepository {
		output.Verbose("Git repository already present; skipping git init")
		return nil
	}
	if err := os.MkdirAll(res.Root, 0o755); err != nil {
		return fmt.Errorf("%w: %s: %v", generator.ErrDestinationWrite, res.Root, err)
	}
	res.Init = s.opts.Orchestrator.Submit(ctx, res.Root, []postgen.Step{postgen.InitStep()})
	return nil
}

// ResolveTemplates maps the answers to template tasks.
type ResolveTemplates struct{}

func (ResolveTemplates) Run(_ context.Context, s *Scaffolder, res *Result) error {
	tasks, err := templates.Resolve(res.Record, s.opts.Now())
	if err != nil {
		return err
	}
	if missing := templates.Missing(s.opts.Templates, tasks); len(missing) > 0 {
		return fmt.Errorf("%w: %v", generator.ErrSourceNotFound, missing)
	}
	res.Tasks = tasks
	return nil
}

// MaterializeFiles writes the project files.
type MaterializeFiles struct{}

func (MaterializeFiles) Run(ctx context.Context, s *Scaffolder, res *Result) error {
	m := materialize.New(res.Root, s.opts.Templates)
	m.DryRun = s.opts.DryRun
	m.Resolver = s.opts.Resolver
	m.Writer = s.opts.Writer
	return m.Materialize(ctx, res.Tasks)
}

// MergeManifest creates or updates package.json.
type MergeManifest struct{}

func (MergeManifest) Run(ctx context.Context, s *Scaffolder, res *Result) error {
	path, err := securejoin.SecureJoin(res.Root, manifest.FileName)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", generator.ErrDestinationWrite, manifest.FileName, err)
	}

	merger := manifest.NewMerger(s.opts.Templates)
	patch := manifest.NewPatch(res.Record)

	w := s.opts.Writer
	if w == nil {
		w = os.Stdout
	}
	if s.opts.DryRun {
		if _, err := merger.Merge(res.Manifest, patch); err != nil {
			return err
		}
		fmt.Fprintf(w, "✓ [DRY RUN] Merge %s\n", manifest.FileName)
		return nil
	}

	if err := merger.MergeFile(ctx, path, patch); err != nil {
		return err
	}
	fmt.Fprintf(w, "✓ Merge %s\n", manifest.FileName)
	return nil
}

// SubmitPostGeneration spawns install, lint, test and commit.
type SubmitPostGeneration struct{}

func (SubmitPostGeneration) Run(ctx context.Context, s *Scaffolder, res *Result) error {
	if !s.opts.PostEnabled || s.opts.DryRun {
		output.Verbose("Skipping post-generation commands")
		return nil
	}
	res.Post = s.opts.Orchestrator.Submit(ctx, res.Root, postgen.Policy(s.opts.SkipInstall))
	return nil
}
