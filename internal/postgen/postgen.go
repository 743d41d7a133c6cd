// Package postgen launches the commands that follow file generation:
// dependency install, lint, tests and the first commit.
//
// Commands are fire-and-forget. They are spawned in order without waiting,
// their output goes straight to the terminal and their exit status is never
// inspected unless the caller opts in with Batch.Wait.
package postgen

import (
	"context"
	"errors"
	"sync"

	"github.com/simonhull/hatch/fledge/exec"
	"github.com/simonhull/hatch/fledge/output"
)

// Step is one command to spawn.
type Step struct {
	Program string
	Args    []string
	Message string // announced before spawning; optional
}

func (s Step) String() string {
	return exec.CommandLine(s.Program, s.Args...)
}

// InitStep initializes version control in the new project.
func InitStep() Step {
	return Step{Program: "git", Args: []string{"init"}, Message: "Initializing git repository..."}
}

// Policy returns the steps run after generation, in order.
func Policy(skipInstall bool) []Step {
	var steps []Step
	if !skipInstall {
		steps = append(steps, Step{Program: "npm", Args: []string{"install"}, Message: "Installing dependencies..."})
	}
	return append(steps,
		Step{Program: "npm", Args: []string{"run", "lint"}, Message: "Checking linting rules..."},
		Step{Program: "npm", Args: []string{"run", "test"}, Message: "Running tests..."},
		Step{Program: "git", Args: []string{"add", "."}, Message: "Commit files..."},
		Step{Program: "git", Args: []string{"commit", "-m", "initial commit"}},
	)
}

// Orchestrator spawns steps through an executor.
type Orchestrator struct {
	executor *exec.Executor
}

// New creates an orchestrator. A nil executor uses the default one, which
// lets children share the terminal.
func New(executor *exec.Executor) *Orchestrator {
	if executor == nil {
		executor = exec.NewExecutor(nil)
	}
	return &Orchestrator{executor: executor}
}

// Submit spawns every step in dir, in order, and returns at once. A step
// that cannot be spawned is recorded on the batch and the next one is still
// attempted.
func (o *Orchestrator) Submit(ctx context.Context, dir string, steps []Step) *Batch {
	ex := o.executor.InDir(dir)
	b := &Batch{}

	for _, step := range steps {
		if step.Message != "" {
			output.Info(step.Message)
		}
		output.Verbose("$ " + step.String())

		proc, err := ex.Start(ctx, step.Program, step.Args...)
		if err != nil {
			output.Verbosef("could not start %s: %v", step, err)
			b.spawnErrs = append(b.spawnErrs, err)
			continue
		}
		b.procs = append(b.procs, proc)
	}
	return b
}

// Batch is the set of processes spawned by one Submit.
type Batch struct {
	procs     []*exec.Process
	spawnErrs []error

	once sync.Once
	err  error
}

// Spawned returns how many steps are running or have run.
func (b *Batch) Spawned() int {
	return len(b.procs)
}

// SpawnErrors returns the steps that never started.
func (b *Batch) SpawnErrors() []error {
	return append([]error(nil), b.spawnErrs...)
}

// Wait blocks until every spawned process has exited and returns spawn
// failures and non-zero exits joined together. Generation never needs to
// call it.
func (b *Batch) Wait() error {
	b.once.Do(func() {
		errs := append([]error(nil), b.spawnErrs...)

		results := make([]error, len(b.procs))
		var wg sync.WaitGroup
		for i, p := range b.procs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i] = p.Wait()
			}()
		}
		wg.Wait()

		b.err = errors.Join(append(errs, results...)...)
	})
	return b.err
}
