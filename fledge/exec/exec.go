package exec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	shellquote "github.com/kballard/go-shellquote"
)

// Executor spawns external commands detached from the caller (Start).
type Executor struct {
	stdout io.Writer
	stderr io.Writer
	env    []string
	dir    string

	// For mocking in tests
	commandFunc func(name string, args ...string) *exec.Cmd
}

// Options configures command execution
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	Env    []string // Additional environment variables
	Dir    string   // Working directory
}

// NewExecutor creates an executor with sensible defaults
func NewExecutor(opts *Options) *Executor {
	if opts == nil {
		opts = &Options{}
	}

	// Set defaults for nil fields
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Executor{
		stdout:      stdout,
		stderr:      stderr,
		env:         opts.Env,
		dir:         opts.Dir,
		commandFunc: exec.Command, // Can be mocked for tests
	}
}

// WithCommandFunc replaces how commands are built. Tests use it to point
// every command at a helper process.
func (e *Executor) WithCommandFunc(fn func(name string, args ...string) *exec.Cmd) *Executor {
	clone := *e
	clone.commandFunc = fn
	return &clone
}

// Dir returns the working directory commands run in ("" means inherited)
func (e *Executor) Dir() string {
	return e.dir
}

// InDir returns a copy of the executor that runs commands in dir.
func (e *Executor) InDir(dir string) *Executor {
	clone := *e
	clone.dir = dir
	return &clone
}

func (e *Executor) command(name string, args ...string) *exec.Cmd {
	cmd := e.commandFunc(name, args...)

	// Set working directory
	if e.dir != "" {
		cmd.Dir = e.dir
	}

	// Set environment
	if len(e.env) > 0 {
		if cmd.Env == nil {
			cmd.Env = os.Environ()
		}
		cmd.Env = append(cmd.Env, e.env...)
	}

	// Output goes straight to the configured streams; nothing is captured.
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	return cmd
}

// Start spawns a command and returns without waiting for it. The child
// keeps running if this process exits. Call Wait on the returned Process
// to observe completion.
func (e *Executor) Start(ctx context.Context, name string, args ...string) (*Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cmd := e.command(name, args...)
	if err := cmd.Start(); err != nil {
		if isCommandNotFound(err) {
			return nil, enhanceError(err, name)
		}
		return nil, fmt.Errorf("failed to start %s: %w", name, err)
	}

	return &Process{name: name, args: args, cmd: cmd}, nil
}

// Process is a spawned, detached command.
type Process struct {
	name string
	args []string
	cmd  *exec.Cmd

	once sync.Once
	err  error
}

// Wait blocks until the process exits and returns its result. Safe to call
// more than once; later calls return the first result.
func (p *Process) Wait() error {
	p.once.Do(func() {
		if err := p.cmd.Wait(); err != nil {
			p.err = fmt.Errorf("%s failed: %w", p.name, err)
		}
	})
	return p.err
}

// Pid returns the operating system process id
func (p *Process) Pid() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// String returns the shell-quoted command line
func (p *Process) String() string {
	return CommandLine(p.name, p.args...)
}

// CommandLine renders a command the way a user would type it.
func CommandLine(name string, args ...string) string {
	return shellquote.Join(append([]string{name}, args...)...)
}

// isCommandNotFound checks if an error indicates a command was not found
func isCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, exec.ErrNotFound) ||
		// Some systems return different errors
		strings.Contains(err.Error(), "executable file not found") ||
		strings.Contains(err.Error(), "command not found")
}

// enhanceError adds helpful message for missing commands
func enhanceError(err error, cmd string) error {
	return fmt.Errorf("%w\n💡 Command '%s' not found. Please install it and try again", err, cmd)
}
