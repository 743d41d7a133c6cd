// Package materialize turns resolved template tasks into files under a
// project root.
package materialize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/simonhull/hatch/fledge/generator"
	"github.com/simonhull/hatch/fledge/output"
	"github.com/simonhull/hatch/internal/templates"
)

// Materializer writes tasks below Root, reading sources from Templates.
type Materializer struct {
	Root      string
	Templates fs.FS
	Renderer  *generator.Renderer

	DryRun   bool
	Resolver *generator.Resolver // nil: any differing file is a conflict error
	Writer   io.Writer           // progress lines; nil means stdout
}

// New creates a materializer over root using the given template set.
func New(root string, fsys fs.FS) *Materializer {
	return &Materializer{
		Root:      root,
		Templates: fsys,
		Renderer:  generator.NewRenderer(),
	}
}

// Materialize produces every task's destination. Content for all tasks is
// prepared before the first write, and writes run in one transaction: a
// failure leaves the root as it was.
func (m *Materializer) Materialize(ctx context.Context, tasks []templates.Task) error {
	ops, err := m.Plan(tasks)
	if err != nil {
		return err
	}

	return generator.Execute(ctx, ops, generator.ExecuteOptions{
		DryRun:   m.DryRun,
		Resolver: m.Resolver,
		Writer:   m.Writer,
	})
}

// Plan prepares one write operation per task without touching the root.
func (m *Materializer) Plan(tasks []templates.Task) ([]generator.Operation, error) {
	ops := make([]generator.Operation, 0, len(tasks))
	for _, task := range tasks {
		op, err := m.plan(task)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func (m *Materializer) plan(task templates.Task) (*generator.WriteFileOp, error) {
	dest, err := securejoin.SecureJoin(m.Root, task.Destination)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", generator.ErrDestinationWrite, task.Destination, err)
	}

	content, err := m.content(task)
	if err != nil {
		return nil, err
	}

	output.Verbosef("%s %s -> %s", task.Mode, task.Source, task.Destination)
	return &generator.WriteFileOp{
		Path:    dest,
		Content: content,
		Mode:    0o644,
		Label:   task.Destination,
	}, nil
}

func (m *Materializer) content(task templates.Task) ([]byte, error) {
	switch task.Mode {
	case templates.Copy:
		data, err := fs.ReadFile(m.Templates, task.Source)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", generator.ErrSourceNotFound, task.Source)
		}
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", task.Source, err)
		}
		if data == nil {
			data = []byte{}
		}
		return data, nil

	case templates.Render:
		renderer := m.Renderer
		if renderer == nil {
			renderer = generator.NewRenderer()
			m.Renderer = renderer
		}
		return renderer.RenderFS(m.Templates, task.Source, task.Vars)

	default:
		return nil, fmt.Errorf("%s: unknown task mode %s", task.Destination, task.Mode)
	}
}
