package templates

import (
	"fmt"
	"strconv"
	"time"

	"github.com/simonhull/hatch/internal/answers"
	"github.com/simonhull/hatch/internal/license"
)

// Mode selects how a task's source becomes its destination.
type Mode int

const (
	// Copy writes the source bytes unchanged.
	Copy Mode = iota
	// Render substitutes placeholders with the task's Vars.
	Render
)

func (m Mode) String() string {
	switch m {
	case Copy:
		return "copy"
	case Render:
		return "render"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Task produces one file of the generated project. Source is a template
// identifier; Destination is relative to the project root.
type Task struct {
	Source      string
	Destination string
	Mode        Mode
	Vars        map[string]string
}

// LicenseDestination is where the chosen license text is written.
const LicenseDestination = "LICENSE"

var copies = []struct{ source, destination string }{
	{"index.js", "index.js"},
	{"tests/example.spec.js", "tests/example.spec.js"},
	{"src/app.js", "src/app.js"},
	{"src/config/index.js", "src/config/index.js"},
	{"empty.js", "src/domain/index.js"},
	{"empty.js", "src/models/index.js"},
	{"empty.js", "src/services/index.js"},
	{"empty.js", "src/utils/index.js"},
	{"ignoregit", ".gitignore"},
	{"eslintrc.js", ".eslintrc.js"},
}

// Resolve maps an answer record to the tasks that build the project. It
// does no I/O; now supplies the license year.
func Resolve(rec answers.Record, now time.Time) ([]Task, error) {
	entry, err := license.Lookup(rec.License)
	if err != nil {
		return nil, err
	}

	tasks := []Task{{
		Source:      "README.md",
		Destination: "README.md",
		Mode:        Render,
		Vars: map[string]string{
			"projectName":    rec.ProjectName,
			"githubUsername": rec.GithubUsername,
		},
	}}

	if entry.Static() {
		tasks = append(tasks, Task{Source: entry.TemplateFile, Destination: LicenseDestination, Mode: Copy})
	} else {
		tasks = append(tasks, Task{
			Source:      entry.TemplateFile,
			Destination: LicenseDestination,
			Mode:        Render,
			Vars: map[string]string{
				license.VarAuthor: rec.Author,
				license.VarYear:   strconv.Itoa(now.Year()),
			},
		})
	}

	for _, c := range copies {
		tasks = append(tasks, Task{Source: c.source, Destination: c.destination, Mode: Copy})
	}
	return tasks, nil
}
