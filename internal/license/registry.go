// Package license maps license identifiers to their template variants.
package license

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLicense is returned for identifiers that are not registered.
var ErrUnknownLicense = errors.New("unknown license")

// Variables a license template may require.
const (
	VarAuthor = "author"
	VarYear   = "year"
)

// Identifiers of the registered licenses.
const (
	MIT   = "MIT"
	GPLv3 = "GPL-3.0"
)

// Entry describes one license variant. An entry without RequiredVars is
// static text and is copied verbatim.
type Entry struct {
	ID           string
	TemplateFile string
	RequiredVars []string
}

// Static reports whether the license text needs no substitution.
func (e Entry) Static() bool {
	return len(e.RequiredVars) == 0
}

// Registration order is the order choices are offered in.
var registry = []Entry{
	{ID: MIT, TemplateFile: "LICENSE-MIT", RequiredVars: []string{VarAuthor, VarYear}},
	{ID: GPLv3, TemplateFile: "LICENSE-GPL"},
}

// Lookup returns the entry registered for id.
func Lookup(id string) (Entry, error) {
	for _, e := range registry {
		if e.ID == id {
			return clone(e), nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %q (choose one of %s)", ErrUnknownLicense, id, strings.Join(IDs(), ", "))
}

// IDs returns the registered identifiers in registration order.
func IDs() []string {
	ids := make([]string, len(registry))
	for i, e := range registry {
		ids[i] = e.ID
	}
	return ids
}

// Entries returns a copy of every registered entry.
func Entries() []Entry {
	out := make([]Entry, len(registry))
	for i, e := range registry {
		out[i] = clone(e)
	}
	return out
}

func clone(e Entry) Entry {
	if e.RequiredVars != nil {
		e.RequiredVars = append([]string(nil), e.RequiredVars...)
	}
	return e
}
