// Package hatch scaffolds Node.js projects from a fixed template set.
package hatch

// Version is the released version of the hatch CLI.
const Version = "0.3.0"
