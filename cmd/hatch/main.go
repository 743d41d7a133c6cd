package main

import (
	"os"

	"github.com/simonhull/hatch/fledge/output"
	"github.com/simonhull/hatch/internal/commands"
)

func main() {
	if err := commands.Execute(os.Args[1:]); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
