package commands

import (
	"github.com/simonhull/hatch"
	"github.com/simonhull/hatch/fledge/output"
	"github.com/spf13/cobra"
)

// RootCmd creates and returns the root command for the hatch CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "hatch",
		Short: "Scaffold a Node.js project with linting, tests and a license",
		Long: `Hatch asks a few questions and lays out a ready-to-run Node.js project:
• README, LICENSE (MIT or GPL-3.0) and package.json
• eslint + prettier, jest, nodemon, husky
• git repository with a first commit

Example:
  hatch new myapp`,
		Version:       hatch.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().String("config", "", "Config file (default: ./hatch.yml, then ~/.config/hatch/hatch.yml)")

	return cmd
}

// Execute builds the full command tree and runs it with args.
func Execute(args []string) error {
	root := RootCmd()
	root.AddCommand(NewCmd())
	root.AddCommand(TemplatesCmd())
	root.SetArgs(args)
	return root.Execute()
}
