package commands

import (
	"fmt"
	"io/fs"
	"strings"
	"text/tabwriter"

	"github.com/simonhull/hatch/fledge/generator"
	"github.com/simonhull/hatch/fledge/output"
	"github.com/simonhull/hatch/internal/templates"
	"github.com/spf13/cobra"
)

// TemplatesCmd creates the 'templates' command group
func TemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect or export the project templates",
	}

	cmd.AddCommand(templatesListCmd())
	cmd.AddCommand(templatesExportCmd())

	return cmd
}

func templatesListCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List template identifiers and the placeholders they use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys := templates.Embedded()
			if dir != "" {
				var err error
				if fsys, err = templates.Dir(dir); err != nil {
					return err
				}
			}

			ids, err := templates.List(fsys)
			if err != nil {
				return err
			}
			renderer := generator.NewRenderer()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, id := range ids {
				fmt.Fprintf(w, "%s\t%s\n", id, placeholders(renderer, fsys, id))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&dir, "templates", "", "List a template directory instead of the built-in set")
	return cmd
}

// placeholders lists the fields a template substitutes. Templates that do not
// parse are listed without any; rendering reports the error.
func placeholders(r *generator.Renderer, fsys fs.FS, id string) string {
	src, err := fs.ReadFile(fsys, id)
	if err != nil {
		return ""
	}
	fields, err := r.Placeholders(id, src)
	if err != nil {
		output.Verbosef("%s: %v", id, err)
		return ""
	}
	return strings.Join(fields, ", ")
}

func templatesExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write the built-in templates to a directory for editing",
		Long: `Copies the built-in templates to <dir>. Edit them and pass the
directory back with 'hatch new --templates <dir>'.

Example:
  hatch templates export ./my-templates`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := templates.Export(args[0]); err != nil {
				return err
			}
			output.Success(fmt.Sprintf("Exported templates to %s", args[0]))
			return nil
		},
	}
}
