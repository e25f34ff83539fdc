package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/prismagen/internal/wire"
)

// ModelsCmd returns the models command.
func ModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the models of a schema",
		Long:  "List the models of a schema with their field counts. Only scalar fields are generated.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext(cmd)
			out := cmd.OutOrStdout()
			schemaFlag, _ := cmd.Flags().GetString("schema")

			schemaPath, err := resolveSchema(newPrompter(cmd), schemaFlag)
			if err != nil {
				return err
			}

			models, err := wire.GenerateService().ListModels(ctx, schemaPath)
			if err != nil {
				return err
			}

			if len(models) == 0 {
				fmt.Fprintf(out, "No models found in %s.\n", schemaPath)
				return nil
			}

			fmt.Fprintf(out, "%s in %s:\n\n", countNoun(len(models), "model"), schemaPath)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, m := range models {
				fmt.Fprintf(w, "  %s\t%s\t(%d generated)\n", m.Name, countNoun(m.Fields, "field"), m.MappableFields)
			}
			return w.Flush()
		},
	}

	cmd.Flags().String("schema", "", "Schema file (default: the file in the schema directory)")
	return cmd
}

// ModulesCmd returns the modules command.
func ModulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List output modules from tsconfig paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			aliases, err := wire.Aliases()
			if err != nil {
				return err
			}

			if aliases.Fallback {
				fmt.Fprintln(out, color.New(color.FgYellow).Sprintf("No paths in %s, using the default module.", wire.Config().TSConfig))
			} else {
				fmt.Fprintf(out, "%s in %s:\n\n", countNoun(aliases.Len(), "module"), wire.Config().TSConfig)
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, name := range aliases.Names() {
				base, _ := aliases.Base(name)
				fmt.Fprintf(w, "  %s\t%s\n", name, base)
			}
			return w.Flush()
		},
	}
}
