package cli

import (
	gocontext "context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/go-openapi/inflect"
	"github.com/spf13/cobra"

	"github.com/example/prismagen/internal/ports/primary"
	"github.com/example/prismagen/internal/scaffold"
	"github.com/example/prismagen/internal/schema"
	"github.com/example/prismagen/internal/wire"
)

// GenerateCmd returns the generate command.
func GenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [model]",
		Short: "Generate entity, mapper and repository files for a model",
		Long: `Generate layered TypeScript artifacts for one schema model:
  - Entity (domain/entity/<model>.entity.ts)
  - Mapper (infra/database/prisma/mappers/<model>.mapper.ts)
  - Repository contract (app/repositories/<model>.repository.ts)
  - Prisma repository (infra/database/prisma/prisma-<model>.repository.ts)

Missing choices are prompted for when stdin is a terminal.

Examples:
  prismagen generate User
  prismagen generate User --module billing --artifacts entity,repository --ops find,create
  prismagen generate Order --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext(cmd)
			out := cmd.OutOrStdout()
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			force, _ := cmd.Flags().GetBool("force")
			p := newPrompter(cmd)

			req, err := buildRequest(ctx, cmd, args, p)
			if err != nil {
				return err
			}

			service := wire.GenerateService()
			plan, err := service.Plan(ctx, req)
			if err != nil {
				return err
			}

			printPlan(out, plan)

			if dryRun {
				fmt.Fprintln(out, "(dry-run mode - no files written)")
				fmt.Fprintln(out)
				for _, f := range plan.Result.Files {
					fmt.Fprintf(out, "--- %s ---\n", f.Path)
					fmt.Fprintln(out, f.Content)
					fmt.Fprintln(out)
				}
				return nil
			}

			if !force {
				if !p.interactive {
					if len(plan.Existing) > 0 {
						return fmt.Errorf("refusing to overwrite %s without --force", countNoun(len(plan.Existing), "file"))
					}
				} else {
					ok, err := p.Confirm("Proceed?")
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(out, "Aborted.")
						return nil
					}
				}
			}

			resp, err := service.Apply(ctx, plan)
			if resp != nil {
				printWritten(out, plan, resp)
			}
			if err != nil {
				return err
			}

			printNextSteps(out, resp.NextSteps)
			return nil
		},
	}

	cmd.Flags().String("schema", "", "Schema file (default: the file in the schema directory)")
	cmd.Flags().StringP("module", "m", "", "Output module alias from tsconfig paths")
	cmd.Flags().StringP("artifacts", "a", "", "Artifacts to generate: entity,mapper,repository (default all)")
	cmd.Flags().String("ops", "", "Repository operations: find,findMany,create,update,delete (default all)")
	cmd.Flags().StringP("out", "o", "", "Output root (default: output_root from config)")
	cmd.Flags().Bool("dry-run", false, "Preview without writing files")
	cmd.Flags().BoolP("force", "f", false, "Write without confirmation, overwriting existing files")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history database")

	return cmd
}

// buildRequest resolves every generation choice from flags, config and prompts.
func buildRequest(ctx gocontext.Context, cmd *cobra.Command, args []string, p *prompter) (primary.GenerateRequest, error) {
	cfg := wire.Config()
	schemaFlag, _ := cmd.Flags().GetString("schema")
	moduleFlag, _ := cmd.Flags().GetString("module")
	artifactsStr, _ := cmd.Flags().GetString("artifacts")
	opsStr, _ := cmd.Flags().GetString("ops")
	outFlag, _ := cmd.Flags().GetString("out")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	var req primary.GenerateRequest

	kinds, err := scaffold.BuildKinds(artifactsStr, opsStr)
	if err != nil {
		return req, err
	}

	schemaPath, err := resolveSchema(p, schemaFlag)
	if err != nil {
		return req, err
	}

	var model string
	if len(args) > 0 {
		model = args[0]
	} else {
		model, err = selectModel(ctx, p, schemaPath)
		if err != nil {
			return req, err
		}
	}

	module, base, err := resolveModule(p, moduleFlag)
	if err != nil {
		return req, err
	}

	outputRoot := cfg.Resolve(cfg.OutputRoot)
	if outFlag != "" {
		outputRoot = cfg.Resolve(outFlag)
	}

	return primary.GenerateRequest{
		SchemaPath: schemaPath,
		Model:      model,
		Module:     module,
		ModuleBase: base,
		OutputRoot: outputRoot,
		Kinds:      kinds,
		NoHistory:  noHistory,
	}, nil
}

// resolveSchema returns the --schema file, or the schema file found in the
// configured schema directory.
func resolveSchema(p *prompter, schemaFlag string) (string, error) {
	cfg := wire.Config()
	if schemaFlag != "" {
		return cfg.Resolve(schemaFlag), nil
	}

	schemas, err := schema.FindSchemas(cfg.SchemaPath())
	if err != nil {
		return "", err
	}
	if len(schemas) == 0 {
		return "", fmt.Errorf("no schema files in %s", cfg.SchemaPath())
	}
	return p.Select("schema", "schema", schemas)
}

// selectModel prompts for a model of the schema.
func selectModel(ctx gocontext.Context, p *prompter, schemaPath string) (string, error) {
	models, err := wire.GenerateService().ListModels(ctx, schemaPath)
	if err != nil {
		return "", err
	}
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = m.Name
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no models in %s", schemaPath)
	}
	return p.Select("model", "model", names)
}

// resolveModule returns the module alias and its base path.
func resolveModule(p *prompter, name string) (string, string, error) {
	aliases, err := wire.Aliases()
	if err != nil {
		return "", "", err
	}

	if name == "" {
		name, err = p.Select("module", "module", aliases.Names())
		if err != nil {
			return "", "", err
		}
	}

	base, ok := aliases.Base(name)
	if !ok {
		return "", "", fmt.Errorf("%w %q (available: %v)", primary.ErrUnknownModule, name, aliases.Names())
	}
	return name, base, nil
}

func printPlan(out io.Writer, plan *primary.GeneratePlan) {
	existing := make(map[string]bool, len(plan.Existing))
	for _, path := range plan.Existing {
		existing[path] = true
	}

	fmt.Fprintf(out, "Generating %s: %s\n\n", plan.Result.Model, scaffold.DescribeKinds(plan.Request.Kinds))
	fmt.Fprintln(out, "Files to write:")
	for _, f := range plan.Result.Files {
		marker := ""
		if existing[f.Path] {
			marker = color.New(color.FgYellow).Sprint(" (overwrite)")
		}
		fmt.Fprintf(out, "  %s%s\n", f.Path, marker)
	}
	fmt.Fprintln(out)
}

func printWritten(out io.Writer, plan *primary.GeneratePlan, resp *primary.GenerateResponse) {
	existing := make(map[string]bool, len(plan.Existing))
	for _, path := range plan.Existing {
		existing[path] = true
	}

	check := color.New(color.FgGreen).Sprint("✓")
	for _, f := range resp.Written {
		verb := "Created"
		if existing[f.Path] {
			verb = "Overwrote"
		}
		fmt.Fprintf(out, "%s %s %s\n", check, verb, f.Path)
	}
	fmt.Fprintf(out, "\nWrote %s", countNoun(len(resp.Written), "file"))
	if resp.RunID != "" {
		fmt.Fprintf(out, " (run %s)", resp.RunID)
	}
	fmt.Fprintln(out)
}

func printNextSteps(out io.Writer, steps []string) {
	if len(steps) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	for i, step := range steps {
		fmt.Fprintf(out, "  %d. %s\n", i+1, step)
	}
}

// countNoun formats n with noun pluralised when needed, e.g. "4 files".
func countNoun(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %s", n, inflect.Pluralize(noun))
}
