// Package cli provides CLI commands for the prismagen application.
package cli

import (
	gocontext "context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/prismagen/internal/config"
	"github.com/example/prismagen/internal/version"
	"github.com/example/prismagen/internal/wire"
)

// NewContext creates the context for a command invocation.
// CLI commands should use this instead of context.Background() directly.
func NewContext(cmd *cobra.Command) gocontext.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return gocontext.Background()
}

// RootCmd returns the prismagen root command with all subcommands attached.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "prismagen",
		Short:   "Generate layered TypeScript artifacts from Prisma schemas",
		Version: version.String(),
		Long: `prismagen reads a Prisma schema and writes a domain entity, a mapper,
a repository contract and its Prisma adapter into a tsconfig path-alias module.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: bootstrap,
	}

	rootCmd.PersistentFlags().StringP("dir", "C", ".", "Project directory")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(GenerateCmd())
	rootCmd.AddCommand(ModelsCmd())
	rootCmd.AddCommand(ModulesCmd())
	rootCmd.AddCommand(HistoryCmd())
	rootCmd.AddCommand(WatchCmd())
	rootCmd.AddCommand(VersionCmd())

	return rootCmd
}

// Execute runs the root command and closes the history database afterwards,
// whether or not the command succeeded.
func Execute() error {
	return execute(RootCmd())
}

func execute(root *cobra.Command) error {
	defer wire.Close()
	return root.Execute()
}

// bootstrap loads the project configuration, sets up logging and configures
// the service wiring. It runs before every subcommand.
func bootstrap(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	debug, _ := cmd.Flags().GetBool("debug")

	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve project directory: %w", err)
	}

	cfg, err := config.Load(abs)
	if err != nil {
		return err
	}

	level := cfg.Level()
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})))
	slog.Debug("loaded configuration", "dir", abs, "schema_dir", cfg.SchemaDir, "history", cfg.History.Enabled)

	wire.Configure(cfg)
	return nil
}

// VersionCmd returns the version command.
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info().String())
		},
	}
}
