package cli

import (
	gocontext "context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/example/prismagen/internal/wire"
)

// watchDebounce collapses the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

// WatchCmd returns the watch command.
func WatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [model]",
		Short: "Regenerate a model whenever its schema changes",
		Long: `Watch the schema file and regenerate the selected artifacts on every change.
Existing files are overwritten without confirmation. Stop with Ctrl-C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(NewContext(cmd), os.Interrupt)
			defer stop()
			out := cmd.OutOrStdout()

			req, err := buildRequest(ctx, cmd, args, newPrompter(cmd))
			if err != nil {
				return err
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("failed to start watcher: %w", err)
			}
			defer watcher.Close()

			// Watch the directory; editors often replace the file on save.
			if err := watcher.Add(filepath.Dir(req.SchemaPath)); err != nil {
				return fmt.Errorf("failed to watch %s: %w", req.SchemaPath, err)
			}

			service := wire.GenerateService()
			regenerate := func() error {
				plan, err := service.Plan(ctx, req)
				if err != nil {
					return err
				}
				resp, err := service.Apply(ctx, plan)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s regenerated (%s)\n",
					color.New(color.FgGreen).Sprint("✓"), plan.Result.Model, countNoun(len(resp.Written), "file"))
				return nil
			}

			fmt.Fprintf(out, "Watching %s for changes to %s...\n", req.SchemaPath, req.Model)
			if err := regenerate(); err != nil {
				return err
			}

			return watchLoop(ctx, watcher.Events, watcher.Errors, req.SchemaPath, watchDebounce, regenerate, out)
		},
	}

	cmd.Flags().String("schema", "", "Schema file (default: the file in the schema directory)")
	cmd.Flags().StringP("module", "m", "", "Output module alias from tsconfig paths")
	cmd.Flags().StringP("artifacts", "a", "", "Artifacts to generate: entity,mapper,repository (default all)")
	cmd.Flags().String("ops", "", "Repository operations: find,findMany,create,update,delete (default all)")
	cmd.Flags().StringP("out", "o", "", "Output root (default: output_root from config)")
	cmd.Flags().Bool("no-history", false, "Do not record runs in the history database")

	return cmd
}

// watchLoop calls regenerate once per debounced change of path until ctx is
// done or the event channel closes. Events are handled one at a time;
// regeneration errors are reported and watching continues.
func watchLoop(ctx gocontext.Context, events <-chan fsnotify.Event, errs <-chan error, path string, debounce time.Duration, regenerate func() error, out io.Writer) error {
	path = filepath.Clean(path)
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !isSchemaChange(ev, path) {
				continue
			}
			slog.Debug("schema changed", "path", ev.Name, "op", ev.Op.String())
			pending = time.After(debounce)

		case <-pending:
			pending = nil
			if err := regenerate(); err != nil {
				fmt.Fprintf(out, "%s %v\n", color.New(color.FgRed).Sprint("✗"), err)
			}

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		}
	}
}

// isSchemaChange reports whether ev modifies the file at path.
func isSchemaChange(ev fsnotify.Event, path string) bool {
	if filepath.Clean(ev.Name) != path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create) != 0
}
