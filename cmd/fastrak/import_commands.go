package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fastrak/internal/importer"
	"fastrak/internal/projects"
	"fastrak/internal/watcher"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Scan category roots and register unknown project folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(store *projects.Store) error {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				logger, err := ctx.ensureLogger()
				if err != nil {
					return err
				}

				stats, err := importer.New(cfg, store, logger).Run(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, stats)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Scanned %d folders: %d imported, %d skipped, %d errors\n",
					stats.Scanned, stats.Imported, stats.Skipped, stats.Errors)
				return nil
			})
		},
	}
}

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var debounce int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch category roots and auto-import new project folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(store *projects.Store) error {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				logger, err := ctx.ensureLogger()
				if err != nil {
					return err
				}
				if debounce > 0 {
					cfg.Watch.DebounceSeconds = debounce
				}

				signalCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				fmt.Fprintln(cmd.OutOrStdout(), "Watching for new project folders (Ctrl-C to stop)")
				w := watcher.New(cfg, importer.New(cfg, store, logger), logger)
				return w.Run(signalCtx)
			})
		},
	}

	cmd.Flags().IntVar(&debounce, "debounce", 0, "Seconds of quiet before a scan (default from config)")
	return cmd
}
