package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fastrak/internal/archive"
	"fastrak/internal/projects"
	"fastrak/internal/winpath"
)

func newArchiveCommand(ctx *commandContext) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "archive <id|path>",
		Short: "Move a project folder into the archive tree",
		Args:  cobra.ExactArgs(1),
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
				project, err := resolveProject(store, args[0])
				if err != nil {
					return err
				}

				manager := archive.NewManager(cfg, store, logger)
				updated, err := manager.Archive(cmd.Context(), project.ID, archive.ArchiveOptions{Overwrite: overwrite})
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, updated)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Archived %s -> %s\n", updated.ProjectName, winpath.Display(updated.Path))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing archive folder")
	return cmd
}

func newRestoreCommand(ctx *commandContext) *cobra.Command {
	var rename bool

	cmd := &cobra.Command{
		Use:   "restore <id|path>",
		Short: "Move an archived project folder back into the active tree",
		Args:  cobra.ExactArgs(1),
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
				project, err := resolveProject(store, args[0])
				if err != nil {
					return err
				}

				manager := archive.NewManager(cfg, store, logger)
				updated, err := manager.Restore(cmd.Context(), project.ID, archive.RestoreOptions{Rename: rename})
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, updated)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Restored %s -> %s\n", updated.ProjectName, winpath.Display(updated.Path))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&rename, "rename", false, "Rename around an occupied restore target")
	return cmd
}
