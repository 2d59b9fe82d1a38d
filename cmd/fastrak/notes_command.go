package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"fastrak/internal/projects"
)

func newNotesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "notes <id|path> <text>...",
		Short: "Replace a project's notes",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(store *projects.Store) error {
				project, err := resolveProject(store, args[0])
				if err != nil {
					return err
				}
				updated, err := store.UpdateNotes(project.ID, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, updated)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated notes for %s\n", updated.ProjectName)
				return nil
			})
		},
	}
}

func newOpenCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "open <id|path>",
		Short: "Print the platform path for a project folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(store *projects.Store) error {
				project, err := resolveProject(store, args[0])
				if err != nil {
					return err
				}
				rules := store.Rules()
				// The subst work drive only exists on Windows; elsewhere the
				// active-base path is the one that resolves on disk.
				path := project.Path
				if runtime.GOOS == "windows" {
					path = rules.ToWorkDrive(path)
				}
				fmt.Fprintln(cmd.OutOrStdout(), rules.ToPlatform(path))
				return nil
			})
		},
	}
}
