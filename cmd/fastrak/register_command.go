package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fastrak/internal/projects"
	"fastrak/internal/winpath"
)

func newRegisterCommand(ctx *commandContext) *cobra.Command {
	var clientFlag string
	var nameFlag string
	var typeFlag string
	var dateFlag string
	var pathFlag string
	var baseFlag string
	var notesFlag string
	var personalFlag bool

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register an existing project folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(pathFlag) == "" {
				return errors.New("--path is required")
			}
			if typeFlag != "" && !projects.IsKnownType(typeFlag) {
				return fmt.Errorf("unknown project type %q", typeFlag)
			}

			client := strings.TrimSpace(clientFlag)
			if personalFlag {
				client = projects.PersonalClientName
			}

			return ctx.withStore(cmd, func(store *projects.Store) error {
				project, created, err := store.Register(projects.Draft{
					ClientName:    client,
					ProjectName:   strings.TrimSpace(nameFlag),
					ProjectType:   strings.TrimSpace(typeFlag),
					DateCreated:   strings.TrimSpace(dateFlag),
					Path:          pathFlag,
					BaseDirectory: baseFlag,
					Notes:         notesFlag,
				})
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, project)
				}

				out := cmd.OutOrStdout()
				if !created {
					fmt.Fprintf(out, "Already registered: %s (%s)\n", project.ProjectName, shortID(project.ID))
					return nil
				}
				fmt.Fprintf(out, "Registered %s for %s (%s)\n", project.ProjectName, project.ClientName, shortID(project.ID))
				fmt.Fprintf(out, "Path: %s\n", winpath.Display(project.Path))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&clientFlag, "client", "", "Client name (empty means personal)")
	cmd.Flags().StringVar(&nameFlag, "name", "", "Project name")
	cmd.Flags().StringVar(&typeFlag, "type", "", "Project type")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Creation date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&pathFlag, "path", "", "Project folder path")
	cmd.Flags().StringVar(&baseFlag, "base", "", "Base directory the folder lives under")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "Free-form notes")
	cmd.Flags().BoolVar(&personalFlag, "personal", false, "Register as a personal project")
	return cmd
}
