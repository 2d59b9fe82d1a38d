package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"fastrak/internal/projects"
	"fastrak/internal/scaffold"
	"fastrak/internal/winpath"
)

func newCreateCommand(ctx *commandContext) *cobra.Command {
	var typeFlag string
	var clientFlag string
	var nameFlag string
	var dateFlag string
	var baseFlag string
	var notesFlag string
	var personalFlag bool
	var shotsFlag bool
	var softwareFlag []string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Scaffold a project folder structure and register it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(nameFlag) == "" {
				return errors.New("--name is required")
			}
			software, err := parseKeyValues(softwareFlag)
			if err != nil {
				return fmt.Errorf("--software: %w", err)
			}

			req := scaffold.Request{
				Type:         strings.TrimSpace(typeFlag),
				ClientName:   clientFlag,
				ProjectName:  nameFlag,
				Date:         dateFlag,
				BaseDir:      baseFlag,
				Personal:     personalFlag,
				Notes:        notesFlag,
				IncludeShots: shotsFlag,
				Software:     software,
			}

			if dryRun {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				return printScaffoldPlan(cmd, req, cfg.Storage.TemplateDir)
			}

			return ctx.withStore(cmd, func(store *projects.Store) error {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				logger, err := ctx.ensureLogger()
				if err != nil {
					return err
				}

				creator := scaffold.NewCreator(cfg, store, logger)
				result, err := creator.Create(cmd.Context(), req)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, result.Project)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Created %s (%s)\n", winpath.Display(result.Path), shortID(result.Project.ID))
				fmt.Fprintf(out, "Folders: %d\n", len(result.Created))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", "", "Project type (GD, VFX, VJ, Godot, TD, Audio, Physical, Photo, Web)")
	cmd.Flags().StringVar(&clientFlag, "client", "", "Client name (empty means personal)")
	cmd.Flags().StringVar(&nameFlag, "name", "", "Project name")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Project date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&baseFlag, "base", "", "Parent directory override")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "Notes written into the specifications file")
	cmd.Flags().BoolVar(&personalFlag, "personal", false, "Create under the personal subfolder")
	cmd.Flags().BoolVar(&shotsFlag, "shots", false, "Include the shot folders")
	cmd.Flags().StringSliceVar(&softwareFlag, "software", nil, "Software version override as name=version (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the folder tree without creating anything")
	return cmd
}

// printScaffoldPlan renders the folders a create run would produce.
func printScaffoldPlan(cmd *cobra.Command, req scaffold.Request, templateDir string) error {
	text, err := scaffold.Template(req.Type, templateDir)
	if err != nil {
		return err
	}

	client := strings.TrimSpace(req.ClientName)
	personal := req.Personal
	if client == "" || strings.EqualFold(client, projects.PersonalClientName) {
		client = projects.PersonalClientName
		personal = true
	}
	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	folder := scaffold.FolderName(req.Type, date, client, strings.TrimSpace(req.ProjectName), personal)
	nodes := scaffold.ParseTree(text)
	planned := scaffold.PlanTree(nodes,
		map[string]string{"YYY-MM-DD": date},
		map[string]bool{"shots": req.IncludeShots})

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, folder)
	for _, rel := range planned {
		depth := strings.Count(rel, "/")
		fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", depth+1), rel[strings.LastIndex(rel, "/")+1:])
	}
	return nil
}
