package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"fastrak/internal/projects"
	"fastrak/internal/winpath"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var statusFlag string
	var typeFlag string
	var clientFlag string
	var sortFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, ok := projects.ParseStatus(statusFlag)
			if !ok {
				return fmt.Errorf("unknown status %q (use active, archived, or all)", statusFlag)
			}

			return ctx.withStore(cmd, func(store *projects.Store) error {
				listed := store.List(status)
				listed = filterProjects(listed, typeFlag, clientFlag)
				if err := sortProjects(listed, sortFlag); err != nil {
					return err
				}

				if ctx.jsonOutput() {
					return writeJSON(cmd, listed)
				}
				if len(listed) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No projects found")
					return nil
				}

				rows := make([][]string, 0, len(listed))
				for _, project := range listed {
					rows = append(rows, []string{
						shortID(project.ID),
						project.ClientName,
						project.ProjectName,
						project.ProjectType,
						project.DateCreated,
						string(project.Status),
						winpath.Display(project.Path),
					})
				}
				table := renderTable(cmd.OutOrStdout(),
					[]string{"ID", "Client", "Project", "Type", "Date", "Status", "Path"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&statusFlag, "status", "s", "active", "Filter by status (active, archived, all)")
	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", "Filter by project type")
	cmd.Flags().StringVar(&clientFlag, "client", "", "Filter by client name")
	cmd.Flags().StringVar(&sortFlag, "sort", "date", "Sort order (date, client, name)")
	return cmd
}

func filterProjects(listed []*projects.Project, typeFilter, clientFilter string) []*projects.Project {
	typeFilter = strings.TrimSpace(typeFilter)
	clientFilter = strings.TrimSpace(clientFilter)
	if typeFilter == "" && clientFilter == "" {
		return listed
	}

	filtered := listed[:0]
	for _, project := range listed {
		if typeFilter != "" && !strings.EqualFold(project.ProjectType, typeFilter) {
			continue
		}
		if clientFilter != "" && !strings.EqualFold(project.ClientName, clientFilter) {
			continue
		}
		filtered = append(filtered, project)
	}
	return filtered
}

// sortProjects reorders in place. "date" keeps the store's newest-first order.
func sortProjects(listed []*projects.Project, order string) error {
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "date", "":
	case "client":
		sort.SliceStable(listed, func(i, j int) bool {
			return strings.ToLower(listed[i].ClientName) < strings.ToLower(listed[j].ClientName)
		})
	case "name":
		sort.SliceStable(listed, func(i, j int) bool {
			return strings.ToLower(listed[i].ProjectName) < strings.ToLower(listed[j].ProjectName)
		})
	default:
		return fmt.Errorf("unknown sort order %q (use date, client, or name)", order)
	}
	return nil
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|path>",
		Short: "Show one project in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(store *projects.Store) error {
				project, err := resolveProject(store, args[0])
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, project)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:       %s\n", project.ID)
				fmt.Fprintf(out, "Client:   %s\n", project.ClientName)
				fmt.Fprintf(out, "Project:  %s\n", project.ProjectName)
				fmt.Fprintf(out, "Type:     %s\n", project.ProjectType)
				fmt.Fprintf(out, "Date:     %s\n", project.DateCreated)
				fmt.Fprintf(out, "Status:   %s\n", project.Status)
				fmt.Fprintf(out, "Path:     %s\n", winpath.Display(project.Path))
				if project.ArchivedDate != nil {
					fmt.Fprintf(out, "Archived: %s\n", formatTimestamp(*project.ArchivedDate))
				}
				if project.ArchivedFrom != "" {
					fmt.Fprintf(out, "From:     %s\n", winpath.Display(project.ArchivedFrom))
				}
				if notes := strings.TrimSpace(project.Notes); notes != "" {
					fmt.Fprintf(out, "Notes:    %s\n", notes)
				}
				return nil
			})
		},
	}
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search projects by client, name, type, notes, or path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(store *projects.Store) error {
				matched := store.Search(args[0], includeArchived)
				if ctx.jsonOutput() {
					return writeJSON(cmd, matched)
				}
				if len(matched) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No projects match")
					return nil
				}

				rows := make([][]string, 0, len(matched))
				for _, project := range matched {
					rows = append(rows, []string{
						shortID(project.ID),
						project.ClientName,
						project.ProjectName,
						project.ProjectType,
						string(project.Status),
						winpath.Display(project.Path),
					})
				}
				table := renderTable(cmd.OutOrStdout(),
					[]string{"ID", "Client", "Project", "Type", "Status", "Path"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&includeArchived, "archived", false, "Include archived projects")
	return cmd
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "history [id|path]",
		Short: "Show archive and restore history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(store *projects.Store) error {
				var projectID string
				if len(args) == 1 {
					project, err := resolveProject(store, args[0])
					if err != nil {
						return err
					}
					projectID = project.ID
				}

				entries := store.History(projectID)
				if ctx.jsonOutput() {
					return writeJSON(cmd, entries)
				}
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No history recorded")
					return nil
				}

				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						formatTimestamp(entry.Timestamp),
						entry.Action,
						shortID(entry.ProjectID),
						winpath.Display(entry.FromPath),
						winpath.Display(entry.ToPath),
					})
				}
				table := renderTable(cmd.OutOrStdout(),
					[]string{"When", "Action", "Project", "From", "To"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}
}

func newClientsCommand(ctx *commandContext) *cobra.Command {
	var excludePersonal bool

	cmd := &cobra.Command{
		Use:   "clients",
		Short: "List registered clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(store *projects.Store) error {
				clients := store.Clients(excludePersonal)
				if ctx.jsonOutput() {
					return writeJSON(cmd, clients)
				}
				if len(clients) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No clients registered")
					return nil
				}

				rows := make([][]string, 0, len(clients))
				for _, client := range clients {
					rows = append(rows, []string{
						client.Name,
						fmt.Sprintf("%d", client.ProjectCount),
						client.FirstSeen.Local().Format("2006-01-02"),
					})
				}
				table := renderTable(cmd.OutOrStdout(),
					[]string{"Client", "Projects", "First seen"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&excludePersonal, "no-personal", false, "Hide the personal client")
	return cmd
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(store *projects.Store) error {
				stats := store.Stats()
				if ctx.jsonOutput() {
					return writeJSON(cmd, stats)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Projects: %d (%d active, %d archived)\n", stats.Total, stats.Active, stats.Archived)
				fmt.Fprintf(out, "Clients:  %d\n", stats.Clients)
				if len(stats.ByType) > 0 {
					types := make([]string, 0, len(stats.ByType))
					for name := range stats.ByType {
						types = append(types, name)
					}
					sort.Strings(types)
					fmt.Fprintln(out, "By type:")
					for _, name := range types {
						fmt.Fprintf(out, "  %-10s %d\n", name, stats.ByType[name])
					}
				}
				return nil
			})
		},
	}
}
