package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	client "github.com/taskmesh/taskmesh-cli"
)

func projectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects in the active tenant",
	}

	var includeArchived bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			projects, err := c.ListProjects(cmd.Context(), includeArchived)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tARCHIVED\t")
			for _, p := range projects {
				fmt.Fprintf(w, "%s\t%s\t%t\t\n", p.ID, p.Name, p.Archived)
			}
			return w.Flush()
		},
	}
	listCmd.Flags().BoolVar(&includeArchived, "archived", false, "include archived projects")
	cmd.AddCommand(listCmd)

	var description string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			project, err := c.CreateProject(cmd.Context(), client.CreateProjectRequest{
				Name:        args[0],
				Description: description,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s\n", project.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&description, "description", "", "project description")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			project, err := c.ArchiveProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Archived: %s\n", project.Name)
			return nil
		},
	})

	return cmd
}
