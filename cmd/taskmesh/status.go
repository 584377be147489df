package main

import (
	"fmt"

	"github.com/spf13/cobra"
	client "github.com/taskmesh/taskmesh-cli"
	"golang.org/x/sync/errgroup"
)

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			user, err := c.Me(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", user.Email, user.ID)
			return nil
		},
	}
}

// statusCmd fans out independent calls concurrently; the client holds no
// shared per-call state, so this needs no coordination beyond the errgroup.
func statusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize the active tenant: open tasks, projects, members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			var (
				user     client.User
				tasks    []client.Task
				projects []client.Project
				members  []client.Member
			)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				var err error
				user, err = c.Me(ctx)
				return err
			})
			g.Go(func() error {
				var err error
				tasks, err = c.ListTasks(ctx, client.TaskFilter{Status: "active"})
				return err
			})
			g.Go(func() error {
				var err error
				projects, err = c.ListProjects(ctx, false)
				return err
			})
			g.Go(func() error {
				var err error
				members, err = c.ListMembers(ctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "User:     %s\n", user.Email)
			fmt.Fprintf(out, "Tenant:   %s\n", a.store.Get(client.KeyTenant))
			fmt.Fprintf(out, "Projects: %d\n", len(projects))
			fmt.Fprintf(out, "Members:  %d\n", len(members))
			fmt.Fprintf(out, "Open tasks:\n")
			for _, t := range tasks {
				fmt.Fprintf(out, "  [%s] %s\n", t.ID, t.Title)
			}
			return nil
		},
	}
}
