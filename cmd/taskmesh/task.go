package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	client "github.com/taskmesh/taskmesh-cli"
)

func taskCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks in the active tenant",
	}
	cmd.AddCommand(taskListCmd(a))
	cmd.AddCommand(taskAddCmd(a))
	cmd.AddCommand(taskDoneCmd(a))
	cmd.AddCommand(taskRemoveCmd(a))
	return cmd
}

func taskListCmd(a *app) *cobra.Command {
	var filter client.TaskFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			tasks, err := c.ListTasks(cmd.Context(), filter)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tASSIGNEE\tTITLE\t")
			for _, t := range tasks {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", t.ID, t.Status, t.Assignee, t.Title)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&filter.Status, "status", "", "filter by status")
	cmd.Flags().StringVar(&filter.Assignee, "assignee", "", "filter by assignee")
	cmd.Flags().StringVar(&filter.ProjectID, "project", "", "filter by project ID")
	cmd.Flags().IntVar(&filter.Limit, "limit", 0, "maximum number of tasks")
	return cmd
}

func taskAddCmd(a *app) *cobra.Command {
	var req client.CreateTaskRequest

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			req.Title = args[0]
			task, err := c.CreateTask(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", task.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.ProjectID, "project", "", "project ID")
	cmd.Flags().StringVar(&req.Description, "description", "", "task description")
	cmd.Flags().StringVar(&req.Assignee, "assignee", "", "assignee")
	return cmd
}

func taskDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			task, err := c.CompleteTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Done: %s\n", task.Title)
			return nil
		},
	}
}

func taskRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			return c.DeleteTask(cmd.Context(), args[0])
		},
	}
}
