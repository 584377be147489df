package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	client "github.com/taskmesh/taskmesh-cli"
)

func memberCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage members of the active tenant",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			members, err := c.ListMembers(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMAIL\tROLE\t")
			for _, m := range members {
				fmt.Fprintf(w, "%s\t%s\t%s\t\n", m.ID, m.Email, m.Role)
			}
			return w.Flush()
		},
	})

	var role string
	inviteCmd := &cobra.Command{
		Use:   "invite <email>",
		Short: "Invite a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			member, err := c.InviteMember(cmd.Context(), client.InviteMemberRequest{
				Email: args[0],
				Role:  role,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Invited %s as %s\n", member.Email, member.Role)
			return nil
		},
	}
	inviteCmd.Flags().StringVar(&role, "role", "", "member role")
	cmd.AddCommand(inviteCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			return c.RemoveMember(cmd.Context(), args[0])
		},
	})

	return cmd
}
