package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	client "github.com/taskmesh/taskmesh-cli"
)

func tenantCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "List and switch tenants",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tenants you belong to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			tenants, err := c.ListTenants(cmd.Context())
			if err != nil {
				return err
			}

			active := a.store.Get(client.KeyTenant)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPLAN\t")
			for _, t := range tenants {
				marker := ""
				if t.ID == active {
					marker = " *"
				}
				fmt.Fprintf(w, "%s%s\t%s\t%s\t\n", t.ID, marker, t.Name, t.Plan)
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "use <id>",
		Short: "Set the active tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			// Reject IDs the server does not know before persisting.
			tenant, err := c.GetTenant(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if err := a.store.Set(client.KeyTenant, tenant.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active tenant: %s (%s)\n", tenant.Name, tenant.ID)
			return nil
		},
	})

	return cmd
}
