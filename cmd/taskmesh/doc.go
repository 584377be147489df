package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	client "github.com/taskmesh/taskmesh-cli"
)

func docCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Browse the tenant knowledge base",
	}

	var filter client.DocFilter
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List knowledge documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			docs, err := c.ListDocs(cmd.Context(), filter)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tTAGS\t")
			for _, d := range docs {
				fmt.Fprintf(w, "%s\t%s\t%s\t\n", d.ID, d.Title, strings.Join(d.Tags, ","))
			}
			return w.Flush()
		},
	}
	listCmd.Flags().StringVar(&filter.Tag, "tag", "", "filter by tag")
	listCmd.Flags().StringVar(&filter.Query, "query", "", "full-text search")
	listCmd.Flags().IntVar(&filter.Limit, "limit", 0, "maximum number of documents")
	cmd.AddCommand(listCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Print a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			doc, err := c.GetDoc(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n\n%s\n", doc.Title, doc.Content)
			return nil
		},
	})

	return cmd
}
