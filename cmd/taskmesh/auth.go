package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	client "github.com/taskmesh/taskmesh-cli"
)

func authCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage API credentials",
	}
	cmd.AddCommand(authLoginCmd(a))
	cmd.AddCommand(authStatusCmd(a))
	cmd.AddCommand(authLogoutCmd(a))
	return cmd
}

func authLoginCmd(a *app) *cobra.Command {
	var key, url string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if key == "" {
				fmt.Fprint(cmd.OutOrStdout(), "API key: ")
				scanner := bufio.NewScanner(os.Stdin)
				if scanner.Scan() {
					key = strings.TrimSpace(scanner.Text())
				}
			}
			if key == "" {
				return fmt.Errorf("no API key provided")
			}

			if err := a.store.Set(client.KeyAPIKey, key); err != nil {
				return err
			}
			if url != "" {
				if err := a.store.Set(client.KeyAPIURL, url); err != nil {
					return err
				}
			}

			// Verify the key before declaring success.
			c, err := a.client()
			if err != nil {
				return err
			}
			if err := c.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("key stored but verification failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged in.")
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "API key (prompted when omitted)")
	cmd.Flags().StringVar(&url, "url", "", "API base URL override")
	return cmd
}

func authStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the stored credentials against the API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			user, err := c.Me(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Authenticated as %s (%s)\n", user.Email, user.ID)
			if tenant := a.store.Get(client.KeyTenant); tenant != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Active tenant: %s\n", tenant)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "No active tenant. Run 'taskmesh tenant use <id>'.")
			}
			return nil
		},
	}
}

func authLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.store.Unset(client.KeyAPIKey); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}
