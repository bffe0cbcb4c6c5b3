package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/higexxp/issuedash/internal/github"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored GitHub token",
		Long: `Manage the GitHub personal access token.

The token is stored under the user config directory with owner-only
permissions and used when GITHUB_TOKEN and the config file leave the
token unset.`,
	}

	cmd.AddCommand(
		newAuthLoginCmd(),
		newAuthLogoutCmd(),
		newAuthStatusCmd(),
	)
	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var tokenFlag string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a GitHub personal access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token := tokenFlag
			if token == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Paste your GitHub token: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				line, err := reader.ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read token: %w", err)
				}
				token = strings.TrimSpace(line)
			}

			store, err := tokenStore()
			if err != nil {
				return err
			}
			if err := store.Save(token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token saved.")
			return nil
		},
	}

	cmd.Flags().StringVar(&tokenFlag, "token", "", "Token value (prompted for when omitted)")
	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Delete the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := tokenStore()
			if err != nil {
				return err
			}
			if err := store.Delete(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token deleted.")
			return nil
		},
	}
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a token is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := tokenStore()
			if err != nil {
				return err
			}
			exists, err := store.Exists()
			if err != nil {
				return err
			}
			if exists {
				fmt.Fprintln(cmd.OutOrStdout(), "Authenticated: token on disk.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Not authenticated. Run 'issuedash auth login'.")
			}
			return nil
		},
	}
}

func tokenStore() (*github.TokenStore, error) {
	path, err := github.DefaultTokenPath()
	if err != nil {
		return nil, err
	}
	return github.NewTokenStore(path), nil
}
