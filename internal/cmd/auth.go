package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fulmenhq/gofulmen/ascii"
	"github.com/spf13/cobra"

	"github.com/paceline/paceline/internal/core/protocol"
)

var (
	authRedirectURI string
	authScopes      []string
	authState       string
	authCode        string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage OAuth authorization and tokens",
}

var authURLCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the authorization URL to visit in a browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if strings.TrimSpace(cfg.OAuth.ClientID) == "" {
			return fmt.Errorf("oauth.client_id is not configured")
		}

		client := protocol.NewClient()
		fmt.Println(client.AuthorizationURL(cfg.OAuth.ClientID, authRedirectURI, authScopes, authState))
		return nil
	},
}

var authExchangeCmd = &cobra.Command{
	Use:   "exchange",
	Short: "Exchange an authorization code for tokens",
	Long: `Exchange the temporary code from the authorization redirect for an
access token, refresh token, and expiry. The resulting tokens are cached in
the local store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(authCode) == "" {
			return fmt.Errorf("--code is required")
		}

		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		cred, err := s.engine.Protocol.ExchangeCode(cmd.Context(), s.cfg.OAuth.ClientID, s.cfg.OAuth.ClientSecret, authCode)
		if err != nil {
			return err
		}

		if err := s.store.SaveCredential(cmd.Context(), s.cfg.OAuth.ClientID, cred); err != nil {
			return err
		}

		fmt.Print(ascii.DrawBox(strings.Join([]string{
			"Authorization complete",
			"",
			fmt.Sprintf("Access token expires %s", time.Unix(cred.ExpiresAt, 0).UTC().Format(time.RFC3339)),
		}, "\n"), 0))
		return nil
	},
}

var authRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force a token refresh",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.engine.Protocol.Tokens.Refresh(cmd.Context()); err != nil {
			return err
		}

		cred := s.engine.Protocol.Tokens.Credential()
		fmt.Printf("Token refreshed; expires %s\n", time.Unix(cred.ExpiresAt, 0).UTC().Format(time.RFC3339))
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the cached token state",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		cred := s.engine.Protocol.Tokens.Credential()

		lines := []string{"Token Status", ""}
		switch {
		case cred.AccessToken == "":
			lines = append(lines, "No access token cached. Run `paceline auth url` to authorize.")
		case cred.ExpiresAt == 0:
			lines = append(lines, "Access token cached (expiry unknown)")
		case cred.Expired(time.Now()):
			lines = append(lines, fmt.Sprintf("Access token expired %s", time.Unix(cred.ExpiresAt, 0).UTC().Format(time.RFC3339)))
		default:
			lines = append(lines, fmt.Sprintf("Access token valid until %s", time.Unix(cred.ExpiresAt, 0).UTC().Format(time.RFC3339)))
		}
		if cred.RefreshToken != "" {
			lines = append(lines, "Refresh token cached")
		}

		fmt.Print(ascii.DrawBox(strings.Join(lines, "\n"), 0))
		return nil
	},
}

func init() {
	authURLCmd.Flags().StringVar(&authRedirectURI, "redirect-uri", "http://localhost/exchange_token", "OAuth redirect URI")
	authURLCmd.Flags().StringSliceVar(&authScopes, "scope", nil, "requested scopes (default read,activity:read)")
	authURLCmd.Flags().StringVar(&authState, "state", "", "opaque state echoed back on redirect")

	authExchangeCmd.Flags().StringVar(&authCode, "code", "", "authorization code from the redirect")

	authCmd.AddCommand(authURLCmd)
	authCmd.AddCommand(authExchangeCmd)
	authCmd.AddCommand(authRefreshCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
