package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  "Print the merged configuration from defaults, config file, and environment. Secrets are redacted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		view := map[string]any{
			"api": map[string]any{
				"base_url": cfg.API.BaseURL,
				"per_page": cfg.API.PerPage,
			},
			"oauth": map[string]any{
				"client_id":     cfg.OAuth.ClientID,
				"client_secret": redact(cfg.OAuth.ClientSecret),
				"access_token":  redact(cfg.OAuth.AccessToken),
				"refresh_token": redact(cfg.OAuth.RefreshToken),
				"token_expires": cfg.OAuth.TokenExpires,
			},
			"throttle": map[string]any{
				"priority": cfg.Throttle.Priority,
			},
			"store": map[string]any{
				"driver":     cfg.Store.Driver,
				"path":       cfg.Store.Path,
				"url":        cfg.Store.URL,
				"auth_token": redact(cfg.Store.AuthToken),
			},
			"logging": map[string]any{
				"level": cfg.Logging.Level,
			},
			"server": map[string]any{
				"host": cfg.Server.Host,
				"port": cfg.Server.Port,
			},
		}

		encoded, err := yaml.Marshal(view)
		if err != nil {
			return err
		}
		fmt.Print(string(encoded))
		return nil
	},
}

func redact(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return "<redacted>"
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
