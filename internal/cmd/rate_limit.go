package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/paceline/paceline/internal/output"
)

var rateLimitCmd = &cobra.Command{
	Use:   "rate-limit",
	Short: "Manage persisted rate limit usage",
}

var rateLimitShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the last observed rate limit usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close() // nolint:errcheck // best-effort cleanup

		entry, err := db.LatestUsage(cmd.Context())
		if err != nil {
			return err
		}

		rendered, err := output.Render(format, output.UsageDocument(entry))
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

var rateLimitResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear stored rate limit usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close() // nolint:errcheck // best-effort cleanup

		removed, err := db.PruneUsage(cmd.Context(), time.Now().Add(time.Second))
		if err != nil {
			return err
		}

		fmt.Printf("Removed %d usage snapshots\n", removed)
		return nil
	},
}

func init() {
	rateLimitCmd.AddCommand(rateLimitShowCmd)
	rateLimitCmd.AddCommand(rateLimitResetCmd)
	rootCmd.AddCommand(rateLimitCmd)
}
