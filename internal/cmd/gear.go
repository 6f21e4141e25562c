package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paceline/paceline/internal/output"
)

var gearCmd = &cobra.Command{
	Use:   "gear <id>",
	Short: "Show a bike or pair of shoes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			return err
		}

		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		gear, err := s.engine.Gear(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		rendered, err := output.Render(format, output.GearDocument(gear))
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gearCmd)
}
