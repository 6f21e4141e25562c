package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/paceline/paceline/internal/output"
)

var athleteCmd = &cobra.Command{
	Use:   "athlete",
	Short: "Show the authenticated athlete",
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

		athlete, err := s.engine.Athlete(cmd.Context())
		if err != nil {
			return err
		}

		rendered, err := output.Render(format, output.AthleteDocument(athlete))
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

var athleteWeightCmd = &cobra.Command{
	Use:   "update-weight <kg>",
	Short: "Update the athlete's weight",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, err := strconv.ParseFloat(args[0], 64)
		if err != nil || weight <= 0 {
			return fmt.Errorf("invalid weight: %s", args[0])
		}

		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		athlete, err := s.engine.UpdateAthleteWeight(cmd.Context(), weight)
		if err != nil {
			return err
		}

		fmt.Printf("Weight updated to %.1f kg\n", athlete.Weight)
		return nil
	},
}

func init() {
	athleteCmd.AddCommand(athleteWeightCmd)
	rootCmd.AddCommand(athleteCmd)
}
