package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/paceline/paceline/internal/output"
)

var clubMembersLimit int

var clubsCmd = &cobra.Command{
	Use:   "clubs",
	Short: "List the athlete's clubs",
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

		clubs, err := s.engine.Clubs(cmd.Context())
		if err != nil {
			return err
		}

		rendered, err := output.Render(format, output.ClubsDocument(clubs))
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

var clubMembersCmd = &cobra.Command{
	Use:   "members <club-id>",
	Short: "List a club's members",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			return err
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid club id: %s", args[0])
		}

		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		cursor := s.engine.ClubMembers(id)
		cursor.Limit = clubMembersLimit

		members, err := cursor.All(cmd.Context())
		if err != nil {
			return err
		}

		rendered, err := output.Render(format, output.ClubMembersDocument(members))
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

func init() {
	clubMembersCmd.Flags().IntVar(&clubMembersLimit, "limit", 0, "maximum number of members (0 = all)")

	clubsCmd.AddCommand(clubMembersCmd)
	rootCmd.AddCommand(clubsCmd)
}
