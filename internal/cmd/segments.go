package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fulmenhq/gofulmen/ascii"
	"github.com/spf13/cobra"

	"github.com/paceline/paceline/internal/output"
)

var segmentEffortsLimit int

var segmentsCmd = &cobra.Command{
	Use:   "segments",
	Short: "Inspect segments and efforts",
}

var segmentsStarredCmd = &cobra.Command{
	Use:   "starred",
	Short: "List the athlete's starred segments",
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

		segments, err := s.engine.StarredSegments().All(cmd.Context())
		if err != nil {
			return err
		}

		rendered, err := output.Render(format, output.SegmentsDocument(segments))
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

var segmentsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single segment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid segment id: %s", args[0])
		}

		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		segment, err := s.engine.Segment(cmd.Context(), id)
		if err != nil {
			return err
		}

		lines := []string{
			segment.Name,
			"",
			fmt.Sprintf("Type: %s", segment.ActivityType),
			fmt.Sprintf("Distance: %.1f km", segment.Distance/1000),
			fmt.Sprintf("Average grade: %.1f%%", segment.AverageGrade),
			fmt.Sprintf("Elevation: %.0f m to %.0f m", segment.ElevationLow, segment.ElevationHigh),
			fmt.Sprintf("Efforts: %d by %d athletes", segment.EffortCount, segment.AthleteCount),
		}

		fmt.Print(ascii.DrawBox(strings.Join(lines, "\n"), 0))
		return nil
	},
}

var segmentsEffortsCmd = &cobra.Command{
	Use:   "efforts <segment-id>",
	Short: "List the athlete's efforts on a segment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			return err
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid segment id: %s", args[0])
		}

		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		cursor := s.engine.SegmentEfforts(id)
		cursor.Limit = segmentEffortsLimit

		efforts, err := cursor.All(cmd.Context())
		if err != nil {
			return err
		}

		rendered, err := output.Render(format, output.EffortsDocument(efforts))
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

func init() {
	segmentsEffortsCmd.Flags().IntVar(&segmentEffortsLimit, "limit", 0, "maximum number of efforts (0 = all)")

	segmentsCmd.AddCommand(segmentsStarredCmd)
	segmentsCmd.AddCommand(segmentsShowCmd)
	segmentsCmd.AddCommand(segmentsEffortsCmd)
	rootCmd.AddCommand(segmentsCmd)
}
