package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fulmenhq/gofulmen/ascii"
	"github.com/spf13/cobra"

	"github.com/paceline/paceline/internal/core/engine"
	"github.com/paceline/paceline/internal/output"
)

var (
	activitiesBefore string
	activitiesAfter  string
	activitiesLimit  int
)

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "List the athlete's activities",
	Long: `List the authenticated athlete's activities, newest first. Pages are
fetched lazily as needed; use --limit to cap the total.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			return err
		}

		opts := engine.ActivityListOptions{Limit: activitiesLimit}
		if opts.Before, err = parseTimeFlag(activitiesBefore); err != nil {
			return fmt.Errorf("invalid --before: %w", err)
		}
		if opts.After, err = parseTimeFlag(activitiesAfter); err != nil {
			return fmt.Errorf("invalid --after: %w", err)
		}

		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		activities, err := s.engine.Activities(opts).All(cmd.Context())
		if err != nil {
			return err
		}

		rendered, err := output.Render(format, output.ActivitiesDocument(activities))
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

var activityCmd = &cobra.Command{
	Use:   "activity <id>",
	Short: "Show a single activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid activity id: %s", args[0])
		}

		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		activity, err := s.engine.Activity(cmd.Context(), id)
		if err != nil {
			return err
		}

		lines := []string{
			activity.Name,
			"",
			fmt.Sprintf("Sport: %s", activity.SportType),
			fmt.Sprintf("Start: %s", activity.StartDateLocal.Format("2006-01-02 15:04")),
			fmt.Sprintf("Distance: %.1f km", activity.Distance/1000),
			fmt.Sprintf("Moving time: %s", (time.Duration(activity.MovingTime) * time.Second).String()),
			fmt.Sprintf("Elevation gain: %.0f m", activity.TotalElevationGain),
		}
		if activity.Description != "" {
			lines = append(lines, "", activity.Description)
		}

		fmt.Print(ascii.DrawBox(strings.Join(lines, "\n"), 0))
		return nil
	},
}

// parseTimeFlag accepts a date or an RFC3339 timestamp.
func parseTimeFlag(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}

	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, value)
}

func init() {
	activitiesCmd.Flags().StringVar(&activitiesBefore, "before", "", "only activities started before this date (YYYY-MM-DD or RFC3339)")
	activitiesCmd.Flags().StringVar(&activitiesAfter, "after", "", "only activities started after this date (YYYY-MM-DD or RFC3339)")
	activitiesCmd.Flags().IntVar(&activitiesLimit, "limit", 0, "maximum number of activities (0 = all)")

	rootCmd.AddCommand(activitiesCmd)
	rootCmd.AddCommand(activityCmd)
}
