package output

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/paceline/paceline/internal/core"
	"github.com/paceline/paceline/internal/model"
)

// AthleteDocument builds a document for the authenticated athlete.
func AthleteDocument(athlete *model.DetailedAthlete) *Document {
	if athlete == nil {
		return nil
	}

	rows := [][]string{
		{"ID", strconv.FormatInt(athlete.ID, 10)},
		{"Name", strings.TrimSpace(athlete.FirstName + " " + athlete.LastName)},
		{"Location", location(athlete.City, athlete.State, athlete.Country)},
	}
	if athlete.FTP > 0 {
		rows = append(rows, []string{"FTP", fmt.Sprintf("%d W", athlete.FTP)})
	}
	if athlete.Weight > 0 {
		rows = append(rows, []string{"Weight", fmt.Sprintf("%.1f kg", athlete.Weight)})
	}
	if athlete.FollowerCount > 0 {
		rows = append(rows, []string{"Followers", strconv.Itoa(athlete.FollowerCount)})
	}
	for _, bike := range athlete.Bikes {
		rows = append(rows, []string{"Bike", fmt.Sprintf("%s (%s)", bike.Name, km(bike.Distance))})
	}
	for _, shoe := range athlete.Shoes {
		rows = append(rows, []string{"Shoes", fmt.Sprintf("%s (%s)", shoe.Name, km(shoe.Distance))})
	}

	return &Document{
		Title:  "Athlete",
		Header: []string{"Field", "Value"},
		Rows:   rows,
		Raw:    athlete,
	}
}

// ActivitiesDocument builds a document for a list of activities.
func ActivitiesDocument(activities []model.SummaryActivity) *Document {
	rows := make([][]string, 0, len(activities))
	var totalDistance float64
	for _, a := range activities {
		rows = append(rows, []string{
			strconv.FormatInt(a.ID, 10),
			a.StartDateLocal.Format("2006-01-02 15:04"),
			a.Name,
			a.SportType,
			km(a.Distance),
			hms(a.MovingTime),
		})
		totalDistance += a.Distance
	}

	return &Document{
		Title:  "Activities",
		Header: []string{"ID", "Start", "Name", "Sport", "Distance", "Moving"},
		Rows:   rows,
		Footer: []string{"", "", "", "", km(totalDistance), ""},
		Raw:    activities,
	}
}

// ClubsDocument builds a document for the athlete's clubs.
func ClubsDocument(clubs []model.SummaryClub) *Document {
	rows := make([][]string, 0, len(clubs))
	for _, c := range clubs {
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.SportType,
			location(c.City, c.State, c.Country),
			strconv.Itoa(c.MemberCount),
		})
	}

	return &Document{
		Title:  "Clubs",
		Header: []string{"ID", "Name", "Sport", "Location", "Members"},
		Rows:   rows,
		Raw:    clubs,
	}
}

// ClubMembersDocument builds a document for a club member list.
func ClubMembersDocument(members []model.ClubAthlete) *Document {
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		role := m.Membership
		if m.Owner {
			role = "owner"
		} else if m.Admin {
			role = "admin"
		}
		rows = append(rows, []string{
			strings.TrimSpace(m.FirstName + " " + m.LastName),
			role,
		})
	}

	return &Document{
		Title:  "Members",
		Header: []string{"Name", "Role"},
		Rows:   rows,
		Raw:    members,
	}
}

// SegmentsDocument builds a document for a list of segments.
func SegmentsDocument(segments []model.SummarySegment) *Document {
	rows := make([][]string, 0, len(segments))
	for _, s := range segments {
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			s.Name,
			s.ActivityType,
			km(s.Distance),
			fmt.Sprintf("%.1f%%", s.AverageGrade),
			location(s.City, s.State, s.Country),
		})
	}

	return &Document{
		Title:  "Segments",
		Header: []string{"ID", "Name", "Type", "Distance", "Avg Grade", "Location"},
		Rows:   rows,
		Raw:    segments,
	}
}

// EffortsDocument builds a document for segment efforts.
func EffortsDocument(efforts []model.SegmentEffort) *Document {
	rows := make([][]string, 0, len(efforts))
	for _, e := range efforts {
		pr := ""
		if e.PRRank > 0 {
			pr = strconv.Itoa(e.PRRank)
		}
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.StartDateLocal.Format("2006-01-02"),
			hms(e.ElapsedTime),
			hms(e.MovingTime),
			pr,
		})
	}

	return &Document{
		Title:  "Efforts",
		Header: []string{"ID", "Date", "Elapsed", "Moving", "PR"},
		Rows:   rows,
		Raw:    efforts,
	}
}

// GearDocument builds a document for a single piece of gear.
func GearDocument(gear *model.Gear) *Document {
	if gear == nil {
		return nil
	}

	rows := [][]string{
		{"ID", gear.ID},
		{"Name", gear.Name},
		{"Brand", strings.TrimSpace(gear.BrandName + " " + gear.ModelName)},
		{"Distance", km(gear.Distance)},
	}
	if gear.Retired {
		rows = append(rows, []string{"Retired", "yes"})
	}

	return &Document{
		Title:  "Gear",
		Header: []string{"Field", "Value"},
		Rows:   rows,
		Raw:    gear,
	}
}

// UsageDocument builds a document for the last observed rate limit usage.
func UsageDocument(entry *core.UsageEntry) *Document {
	if entry == nil {
		return &Document{
			Title:  "Rate Limit Usage",
			Header: []string{"Window", "Used", "Limit"},
			Raw:    map[string]string{"status": "no usage recorded"},
		}
	}

	rows := [][]string{
		{"15 minutes", strconv.Itoa(entry.Rate.ShortUsage), strconv.Itoa(entry.Rate.ShortLimit)},
		{"Daily", strconv.Itoa(entry.Rate.LongUsage), strconv.Itoa(entry.Rate.LongLimit)},
	}

	return &Document{
		Title:  "Rate Limit Usage",
		Header: []string{"Window", "Used", "Limit"},
		Rows:   rows,
		Footer: []string{"Observed", entry.ObservedAt.UTC().Format(time.RFC3339), ""},
		Raw:    entry,
	}
}

// km renders a distance in meters as kilometers.
func km(meters float64) string {
	return fmt.Sprintf("%.1f km", meters/1000)
}

// hms renders a duration in seconds as h:mm:ss.
func hms(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func location(parts ...string) string {
	present := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			present = append(present, part)
		}
	}
	return strings.Join(present, ", ")
}
