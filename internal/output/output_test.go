package output

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/paceline/paceline/internal/core"
	"github.com/paceline/paceline/internal/model"
)

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	format, err = ParseFormat("  JSON ")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, format)

	format, err = ParseFormat("markdown")
	require.NoError(t, err)
	require.Equal(t, FormatMarkdown, format)

	_, err = ParseFormat("xml")
	require.Error(t, err)
}

func sampleActivities() []model.SummaryActivity {
	return []model.SummaryActivity{
		{
			ID:             100,
			Name:           "Morning Ride",
			SportType:      "Ride",
			Distance:       42195,
			MovingTime:     5400,
			StartDateLocal: time.Date(2026, 8, 20, 7, 30, 0, 0, time.UTC),
		},
		{
			ID:             101,
			Name:           "Evening Run",
			SportType:      "Run",
			Distance:       10000,
			MovingTime:     3000,
			StartDateLocal: time.Date(2026, 8, 20, 18, 0, 0, 0, time.UTC),
		},
	}
}

func TestTableFormatter(t *testing.T) {
	doc := ActivitiesDocument(sampleActivities())

	rendered, err := Render(FormatTable, doc)
	require.NoError(t, err)
	require.Contains(t, rendered, "Morning Ride")
	require.Contains(t, rendered, "42.2 km")
	require.Contains(t, rendered, "1:30:00")
	// Footer carries the distance total.
	require.Contains(t, rendered, "52.2 km")
}

func TestMarkdownFormatter(t *testing.T) {
	doc := &Document{
		Title:  "Activities",
		Header: []string{"ID", "Name"},
		Rows:   [][]string{{"1", "Hill | Repeats"}},
	}

	rendered, err := Render(FormatMarkdown, doc)
	require.NoError(t, err)
	require.Contains(t, rendered, "## Activities")
	require.Contains(t, rendered, "| ID | Name |")
	require.Contains(t, rendered, `Hill \| Repeats`)
}

func TestJSONFormatterUsesRawValue(t *testing.T) {
	doc := ActivitiesDocument(sampleActivities())

	rendered, err := Render(FormatJSON, doc)
	require.NoError(t, err)
	require.Contains(t, rendered, `"name": "Morning Ride"`)
	require.NotContains(t, rendered, "42.2 km")
}

func TestUsageDocument(t *testing.T) {
	entry := &core.UsageEntry{
		Rate:       core.RequestRate{ShortUsage: 4, LongUsage: 67, ShortLimit: 600, LongLimit: 30000},
		ObservedAt: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
	}

	rendered, err := Render(FormatTable, UsageDocument(entry))
	require.NoError(t, err)
	require.Contains(t, rendered, "15 minutes")
	require.Contains(t, rendered, "600")
	require.Contains(t, rendered, "30000")

	// Nil entry still renders a document instead of failing.
	rendered, err = Render(FormatTable, UsageDocument(nil))
	require.NoError(t, err)
	require.Contains(t, rendered, "Rate Limit Usage")
}

func TestHMS(t *testing.T) {
	require.Equal(t, "5:00", hms(300))
	require.Equal(t, "1:00:05", hms(3605))
}
