package limiter

import "time"

// untilNextQuarter returns the time remaining until the next quarter-hour
// boundary, which is when the short-term usage window resets.
func untilNextQuarter(now time.Time) time.Duration {
	now = now.UTC()
	start := now.Truncate(15 * time.Minute)
	return start.Add(15 * time.Minute).Sub(now)
}

// untilNextDay returns the time remaining until UTC midnight, which is when
// the daily usage window resets.
func untilNextDay(now time.Time) time.Duration {
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return midnight.Sub(now)
}
