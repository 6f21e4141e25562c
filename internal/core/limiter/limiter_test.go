package limiter

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/paceline/paceline/internal/core"
)

func rateHeaders(usage, limit string) http.Header {
	h := http.Header{}
	h.Set(HeaderUsage, usage)
	h.Set(HeaderLimit, limit)
	return h
}

func TestRatesFromHeaders(t *testing.T) {
	rate, ok := RatesFromHeaders(rateHeaders("4,67", "600,30000"), false)
	require.True(t, ok)
	require.Equal(t, core.RequestRate{ShortUsage: 4, LongUsage: 67, ShortLimit: 600, LongLimit: 30000}, rate)
}

func TestRatesFromHeadersReadFamilyPrecedence(t *testing.T) {
	h := rateHeaders("10,100", "600,30000")
	h.Set(HeaderReadUsage, "2,20")
	h.Set(HeaderReadLimit, "300,15000")

	rate, ok := RatesFromHeaders(h, true)
	require.True(t, ok)
	require.Equal(t, core.RequestRate{ShortUsage: 2, LongUsage: 20, ShortLimit: 300, LongLimit: 15000}, rate)

	// Non-read calls always use the combined family.
	rate, ok = RatesFromHeaders(h, false)
	require.True(t, ok)
	require.Equal(t, core.RequestRate{ShortUsage: 10, LongUsage: 100, ShortLimit: 600, LongLimit: 30000}, rate)
}

func TestRatesFromHeadersReadFallback(t *testing.T) {
	// Read-only call with no read family falls back to the combined family.
	rate, ok := RatesFromHeaders(rateHeaders("4,67", "600,30000"), true)
	require.True(t, ok)
	require.Equal(t, 4, rate.ShortUsage)
}

func TestRatesFromHeadersMalformed(t *testing.T) {
	cases := []struct {
		name  string
		usage string
		limit string
	}{
		{"empty", "", ""},
		{"single value", "4", "600"},
		{"non numeric", "a,b", "600,30000"},
		{"negative", "-1,5", "600,30000"},
		{"missing limit", "4,67", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := RatesFromHeaders(rateHeaders(tc.usage, tc.limit), false)
			require.False(t, ok)
		})
	}
}

func TestObserveNoHeadersReturnsZero(t *testing.T) {
	throttle := New(PriorityLow)
	require.Equal(t, time.Duration(0), throttle.Observe(http.Header{}, false))

	_, seen := throttle.Rate()
	require.False(t, seen)
}

func TestObserveUpdatesWindowState(t *testing.T) {
	throttle := New(PriorityHigh)
	throttle.Clock = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	throttle.Observe(rateHeaders("4,67", "600,30000"), false)
	rate, seen := throttle.Rate()
	require.True(t, seen)
	require.Equal(t, core.RequestRate{ShortUsage: 4, LongUsage: 67, ShortLimit: 600, LongLimit: 30000}, rate)

	// State is replaced, not accumulated.
	throttle.Observe(rateHeaders("2,70", "600,30000"), false)
	rate, _ = throttle.Rate()
	require.Equal(t, 2, rate.ShortUsage)
	require.Equal(t, 70, rate.LongUsage)
}

func TestWaitHighPriorityUnderLimits(t *testing.T) {
	throttle := New(PriorityHigh)
	rate := core.RequestRate{ShortUsage: 599, LongUsage: 29999, ShortLimit: 600, LongLimit: 30000}
	require.Equal(t, time.Duration(0), throttle.waitFor(rate, 10*time.Minute, 5*time.Hour))
}

func TestWaitLongLimitExceeded(t *testing.T) {
	throttle := New(PriorityHigh)
	rate := core.RequestRate{ShortUsage: 10, LongUsage: 30000, ShortLimit: 600, LongLimit: 30000}
	require.Equal(t, 5*time.Hour, throttle.waitFor(rate, 10*time.Minute, 5*time.Hour))
}

func TestWaitShortLimitExceeded(t *testing.T) {
	throttle := New(PriorityMedium)
	rate := core.RequestRate{ShortUsage: 600, LongUsage: 100, ShortLimit: 600, LongLimit: 30000}
	require.Equal(t, 10*time.Minute, throttle.waitFor(rate, 10*time.Minute, 5*time.Hour))
}

func TestWaitMediumSpreadsShortHeadroom(t *testing.T) {
	throttle := New(PriorityMedium)
	rate := core.RequestRate{ShortUsage: 595, LongUsage: 20000, ShortLimit: 600, LongLimit: 30000}
	// 600s remaining / 5 requests of headroom.
	require.Equal(t, 120*time.Second, throttle.waitFor(rate, 600*time.Second, 300*time.Second))
}

func TestWaitLowTakesTighterWindow(t *testing.T) {
	throttle := New(PriorityLow)
	rate := core.RequestRate{ShortUsage: 595, LongUsage: 20000, ShortLimit: 600, LongLimit: 30000}
	// max(600/5, 300/10000) = 120s; the short window forces the longer pause.
	require.Equal(t, 120*time.Second, throttle.waitFor(rate, 600*time.Second, 300*time.Second))
}

func TestWaitLowNeverBelowMedium(t *testing.T) {
	rates := []core.RequestRate{
		{ShortUsage: 10, LongUsage: 29000, ShortLimit: 600, LongLimit: 30000},
		{ShortUsage: 500, LongUsage: 1000, ShortLimit: 600, LongLimit: 30000},
		{ShortUsage: 300, LongUsage: 15000, ShortLimit: 600, LongLimit: 30000},
	}

	low := New(PriorityLow)
	medium := New(PriorityMedium)
	for _, rate := range rates {
		lowWait := low.waitFor(rate, 600*time.Second, 8*time.Hour)
		mediumWait := medium.waitFor(rate, 600*time.Second, 8*time.Hour)
		require.GreaterOrEqual(t, lowWait, mediumWait, "rate %+v", rate)
	}
}

func TestUntilNextQuarter(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 7, 30, 0, time.UTC)
	require.Equal(t, 450*time.Second, untilNextQuarter(now))

	// On the boundary the full window remains.
	boundary := time.Date(2026, 3, 1, 10, 15, 0, 0, time.UTC)
	require.Equal(t, 15*time.Minute, untilNextQuarter(boundary))
}

func TestUntilNextDay(t *testing.T) {
	now := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	require.Equal(t, time.Hour, untilNextDay(now))
}

func TestParsePriority(t *testing.T) {
	priority, err := ParsePriority("Low")
	require.NoError(t, err)
	require.Equal(t, PriorityLow, priority)

	// Empty defaults to high, matching the constructor default upstream.
	priority, err = ParsePriority("")
	require.NoError(t, err)
	require.Equal(t, PriorityHigh, priority)

	_, err = ParsePriority("urgent")
	require.Error(t, err)
}
