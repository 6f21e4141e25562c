// Package limiter computes adaptive cool-down durations from the usage
// headers the API attaches to every response.
//
// Strava enforces a short (15-minute) and a long (daily) request quota per
// application. The Throttle tracks the latest authoritative usage snapshot
// and tells the request path how long to pause before the next call. It
// never sleeps itself; callers own the clock-blocking primitive so tests
// can assert on durations without waiting.
package limiter

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/paceline/paceline/internal/core"
)

// Priority selects how aggressively the throttle paces requests.
type Priority string

const (
	// PriorityHigh applies no pacing below the hard limits.
	PriorityHigh Priority = "high"

	// PriorityMedium spreads the remaining short-window headroom evenly.
	PriorityMedium Priority = "medium"

	// PriorityLow paces against whichever window forces the longer pause.
	PriorityLow Priority = "low"
)

// ParsePriority normalizes and validates a priority string.
func ParsePriority(value string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(value))) {
	case PriorityHigh, Priority(""):
		return PriorityHigh, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityLow:
		return PriorityLow, nil
	default:
		return "", fmt.Errorf("invalid priority %q, expecting one of high, medium or low", value)
	}
}

// Rate-limit header families. The read family covers GET-only quotas and
// takes precedence for read-only calls when present.
const (
	HeaderUsage     = "X-RateLimit-Usage"
	HeaderLimit     = "X-RateLimit-Limit"
	HeaderReadUsage = "X-ReadRateLimit-Usage"
	HeaderReadLimit = "X-ReadRateLimit-Limit"
)

// RatesFromHeaders extracts the dual-window usage snapshot from response
// headers. Values are comma-separated "short,long" pairs. Returns false if
// neither header family is present or parseable.
func RatesFromHeaders(headers http.Header, readOnly bool) (core.RequestRate, bool) {
	if headers == nil {
		return core.RequestRate{}, false
	}

	usageRaw := ""
	limitRaw := ""
	if readOnly && headers.Get(HeaderReadUsage) != "" {
		usageRaw = headers.Get(HeaderReadUsage)
		limitRaw = headers.Get(HeaderReadLimit)
	} else {
		usageRaw = headers.Get(HeaderUsage)
		limitRaw = headers.Get(HeaderLimit)
	}

	usage, ok := parsePair(usageRaw)
	if !ok {
		return core.RequestRate{}, false
	}
	limit, ok := parsePair(limitRaw)
	if !ok {
		return core.RequestRate{}, false
	}

	return core.RequestRate{
		ShortUsage: usage[0],
		LongUsage:  usage[1],
		ShortLimit: limit[0],
		LongLimit:  limit[1],
	}, true
}

func parsePair(raw string) ([2]int, bool) {
	parts := strings.Split(strings.TrimSpace(raw), ",")
	if len(parts) != 2 {
		return [2]int{}, false
	}

	var values [2]int
	for i, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || value < 0 {
			return [2]int{}, false
		}
		values[i] = value
	}
	return values, true
}

// Throttle derives a cool-down duration from every observed response,
// parameterized by a caller-selected priority. Usage counters are always
// replaced from the latest headers, never incremented locally; the server
// is the only authority on consumption.
//
// A Throttle holds mutable window state without internal locking. Callers
// sharing one instance across goroutines must serialize access.
type Throttle struct {
	Priority Priority
	Clock    func() time.Time
	Log      *zap.Logger

	rate core.RequestRate
	seen bool
}

// New returns a Throttle with the given priority.
func New(priority Priority) *Throttle {
	return &Throttle{Priority: priority}
}

// Observe parses usage headers from a completed response, updates window
// state, and returns how long the caller should wait before the next
// request. Missing or malformed headers degrade to a zero wait with a
// logged warning; Observe never fails.
func (t *Throttle) Observe(headers http.Header, readOnly bool) time.Duration {
	rate, ok := RatesFromHeaders(headers, readOnly)
	if !ok {
		t.logger().Warn("no rate limit headers present in response")
		return 0
	}

	t.rate = rate
	t.seen = true

	now := t.now()
	return t.waitFor(rate, untilNextQuarter(now), untilNextDay(now))
}

// Rate returns the last observed usage snapshot, if any.
func (t *Throttle) Rate() (core.RequestRate, bool) {
	return t.rate, t.seen
}

// waitFor implements the wait policy. Exhausted windows short-circuit to
// the remaining window time; otherwise the priority formula applies. The
// low-priority formula takes the max over both windows so that pacing
// against the long window cannot violate the short one late in a cycle.
func (t *Throttle) waitFor(rate core.RequestRate, shortReset, longReset time.Duration) time.Duration {
	switch {
	case rate.LongExceeded():
		t.logger().Warn("daily API rate limit exceeded",
			zap.Int("usage", rate.LongUsage),
			zap.Int("limit", rate.LongLimit),
			zap.Duration("resets_in", longReset))
		return longReset
	case rate.ShortExceeded():
		t.logger().Warn("15-minute API rate limit exceeded",
			zap.Int("usage", rate.ShortUsage),
			zap.Int("limit", rate.ShortLimit),
			zap.Duration("resets_in", shortReset))
		return shortReset
	}

	switch t.Priority {
	case PriorityMedium:
		return pace(shortReset, rate.ShortLimit-rate.ShortUsage)
	case PriorityLow:
		short := pace(shortReset, rate.ShortLimit-rate.ShortUsage)
		long := pace(longReset, rate.LongLimit-rate.LongUsage)
		if long > short {
			return long
		}
		return short
	default:
		return 0
	}
}

// pace spreads the remaining window time evenly over the remaining
// headroom. The exhausted case is handled before this is reached.
func pace(reset time.Duration, headroom int) time.Duration {
	if headroom <= 0 {
		return reset
	}
	return time.Duration(float64(reset) / float64(headroom))
}

func (t *Throttle) now() time.Time {
	if t != nil && t.Clock != nil {
		return t.Clock()
	}
	return time.Now().UTC()
}

func (t *Throttle) logger() *zap.Logger {
	if t != nil && t.Log != nil {
		return t.Log
	}
	return zap.NewNop()
}
