package core

import "time"

// RequestRate is a point-in-time snapshot of dual-window API usage, parsed
// from the rate-limit headers of a single response. Strava accounts usage
// against a rolling 15-minute window and a rolling daily (UTC) window.
type RequestRate struct {
	ShortUsage int `json:"short_usage"`
	LongUsage  int `json:"long_usage"`
	ShortLimit int `json:"short_limit"`
	LongLimit  int `json:"long_limit"`
}

// ShortExceeded reports whether the 15-minute window is exhausted.
func (r RequestRate) ShortExceeded() bool {
	return r.ShortUsage >= r.ShortLimit
}

// LongExceeded reports whether the daily window is exhausted.
func (r RequestRate) LongExceeded() bool {
	return r.LongUsage >= r.LongLimit
}

// Credential is the OAuth bearer token triple granting API access.
// ExpiresAt is unix seconds; zero means the expiry is unknown.
type Credential struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
}

// Expired reports whether the access token is past its expiry. A credential
// with unknown expiry is never considered expired here; callers decide how
// to treat that case.
func (c Credential) Expired(now time.Time) bool {
	return c.ExpiresAt != 0 && now.Unix() > c.ExpiresAt
}

// UsageEntry is a stored observation of request-quota usage.
type UsageEntry struct {
	Rate       RequestRate `json:"rate"`
	ReadOnly   bool        `json:"read_only"`
	ObservedAt time.Time   `json:"observed_at"`
}
