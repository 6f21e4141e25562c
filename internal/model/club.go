package model

// SummaryClub is the condensed club representation.
type SummaryClub struct {
	ID            int64  `json:"id"`
	Name          string `json:"name,omitempty"`
	SportType     string `json:"sport_type,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Country       string `json:"country,omitempty"`
	Private       bool   `json:"private,omitempty"`
	MemberCount   int    `json:"member_count,omitempty"`
	Featured      bool   `json:"featured,omitempty"`
	Verified      bool   `json:"verified,omitempty"`
	URL           string `json:"url,omitempty"`
	CoverPhoto    string `json:"cover_photo,omitempty"`
	ProfileMedium string `json:"profile_medium,omitempty"`
}
