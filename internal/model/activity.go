package model

import "time"

// MetaAthlete identifies the owner of an activity.
type MetaAthlete struct {
	ID int64 `json:"id"`
}

// MetaActivity identifies an activity referenced from another entity.
type MetaActivity struct {
	ID int64 `json:"id"`
}

// SummaryActivity is the list representation of an activity.
type SummaryActivity struct {
	ID                 int64       `json:"id"`
	Athlete            MetaAthlete `json:"athlete,omitempty"`
	Name               string      `json:"name,omitempty"`
	Distance           float64     `json:"distance,omitempty"`
	MovingTime         int         `json:"moving_time,omitempty"`
	ElapsedTime        int         `json:"elapsed_time,omitempty"`
	TotalElevationGain float64     `json:"total_elevation_gain,omitempty"`
	SportType          string      `json:"sport_type,omitempty"`
	StartDate          time.Time   `json:"start_date,omitempty"`
	StartDateLocal     time.Time   `json:"start_date_local,omitempty"`
	Timezone           string      `json:"timezone,omitempty"`
	AverageSpeed       float64     `json:"average_speed,omitempty"`
	MaxSpeed           float64     `json:"max_speed,omitempty"`
	AverageWatts       float64     `json:"average_watts,omitempty"`
	KudosCount         int         `json:"kudos_count,omitempty"`
	CommentCount       int         `json:"comment_count,omitempty"`
	Private            bool        `json:"private,omitempty"`
	GearID             string      `json:"gear_id,omitempty"`
}

// DetailedActivity is the single-activity representation.
type DetailedActivity struct {
	SummaryActivity

	Description string  `json:"description,omitempty"`
	Calories    float64 `json:"calories,omitempty"`
	DeviceName  string  `json:"device_name,omitempty"`
	Gear        *Gear   `json:"gear,omitempty"`
}

// Comment is a comment on an activity.
type Comment struct {
	ID         int64          `json:"id"`
	ActivityID int64          `json:"activity_id,omitempty"`
	Text       string         `json:"text,omitempty"`
	Athlete    SummaryAthlete `json:"athlete,omitempty"`
	CreatedAt  time.Time      `json:"created_at,omitempty"`
}

// ClubActivity is the reduced activity shape returned for club feeds. The
// API strips identifying fields from it.
type ClubActivity struct {
	Athlete            ClubAthlete `json:"athlete,omitempty"`
	Name               string      `json:"name,omitempty"`
	Distance           float64     `json:"distance,omitempty"`
	MovingTime         int         `json:"moving_time,omitempty"`
	ElapsedTime        int         `json:"elapsed_time,omitempty"`
	TotalElevationGain float64     `json:"total_elevation_gain,omitempty"`
	SportType          string      `json:"sport_type,omitempty"`
}
