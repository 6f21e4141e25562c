package model

import "time"

// SummarySegment is the condensed segment representation.
type SummarySegment struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name,omitempty"`
	ActivityType  string  `json:"activity_type,omitempty"`
	Distance      float64 `json:"distance,omitempty"`
	AverageGrade  float64 `json:"average_grade,omitempty"`
	MaximumGrade  float64 `json:"maximum_grade,omitempty"`
	ElevationHigh float64 `json:"elevation_high,omitempty"`
	ElevationLow  float64 `json:"elevation_low,omitempty"`
	ClimbCategory int     `json:"climb_category,omitempty"`
	City          string  `json:"city,omitempty"`
	State         string  `json:"state,omitempty"`
	Country       string  `json:"country,omitempty"`
	Private       bool    `json:"private,omitempty"`
	Starred       bool    `json:"starred,omitempty"`
	Hazardous     bool    `json:"hazardous,omitempty"`
}

// DetailedSegment adds single-segment fields.
type DetailedSegment struct {
	SummarySegment

	CreatedAt          time.Time `json:"created_at,omitempty"`
	UpdatedAt          time.Time `json:"updated_at,omitempty"`
	TotalElevationGain float64   `json:"total_elevation_gain,omitempty"`
	EffortCount        int       `json:"effort_count,omitempty"`
	AthleteCount       int       `json:"athlete_count,omitempty"`
	StarCount          int       `json:"star_count,omitempty"`
}

// SegmentEffort is one attempt at a segment within an activity.
type SegmentEffort struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name,omitempty"`
	Segment        SummarySegment `json:"segment,omitempty"`
	Activity       MetaActivity   `json:"activity,omitempty"`
	Athlete        MetaAthlete    `json:"athlete,omitempty"`
	ElapsedTime    int            `json:"elapsed_time,omitempty"`
	MovingTime     int            `json:"moving_time,omitempty"`
	StartDate      time.Time      `json:"start_date,omitempty"`
	StartDateLocal time.Time      `json:"start_date_local,omitempty"`
	Distance       float64        `json:"distance,omitempty"`
	PRRank         int            `json:"pr_rank,omitempty"`
	KOMRank        int            `json:"kom_rank,omitempty"`
}
