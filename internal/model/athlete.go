// Package model holds typed representations of the API's domain entities.
// Only commonly used fields are mapped; unknown fields are ignored on
// decode. Entities carry IDs rather than back-references; traversing a
// relation goes through an explicit engine.Client call.
package model

import "time"

// SummaryAthlete is the condensed athlete representation returned inside
// other payloads.
type SummaryAthlete struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Country   string `json:"country,omitempty"`
	Sex       string `json:"sex,omitempty"`
	Premium   bool   `json:"premium,omitempty"`
	Profile   string `json:"profile,omitempty"`
}

// DetailedAthlete is the full representation of the authenticated athlete.
type DetailedAthlete struct {
	SummaryAthlete

	CreatedAt             time.Time `json:"created_at,omitempty"`
	UpdatedAt             time.Time `json:"updated_at,omitempty"`
	FollowerCount         int       `json:"follower_count,omitempty"`
	FriendCount           int       `json:"friend_count,omitempty"`
	MeasurementPreference string    `json:"measurement_preference,omitempty"`
	FTP                   int       `json:"ftp,omitempty"`
	Weight                float64   `json:"weight,omitempty"`
	Bikes                 []Gear    `json:"bikes,omitempty"`
	Shoes                 []Gear    `json:"shoes,omitempty"`
}

// ClubAthlete is the reduced athlete shape returned by club member lists.
type ClubAthlete struct {
	FirstName  string `json:"firstname,omitempty"`
	LastName   string `json:"lastname,omitempty"`
	Membership string `json:"membership,omitempty"`
	Admin      bool   `json:"admin,omitempty"`
	Owner      bool   `json:"owner,omitempty"`
}
