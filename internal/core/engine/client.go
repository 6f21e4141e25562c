// Package engine exposes the typed domain operations of the API, built on
// the protocol request path. Collection endpoints return lazy cursors so
// large result sets are never held in memory at once.
package engine

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/paceline/paceline/internal/core/page"
	"github.com/paceline/paceline/internal/core/protocol"
	"github.com/paceline/paceline/internal/model"
)

// Client issues typed API operations. Relational lookups take explicit IDs
// here instead of living as attributes on the models, so no entity needs a
// back-reference to the client.
type Client struct {
	Protocol *protocol.Client

	// PerPage overrides the default cursor page size.
	PerPage int
}

// New returns an engine client over the given protocol client.
func New(proto *protocol.Client) *Client {
	return &Client{Protocol: proto}
}

// cursorFor builds a cursor over a paged GET endpoint. It is a free
// function because methods cannot carry type parameters.
func cursorFor[T any](c *Client, path string, params url.Values) *page.Cursor[T] {
	cursor := page.New[T](c.Protocol.PageFetcher(path, params))
	if c.PerPage > 0 {
		cursor.PerPage = c.PerPage
	}
	return cursor
}

// ActivityListOptions filter the authenticated athlete's activities.
type ActivityListOptions struct {
	// Before restricts results to activities started before this time.
	Before time.Time

	// After restricts results to activities started after this time.
	After time.Time

	// Limit caps the number of activities emitted. Zero means all.
	Limit int
}

// Athlete fetches the authenticated athlete.
func (c *Client) Athlete(ctx context.Context) (*model.DetailedAthlete, error) {
	var athlete model.DetailedAthlete
	if err := c.Protocol.GetJSON(ctx, "/athlete", nil, &athlete); err != nil {
		return nil, err
	}
	return &athlete, nil
}

// UpdateAthleteWeight updates the authenticated athlete's weight in
// kilograms, the only athlete field the API allows writing.
func (c *Client) UpdateAthleteWeight(ctx context.Context, weight float64) (*model.DetailedAthlete, error) {
	form := url.Values{"weight": []string{strconv.FormatFloat(weight, 'f', -1, 64)}}

	var athlete model.DetailedAthlete
	if err := c.Protocol.PutForm(ctx, "/athlete", form, &athlete); err != nil {
		return nil, err
	}
	return &athlete, nil
}

// Activities returns a cursor over the authenticated athlete's activities,
// newest first.
func (c *Client) Activities(opts ActivityListOptions) *page.Cursor[model.SummaryActivity] {
	params := url.Values{}
	if !opts.Before.IsZero() {
		params.Set("before", strconv.FormatInt(opts.Before.Unix(), 10))
	}
	if !opts.After.IsZero() {
		params.Set("after", strconv.FormatInt(opts.After.Unix(), 10))
	}

	cursor := cursorFor[model.SummaryActivity](c, "/athlete/activities", params)
	cursor.Limit = opts.Limit
	return cursor
}

// Activity fetches a single activity.
func (c *Client) Activity(ctx context.Context, id int64) (*model.DetailedActivity, error) {
	var activity model.DetailedActivity
	if err := c.Protocol.GetJSON(ctx, fmt.Sprintf("/activities/%d", id), nil, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// ActivityComments returns a cursor over the comments on an activity.
func (c *Client) ActivityComments(id int64) *page.Cursor[model.Comment] {
	return cursorFor[model.Comment](c, fmt.Sprintf("/activities/%d/comments", id), nil)
}

// ActivityKudoers returns a cursor over the athletes who gave kudos.
func (c *Client) ActivityKudoers(id int64) *page.Cursor[model.SummaryAthlete] {
	return cursorFor[model.SummaryAthlete](c, fmt.Sprintf("/activities/%d/kudos", id), nil)
}

// Clubs fetches the authenticated athlete's clubs.
func (c *Client) Clubs(ctx context.Context) ([]model.SummaryClub, error) {
	var clubs []model.SummaryClub
	if err := c.Protocol.GetJSON(ctx, "/athlete/clubs", nil, &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

// ClubActivities returns a cursor over a club's recent activities.
func (c *Client) ClubActivities(id int64) *page.Cursor[model.ClubActivity] {
	return cursorFor[model.ClubActivity](c, fmt.Sprintf("/clubs/%d/activities", id), nil)
}

// ClubMembers returns a cursor over a club's members.
func (c *Client) ClubMembers(id int64) *page.Cursor[model.ClubAthlete] {
	return cursorFor[model.ClubAthlete](c, fmt.Sprintf("/clubs/%d/members", id), nil)
}

// Segment fetches a single segment.
func (c *Client) Segment(ctx context.Context, id int64) (*model.DetailedSegment, error) {
	var segment model.DetailedSegment
	if err := c.Protocol.GetJSON(ctx, fmt.Sprintf("/segments/%d", id), nil, &segment); err != nil {
		return nil, err
	}
	return &segment, nil
}

// StarredSegments returns a cursor over the athlete's starred segments.
func (c *Client) StarredSegments() *page.Cursor[model.SummarySegment] {
	return cursorFor[model.SummarySegment](c, "/segments/starred", nil)
}

// SegmentEfforts returns a cursor over the authenticated athlete's efforts
// on a segment.
func (c *Client) SegmentEfforts(segmentID int64) *page.Cursor[model.SegmentEffort] {
	return cursorFor[model.SegmentEffort](c, fmt.Sprintf("/segments/%d/all_efforts", segmentID), nil)
}

// Gear fetches a single piece of gear by its string ID.
func (c *Client) Gear(ctx context.Context, id string) (*model.Gear, error) {
	var gear model.Gear
	if err := c.Protocol.GetJSON(ctx, "/gear/"+url.PathEscape(id), nil, &gear); err != nil {
		return nil, err
	}
	return &gear, nil
}
