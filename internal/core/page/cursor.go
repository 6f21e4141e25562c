// Package page provides lazy iteration over paginated API results.
package page

import (
	"context"
	"encoding/json"
)

// DefaultPerPage is the page size requested from the server. It is set to
// the server-side maximum so collections consume as little of the request
// quota as possible.
const DefaultPerPage = 200

// Fetcher returns one page of raw records. Pages are 1-based. It is the
// only collaborator the cursor needs; whether rate limiting or a token
// refresh happened upstream is invisible here.
type Fetcher func(ctx context.Context, page, perPage int) ([]json.RawMessage, error)

// Cursor lazily iterates a paged collection, decoding each raw record into
// T. Fetches are strictly sequential and records are yielded in server
// order. A Cursor is single-owner mutable state and is not safe for
// concurrent use.
//
// Usage follows the scanner idiom:
//
//	for cur.Next(ctx) {
//		record := cur.Record()
//		...
//	}
//	if err := cur.Err(); err != nil {
//		...
//	}
type Cursor[T any] struct {
	// PerPage is how many rows to fetch per page. Zero means
	// DefaultPerPage.
	PerPage int

	// Limit caps the number of records emitted. Zero means no cap.
	Limit int

	// Decode turns one raw record into a T. Nil means json.Unmarshal.
	Decode func([]byte) (T, error)

	fetch     Fetcher
	pageIndex int
	buffer    []T
	exhausted bool
	emitted   int
	current   T
	err       error
}

// New returns a cursor over the given fetcher with default page size.
func New[T any](fetch Fetcher) *Cursor[T] {
	return &Cursor[T]{fetch: fetch, pageIndex: 1}
}

// Next advances to the next record, fetching further pages as needed. It
// returns false when the collection or the limit is exhausted, or when a
// fetch fails; Err distinguishes the two. After normal exhaustion the
// cursor state is reset, so iterating again starts a fresh traversal from
// page 1.
func (c *Cursor[T]) Next(ctx context.Context) bool {
	if c.err != nil {
		return false
	}

	for {
		if c.Limit > 0 && c.emitted >= c.Limit {
			c.reset()
			return false
		}

		if len(c.buffer) > 0 {
			c.current = c.buffer[0]
			c.buffer = c.buffer[1:]
			c.emitted++
			return true
		}

		// Exhaustion is terminal for the traversal: once a short page
		// has been seen, no further fetches happen.
		if c.exhausted {
			c.reset()
			return false
		}

		if err := c.fill(ctx); err != nil {
			c.err = err
			return false
		}
	}
}

// Record returns the record produced by the last successful Next.
func (c *Cursor[T]) Record() T {
	return c.current
}

// Err returns the first fetch or decode error encountered, if any.
func (c *Cursor[T]) Err() error {
	return c.err
}

// All drains the cursor into a slice.
func (c *Cursor[T]) All(ctx context.Context) ([]T, error) {
	var records []T
	for c.Next(ctx) {
		records = append(records, c.Record())
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Cursor[T]) fill(ctx context.Context) error {
	perPage := c.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if c.pageIndex < 1 {
		c.pageIndex = 1
	}

	raws, err := c.fetch(ctx, c.pageIndex, perPage)
	if err != nil {
		return err
	}

	c.buffer = make([]T, 0, len(raws))
	for _, raw := range raws {
		record, err := c.decode(raw)
		if err != nil {
			return err
		}
		c.buffer = append(c.buffer, record)
	}

	// A short page is the only exhaustion signal the server gives; a page
	// of exactly perPage records requires one more fetch to detect the
	// end.
	if len(raws) < perPage {
		c.exhausted = true
	}
	c.pageIndex++
	return nil
}

func (c *Cursor[T]) decode(raw json.RawMessage) (T, error) {
	if c.Decode != nil {
		return c.Decode(raw)
	}
	var record T
	err := json.Unmarshal(raw, &record)
	return record, err
}

func (c *Cursor[T]) reset() {
	c.pageIndex = 1
	c.buffer = nil
	c.exhausted = false
	c.emitted = 0
}
