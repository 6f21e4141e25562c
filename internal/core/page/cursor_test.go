package page

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type ride struct {
	ID int `json:"id"`
}

// serverOf builds a fetcher over n synthetic records, counting fetches.
func serverOf(n int, fetches *int) Fetcher {
	return func(ctx context.Context, page, perPage int) ([]json.RawMessage, error) {
		*fetches++
		start := (page - 1) * perPage
		var raws []json.RawMessage
		for i := start; i < n && i < start+perPage; i++ {
			raws = append(raws, json.RawMessage(fmt.Sprintf(`{"id":%d}`, i+1)))
		}
		return raws, nil
	}
}

func TestCursorYieldsAllRecordsInOrder(t *testing.T) {
	fetches := 0
	cursor := New[ride](serverOf(7, &fetches))
	cursor.PerPage = 3

	records, err := cursor.All(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 7)
	for i, record := range records {
		require.Equal(t, i+1, record.ID)
	}
	// 3+3+1: the short last page signals exhaustion, no extra fetch.
	require.Equal(t, 3, fetches)
}

func TestCursorExactMultipleNeedsOneExtraFetch(t *testing.T) {
	fetches := 0
	cursor := New[ride](serverOf(6, &fetches))
	cursor.PerPage = 3

	records, err := cursor.All(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 6)
	// Two full pages plus the empty page that proves the end.
	require.Equal(t, 3, fetches)
}

func TestCursorEmptyFirstPage(t *testing.T) {
	fetches := 0
	cursor := New[ride](serverOf(0, &fetches))
	cursor.PerPage = 3

	records, err := cursor.All(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)
	require.Equal(t, 1, fetches)
}

func TestCursorLimitStopsEarly(t *testing.T) {
	fetches := 0
	cursor := New[ride](serverOf(100, &fetches))
	cursor.PerPage = 10
	cursor.Limit = 4

	records, err := cursor.All(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 4)
	// One page buffers more than the limit needs; no further fetches.
	require.Equal(t, 1, fetches)
}

func TestCursorRestartsFromPageOneAfterExhaustion(t *testing.T) {
	var pages []int
	fetch := func(ctx context.Context, page, perPage int) ([]json.RawMessage, error) {
		pages = append(pages, page)
		if page > 1 {
			return nil, nil
		}
		return []json.RawMessage{json.RawMessage(`{"id":1}`)}, nil
	}

	cursor := New[ride](fetch)
	cursor.PerPage = 1

	first, err := cursor.All(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := cursor.All(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 1)

	require.Equal(t, []int{1, 2, 1, 2}, pages)
}

func TestCursorPropagatesFetchError(t *testing.T) {
	fetchErr := errors.New("upstream gone")
	calls := 0
	fetch := func(ctx context.Context, page, perPage int) ([]json.RawMessage, error) {
		calls++
		return nil, fetchErr
	}

	cursor := New[ride](fetch)
	require.False(t, cursor.Next(context.Background()))
	require.ErrorIs(t, cursor.Err(), fetchErr)

	// The error is sticky; no retry is attempted.
	require.False(t, cursor.Next(context.Background()))
	require.Equal(t, 1, calls)
}

func TestCursorDecodeError(t *testing.T) {
	fetch := func(ctx context.Context, page, perPage int) ([]json.RawMessage, error) {
		return []json.RawMessage{json.RawMessage(`{"id":"not a number"}`)}, nil
	}

	cursor := New[ride](fetch)
	require.False(t, cursor.Next(context.Background()))
	require.Error(t, cursor.Err())
}

func TestCursorCustomDecode(t *testing.T) {
	fetch := func(ctx context.Context, page, perPage int) ([]json.RawMessage, error) {
		return []json.RawMessage{json.RawMessage(`17`)}, nil
	}

	cursor := New[ride](fetch)
	cursor.Decode = func(raw []byte) (ride, error) {
		var id int
		if err := json.Unmarshal(raw, &id); err != nil {
			return ride{}, err
		}
		return ride{ID: id}, nil
	}

	require.True(t, cursor.Next(context.Background()))
	require.Equal(t, 17, cursor.Record().ID)
}
