package profile

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/store"
)

func seedHistory(t *testing.T, s core.KeyValueStore, userID string, movies ...core.RatedMovie) {
	t.Helper()
	for _, m := range movies {
		data, err := json.Marshal(m)
		require.NoError(t, err)
		require.NoError(t, s.HSet(context.Background(), "history:"+userID, strconv.FormatInt(m.ID, 10), data))
	}
}

func TestStoreHistory_RatedMoviesOrder(t *testing.T) {
	s := store.NewMemoryStore()
	defer s.Close()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	a := rated(1, 7, "Drama")
	a.WatchedAt = day(1)
	b := rated(2, 9, "Horror")
	b.WatchedAt = day(2)
	c := rated(3, 7, "Comedy")
	c.WatchedAt = day(5)
	w := watched(4, "Action")
	w.WatchedAt = day(9)
	seedHistory(t, s, "u1", a, b, c, w)

	h := NewStoreHistory(s, "")
	got, err := h.RatedMovies(context.Background(), "u1")
	require.NoError(t, err)

	ids := make([]int64, 0, len(got))
	for _, m := range got {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []int64{2, 3, 1}, ids)

	all, err := h.WatchHistory(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, int64(4), all[0].ID)
	assert.False(t, all[0].HasRating())
}

func TestStoreHistory_UnknownUserIsEmpty(t *testing.T) {
	s := store.NewMemoryStore()
	defer s.Close()

	got, err := NewStoreHistory(s, "history").RatedMovies(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestStoreHistory_DecodeError(t *testing.T) {
	s := store.NewMemoryStore()
	defer s.Close()
	require.NoError(t, s.HSet(context.Background(), "history:u1", "1", []byte("{broken")))

	_, err := NewStoreHistory(s, "").WatchHistory(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode history u1/1")
}

type failingStore struct {
	core.KeyValueStore
	err error
}

func (f failingStore) HGetAll(context.Context, string) (map[string][]byte, error) {
	return nil, f.err
}

func TestStoreHistory_WrapsStoreErrors(t *testing.T) {
	boom := errors.New("connection refused")
	_, err := NewStoreHistory(failingStore{err: boom}, "").RatedMovies(context.Background(), "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestStoreHistory_FeedsBuild(t *testing.T) {
	s := store.NewMemoryStore()
	defer s.Close()
	seedHistory(t, s, "u1",
		rated(1, 9, "Action", "Sci-Fi"),
		rated(2, 8, "Action", "Thriller"),
		rated(3, 5, "Comedy"),
		watched(4, "Romance"),
	)

	history, err := NewStoreHistory(s, "").RatedMovies(context.Background(), "u1")
	require.NoError(t, err)
	p := Build(history)

	assert.Equal(t, []string{"Sci-Fi", "Action", "Thriller", "Comedy"}, p.TopGenres)
	assert.NotContains(t, p.GenreScores, "Romance")
	assert.InDelta(t, 22.0/3, p.AvgRating, 1e-9)
}
