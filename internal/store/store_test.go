package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHashIP(t *testing.T) {
	s := openTest(t)

	a := s.HashIP("203.0.113.7")
	assert.Len(t, a, 16)
	assert.Equal(t, a, s.HashIP("203.0.113.7"))
	assert.NotEqual(t, a, s.HashIP("203.0.113.8"))
	assert.NotContains(t, a, "203")

	other := openTest(t)
	assert.NotEqual(t, a, other.HashIP("203.0.113.7"), "salt is per store")
}

func TestVisitors(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.RecordVisit(ctx, "198.51.100.1", "curl/8", "/", now.Add(-400*24*time.Hour)))
	require.NoError(t, s.RecordVisit(ctx, "198.51.100.1", "curl/8", "/", now.Add(-3*24*time.Hour)))
	require.NoError(t, s.RecordVisit(ctx, "198.51.100.2", "firefox", "/projects/01", now.Add(-time.Hour)))

	recent, err := s.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "/projects/01", recent[0].Path)
	assert.Equal(t, s.HashIP("198.51.100.2"), recent[0].HashedIP)

	stats, err := s.Stats(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalVisitors)
	assert.EqualValues(t, 2, stats.UniqueVisitors)
	assert.EqualValues(t, 1, stats.VisitorsToday)
	assert.EqualValues(t, 2, stats.VisitorsThisWeek)
	require.NotEmpty(t, stats.TopPaths)
	assert.Equal(t, PathCount{Path: "/", Views: 2}, stats.TopPaths[0])

	pruned, err := s.PruneVisitors(ctx, now, 365*24*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pruned)

	recent, err = s.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestTransmissions(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveTransmission(ctx, Transmission{
		ID: "a", Sender: "Ada", Payload: "hello", Delivery: "simulate", CreatedAt: base,
	}))
	require.NoError(t, s.SaveTransmission(ctx, Transmission{
		ID: "b", Sender: "Grace", Organisation: "Navy", Payload: "hi", Delivery: "simulate", CreatedAt: base.Add(time.Minute),
	}))

	err := s.SaveTransmission(ctx, Transmission{ID: "a", Sender: "dup", Payload: "x", Delivery: "simulate", CreatedAt: base})
	assert.Error(t, err, "ids are unique")

	got, err := s.RecentTransmissions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "Navy", got[0].Organisation)
	assert.True(t, got[0].CreatedAt.Equal(base.Add(time.Minute)))

	stats, err := s.Stats(ctx, base)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalTransmissions)
	assert.Len(t, stats.RecentMessages, 2)
}

func TestToken(t *testing.T) {
	a, err := Token()
	require.NoError(t, err)
	b, err := Token()
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
