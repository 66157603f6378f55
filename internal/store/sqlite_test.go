package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RakeemRanger/bls-data-assistant/internal/model"
	"github.com/RakeemRanger/bls-data-assistant/pkg/bls"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "assistant.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func cachedResponse() *bls.SeriesResponse {
	return &bls.SeriesResponse{
		Status: bls.StatusSucceeded,
		Results: bls.Results{
			Series: []bls.Series{
				{
					SeriesID: "LNS14000000",
					Data:     []bls.DataPoint{{Year: "2023", Period: "M12", Value: "3.7"}},
				},
			},
		},
	}
}

func TestSQLite_TranscriptRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	got, err := s.GetTranscript(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	transcript := model.Transcript{
		{Role: model.RoleUser, Content: "unemployment in 2023"},
		{Role: model.RoleAssistant, Content: "The rate was 3.7%."},
	}
	require.NoError(t, s.SaveTranscript(ctx, "session-1", transcript))

	got, err = s.GetTranscript(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, transcript, got)

	// Saving again replaces the stored transcript.
	longer := transcript.Append(model.RoleUser, "and in 2022?")
	require.NoError(t, s.SaveTranscript(ctx, "session-1", longer))

	got, err = s.GetTranscript(ctx, "session-1")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestSQLite_SeriesCache(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	got, err := s.GetCachedSeries(ctx, "key-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.SetCachedSeries(ctx, "key-1", cachedResponse(), time.Hour))

	got, err = s.GetCachedSeries(ctx, "key-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "LNS14000000", got.Results.Series[0].SeriesID)
}

func TestSQLite_ExpiredEntriesAreMisses(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.SetCachedSeries(ctx, "stale", cachedResponse(), -time.Hour))

	got, err := s.GetCachedSeries(ctx, "stale")
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err := s.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
}

func TestOpen_PicksBackend(t *testing.T) {
	ctx := context.Background()

	mem, err := Open(ctx, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, mem)

	lite, err := Open(ctx, filepath.Join(t.TempDir(), "x.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, lite)
	lite.Close()
}

func TestCacheKey(t *testing.T) {
	a := bls.SeriesRequest{SeriesIDs: []string{"A", "B"}, StartYear: "2020", EndYear: "2023"}
	b := bls.SeriesRequest{SeriesIDs: []string{"B", "A"}, StartYear: "2020", EndYear: "2023"}
	c := bls.SeriesRequest{SeriesIDs: []string{"A", "B"}, StartYear: "2021", EndYear: "2023"}

	assert.Equal(t, CacheKey(a), CacheKey(b))
	assert.NotEqual(t, CacheKey(a), CacheKey(c))
	assert.NotEqual(t, CacheKey(a), CacheKey(bls.SeriesRequest{SeriesIDs: []string{"A", "B"}, StartYear: "2020", EndYear: "2023", Catalog: true}))
}
