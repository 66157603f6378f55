package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RakeemRanger/bls-data-assistant/pkg/bls"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) GetSeriesData(ctx context.Context, req bls.SeriesRequest) (*bls.SeriesResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bls.SeriesResponse), args.Error(1)
}

func (m *mockProvider) GetSingleSeries(ctx context.Context, seriesID, startYear, endYear string) (*bls.Series, error) {
	args := m.Called(ctx, seriesID, startYear, endYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bls.Series), args.Error(1)
}

func (m *mockProvider) LatestValue(ctx context.Context, seriesID string) (*bls.DataPoint, error) {
	args := m.Called(ctx, seriesID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bls.DataPoint), args.Error(1)
}

func TestCachedProvider_ReadThrough(t *testing.T) {
	provider := new(mockProvider)
	provider.On("GetSeriesData", mock.Anything, mock.Anything).Return(cachedResponse(), nil).Once()

	cached := NewCachedProvider(provider, NewMemory(), time.Hour)
	req := bls.SeriesRequest{SeriesIDs: []string{"LNS14000000"}, StartYear: "2022", EndYear: "2023"}

	first, err := cached.GetSeriesData(context.Background(), req)
	require.NoError(t, err)

	second, err := cached.GetSeriesData(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	provider.AssertNumberOfCalls(t, "GetSeriesData", 1)
}

func TestCachedProvider_ExpiredEntryRefetches(t *testing.T) {
	provider := new(mockProvider)
	provider.On("GetSeriesData", mock.Anything, mock.Anything).Return(cachedResponse(), nil)

	cached := NewCachedProvider(provider, NewMemory(), -time.Hour)
	req := bls.SeriesRequest{SeriesIDs: []string{"LNS14000000"}, StartYear: "2022", EndYear: "2023"}

	_, err := cached.GetSeriesData(context.Background(), req)
	require.NoError(t, err)
	_, err = cached.GetSeriesData(context.Background(), req)
	require.NoError(t, err)

	provider.AssertNumberOfCalls(t, "GetSeriesData", 2)
}

func TestCachedProvider_ValidationSkipsCacheAndNetwork(t *testing.T) {
	provider := new(mockProvider)

	cached := NewCachedProvider(provider, NewMemory(), time.Hour)
	_, err := cached.GetSeriesData(context.Background(), bls.SeriesRequest{StartYear: "2022", EndYear: "2023"})

	var ve *bls.ValidationError
	require.ErrorAs(t, err, &ve)
	provider.AssertNotCalled(t, "GetSeriesData", mock.Anything, mock.Anything)
}

func TestCachedProvider_ErrorsAreNotCached(t *testing.T) {
	provider := new(mockProvider)
	provider.On("GetSeriesData", mock.Anything, mock.Anything).Return(nil, &bls.TransportError{StatusCode: 500})

	cached := NewCachedProvider(provider, NewMemory(), time.Hour)
	req := bls.SeriesRequest{SeriesIDs: []string{"LNS14000000"}, StartYear: "2022", EndYear: "2023"}

	_, err := cached.GetSeriesData(context.Background(), req)
	require.Error(t, err)
	_, err = cached.GetSeriesData(context.Background(), req)
	require.Error(t, err)

	provider.AssertNumberOfCalls(t, "GetSeriesData", 2)
}

func TestCachedProvider_GetSingleSeriesSwallowsErrors(t *testing.T) {
	provider := new(mockProvider)
	provider.On("GetSeriesData", mock.Anything, mock.Anything).Return(nil, &bls.TransportError{StatusCode: 500})

	cached := NewCachedProvider(provider, NewMemory(), time.Hour)

	series, err := cached.GetSingleSeries(context.Background(), "LNS14000000", "2022", "2023")
	assert.NoError(t, err)
	assert.Nil(t, series)
}

func TestMemoryStore_TranscriptRoundTrip(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	got, err := s.GetTranscript(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.SaveTranscript(ctx, "session-1", nil))
	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, s.Close())
}

func TestMemoryStore_DeleteExpired(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	require.NoError(t, s.SetCachedSeries(ctx, "fresh", cachedResponse(), time.Hour))
	require.NoError(t, s.SetCachedSeries(ctx, "stale", cachedResponse(), -time.Hour))

	deleted, err := s.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	fresh, err := s.GetCachedSeries(ctx, "fresh")
	require.NoError(t, err)
	assert.NotNil(t, fresh)
}
