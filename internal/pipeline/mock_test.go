package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

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

// panickingProvider simulates a programming error inside a dependency.
type panickingProvider struct{}

func (panickingProvider) GetSeriesData(context.Context, bls.SeriesRequest) (*bls.SeriesResponse, error) {
	panic("provider bug")
}

func (panickingProvider) GetSingleSeries(context.Context, string, string, string) (*bls.Series, error) {
	panic("provider bug")
}

func (panickingProvider) LatestValue(context.Context, string) (*bls.DataPoint, error) {
	panic("provider bug")
}
