package store

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/RakeemRanger/bls-data-assistant/pkg/bls"
)

// CachedProvider wraps a bls.Client with a read-through response cache.
// Store failures are logged and treated as cache misses, so a broken backend
// degrades to uncached provider calls rather than failing queries.
type CachedProvider struct {
	inner bls.Client
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// NewCachedProvider wraps inner. Responses are cached for ttl.
func NewCachedProvider(inner bls.Client, s Store, ttl time.Duration) *CachedProvider {
	return &CachedProvider{inner: inner, store: s, ttl: ttl, now: time.Now}
}

func (c *CachedProvider) GetSeriesData(ctx context.Context, req bls.SeriesRequest) (*bls.SeriesResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := CacheKey(req)
	if cached, err := c.store.GetCachedSeries(ctx, key); err != nil {
		zap.L().Warn("cache read failed, fetching from provider", zap.Error(err))
	} else if cached != nil {
		zap.L().Debug("serving series data from cache", zap.String("key", key))
		return cached, nil
	}

	resp, err := c.inner.GetSeriesData(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := c.store.SetCachedSeries(ctx, key, resp, c.ttl); err != nil {
		zap.L().Warn("cache write failed", zap.Error(err))
	}
	return resp, nil
}

func (c *CachedProvider) GetSingleSeries(ctx context.Context, seriesID, startYear, endYear string) (*bls.Series, error) {
	resp, err := c.GetSeriesData(ctx, bls.SeriesRequest{
		SeriesIDs: []string{seriesID},
		StartYear: startYear,
		EndYear:   endYear,
	})
	if err != nil {
		zap.L().Warn("single series fetch failed, treating as not found",
			zap.String("series_id", seriesID),
			zap.Error(err),
		)
		return nil, nil
	}
	if len(resp.Results.Series) == 0 {
		return nil, nil
	}
	return &resp.Results.Series[0], nil
}

func (c *CachedProvider) LatestValue(ctx context.Context, seriesID string) (*bls.DataPoint, error) {
	currentYear := c.now().Year()
	series, err := c.GetSingleSeries(ctx, seriesID,
		strconv.Itoa(currentYear-2), strconv.Itoa(currentYear))
	if err != nil || series == nil || len(series.Data) == 0 {
		return nil, err
	}
	return &series.Data[0], nil
}
