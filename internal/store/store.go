// Package store persists session transcripts and caches provider responses.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/RakeemRanger/bls-data-assistant/internal/model"
	"github.com/RakeemRanger/bls-data-assistant/pkg/bls"
)

// Store defines the persistence interface for the assistant. Cache reads
// return (nil, nil) on a miss or an expired entry; absence is a normal state.
type Store interface {
	// Sessions
	GetTranscript(ctx context.Context, sessionID string) (model.Transcript, error)
	SaveTranscript(ctx context.Context, sessionID string, transcript model.Transcript) error

	// Series response cache
	GetCachedSeries(ctx context.Context, key string) (*bls.SeriesResponse, error)
	SetCachedSeries(ctx context.Context, key string, resp *bls.SeriesResponse, ttl time.Duration) error
	DeleteExpired(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open picks a backend from the DSN: postgres URLs get PostgresStore, an
// empty DSN gets the in-memory store, anything else is treated as a SQLite
// file path.
func Open(ctx context.Context, dsn string) (Store, error) {
	switch {
	case dsn == "":
		return NewMemory(), nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return NewPostgres(ctx, dsn, nil)
	default:
		return NewSQLite(dsn)
	}
}

// CacheKey derives a stable cache key from a series request. Series order
// does not affect the key.
func CacheKey(req bls.SeriesRequest) string {
	ids := make([]string, len(req.SeriesIDs))
	copy(ids, req.SeriesIDs)
	sort.Strings(ids)

	h := sha256.New()
	h.Write([]byte(strings.Join(ids, ",")))
	h.Write([]byte("|" + req.StartYear + "|" + req.EndYear + "|" + strconv.FormatBool(req.Catalog)))
	return hex.EncodeToString(h.Sum(nil))
}
