package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/RakeemRanger/bls-data-assistant/internal/model"
	"github.com/RakeemRanger/bls-data-assistant/pkg/bls"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock implements it.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return &PostgresStore{pool: pool}, nil
}

// NewPostgresFromPool wraps an existing pool, for tests.
func NewPostgresFromPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	transcript JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS series_cache (
	key        TEXT PRIMARY KEY,
	response   JSONB NOT NULL,
	cached_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	expires_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_series_cache_expires_at ON series_cache(expires_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) GetTranscript(ctx context.Context, sessionID string) (model.Transcript, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT transcript FROM sessions WHERE id = $1`, sessionID)

	var raw []byte
	err := row.Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get transcript %s", sessionID)
	}

	var t model.Transcript
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal transcript")
	}
	return t, nil
}

func (s *PostgresStore) SaveTranscript(ctx context.Context, sessionID string, transcript model.Transcript) error {
	raw, err := json.Marshal(transcript)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal transcript")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO sessions (id, transcript, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET transcript = EXCLUDED.transcript, updated_at = EXCLUDED.updated_at`,
		sessionID, string(raw), time.Now().UTC(),
	)
	return eris.Wrapf(err, "postgres: save transcript %s", sessionID)
}

func (s *PostgresStore) GetCachedSeries(ctx context.Context, key string) (*bls.SeriesResponse, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT response FROM series_cache WHERE key = $1 AND expires_at > now()`, key)

	var raw []byte
	err := row.Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get cached series")
	}

	var resp bls.SeriesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal cached response")
	}
	return &resp, nil
}

func (s *PostgresStore) SetCachedSeries(ctx context.Context, key string, resp *bls.SeriesResponse, ttl time.Duration) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal response")
	}

	now := time.Now().UTC()
	_, err = s.pool.Exec(ctx,
		`INSERT INTO series_cache (key, response, cached_at, expires_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (key) DO UPDATE SET response = EXCLUDED.response,
		   cached_at = EXCLUDED.cached_at, expires_at = EXCLUDED.expires_at`,
		key, string(raw), now, now.Add(ttl),
	)
	return eris.Wrap(err, "postgres: set cached series")
}

func (s *PostgresStore) DeleteExpired(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM series_cache WHERE expires_at <= now()`)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: delete expired")
	}
	return int(tag.RowsAffected()), nil
}
