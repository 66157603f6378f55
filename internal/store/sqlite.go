package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/RakeemRanger/bls-data-assistant/internal/model"
	"github.com/RakeemRanger/bls-data-assistant/pkg/bls"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	transcript TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS series_cache (
	key        TEXT PRIMARY KEY,
	response   TEXT NOT NULL,
	cached_at  INTEGER NOT NULL,
	expires_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_series_cache_expires_at ON series_cache(expires_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetTranscript(ctx context.Context, sessionID string) (model.Transcript, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT transcript FROM sessions WHERE id = ?`, sessionID)

	var raw string
	err := row.Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get transcript %s", sessionID)
	}

	var t model.Transcript
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal transcript")
	}
	return t, nil
}

func (s *SQLiteStore) SaveTranscript(ctx context.Context, sessionID string, transcript model.Transcript) error {
	raw, err := json.Marshal(transcript)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal transcript")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, transcript, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET transcript = excluded.transcript, updated_at = excluded.updated_at`,
		sessionID, string(raw), time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: save transcript %s", sessionID)
}

func (s *SQLiteStore) GetCachedSeries(ctx context.Context, key string) (*bls.SeriesResponse, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT response FROM series_cache WHERE key = ? AND expires_at > ?`,
		key, time.Now().Unix())

	var raw string
	err := row.Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get cached series")
	}

	var resp bls.SeriesResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal cached response")
	}
	return &resp, nil
}

func (s *SQLiteStore) SetCachedSeries(ctx context.Context, key string, resp *bls.SeriesResponse, ttl time.Duration) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal response")
	}

	now := time.Now()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO series_cache (key, response, cached_at, expires_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET response = excluded.response,
		   cached_at = excluded.cached_at, expires_at = excluded.expires_at`,
		key, string(raw), now.Unix(), now.Add(ttl).Unix(),
	)
	return eris.Wrap(err, "sqlite: set cached series")
}

func (s *SQLiteStore) DeleteExpired(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM series_cache WHERE expires_at <= ?`, time.Now().Unix())
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete expired")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: rows affected")
	}
	return int(n), nil
}
