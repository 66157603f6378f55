package store

import (
	"context"
	"sync"
	"time"

	"github.com/RakeemRanger/bls-data-assistant/internal/model"
	"github.com/RakeemRanger/bls-data-assistant/pkg/bls"
)

// MemoryStore keeps sessions and cached responses in process memory. It is
// the default backend when no DSN is configured; nothing survives a restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]model.Transcript
	cache    map[string]memoryCacheEntry
	now      func() time.Time
}

type memoryCacheEntry struct {
	resp      *bls.SeriesResponse
	expiresAt time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]model.Transcript),
		cache:    make(map[string]memoryCacheEntry),
		now:      time.Now,
	}
}

// WithNowFunc overrides the clock, for tests.
func (s *MemoryStore) WithNowFunc(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) GetTranscript(_ context.Context, sessionID string) (model.Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[sessionID], nil
}

func (s *MemoryStore) SaveTranscript(_ context.Context, sessionID string, transcript model.Transcript) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = transcript
	return nil
}

func (s *MemoryStore) GetCachedSeries(_ context.Context, key string) (*bls.SeriesResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.cache[key]
	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.After(s.now()) {
		delete(s.cache, key)
		return nil, nil
	}
	return entry.resp, nil
}

func (s *MemoryStore) SetCachedSeries(_ context.Context, key string, resp *bls.SeriesResponse, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = memoryCacheEntry{resp: resp, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) DeleteExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	now := s.now()
	for key, entry := range s.cache {
		if !entry.expiresAt.After(now) {
			delete(s.cache, key)
			deleted++
		}
	}
	return deleted, nil
}

func (s *MemoryStore) Migrate(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
