package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	body      []byte
	expiresAt time.Time
}

// Store caches fetched document bodies for the duration of a run so that a
// URL referenced by more than one configured source is retrieved once. The
// pipeline walks its sources sequentially, so the cache only needs to make
// repeated lookups cheap, not serialize concurrent loaders.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

func (s *Store) Get(_ context.Context, url string) ([]byte, bool) {
	if url == "" {
		return nil, false
	}

	now := time.Now()
	s.mu.RLock()
	e, ok := s.entries[url]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && !e.expiresAt.After(now) {
		s.mu.Lock()
		delete(s.entries, url)
		s.mu.Unlock()
		return nil, false
	}

	return e.body, true
}

func (s *Store) Set(_ context.Context, url string, body []byte) {
	if url == "" {
		return
	}

	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[url] = entry{body: body, expiresAt: expiresAt}
	s.mu.Unlock()
}

// GetOrLoad returns the cached body for url, invoking load on a miss and
// caching a successful result. Errors are never cached, so the next lookup
// retries the source.
func (s *Store) GetOrLoad(ctx context.Context, url string, load func() ([]byte, error)) ([]byte, error) {
	if body, ok := s.Get(ctx, url); ok {
		return body, nil
	}

	body, err := load()
	if err != nil {
		return nil, err
	}
	s.Set(ctx, url, body)
	return body, nil
}

func (s *Store) Purge() {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}
