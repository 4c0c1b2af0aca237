package ratelimit

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Entry tracks one client's submission count within the current window
type Entry struct {
	Count         int
	WindowResetAt time.Time
}

// Store holds rate-limit entries keyed by client. Implementations do not
// need to be safe for concurrent use; Limiter serializes access.
type Store interface {
	Get(key string) (*Entry, bool)
	Set(key string, entry *Entry, ttl time.Duration)
}

type cacheStore struct {
	cache *gocache.Cache
}

// NewCacheStore returns a Store backed by an in-memory TTL cache. Entries
// are evicted once their window has long expired, so idle clients don't
// accumulate.
func NewCacheStore() Store {
	return &cacheStore{
		cache: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

func (s *cacheStore) Get(key string) (*Entry, bool) {
	v, found := s.cache.Get(key)
	if !found {
		return nil, false
	}
	return v.(*Entry), true
}

func (s *cacheStore) Set(key string, entry *Entry, ttl time.Duration) {
	s.cache.Set(key, entry, ttl)
}

// Limiter caps submissions per client key over a fixed window. State is
// per-process and best-effort: horizontal scaling needs a shared store
// behind the same interface.
type Limiter struct {
	mu     sync.Mutex
	store  Store
	window time.Duration
	limit  int
	now    func() time.Time
}

// NewLimiter creates a limiter over the given store
func NewLimiter(store Store, window time.Duration, limit int) *Limiter {
	return NewLimiterWithClock(store, window, limit, time.Now)
}

// NewLimiterWithClock creates a limiter with an injected clock for tests
func NewLimiterWithClock(store Store, window time.Duration, limit int, now func() time.Time) *Limiter {
	return &Limiter{
		store:  store,
		window: window,
		limit:  limit,
		now:    now,
	}
}

// Allow records a request for the client key and reports whether it is
// within the limit. The read-increment-write sequence runs under the mutex
// so two near-simultaneous requests cannot both pass on a stale count.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	entry, found := l.store.Get(key)
	if !found || now.After(entry.WindowResetAt) {
		l.store.Set(key, &Entry{
			Count:         1,
			WindowResetAt: now.Add(l.window),
		}, 2*l.window)
		return true
	}

	if entry.Count >= l.limit {
		return false
	}

	entry.Count++
	l.store.Set(key, entry, 2*l.window)
	return true
}
