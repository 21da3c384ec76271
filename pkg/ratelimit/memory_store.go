package ratelimit

import (
	"context"
	"hash/fnv"
	"sync"
	"time"
)

const shardCount = 64

// MemoryStore is the in-process Store: a sharded map with per-key
// locking. Lookups for distinct keys contend only on their shard, and
// only for the duration of the map access; the per-key history is
// guarded by the key's own mutex.
type MemoryStore struct {
	shards [shardCount]shard

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	cleanupOnce     sync.Once
}

type shard struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu sync.Mutex

	// timestamps per window name, pruned lazily on access.
	windows map[string][]time.Time

	// lastSeen and maxWindow let the sweep evict keys whose every
	// window must be empty by now.
	lastSeen  time.Time
	maxWindow time.Duration

	// removed marks an entry evicted while a waiter held its pointer;
	// the waiter retries against the map.
	removed bool
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often the background sweep runs.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		if interval > 0 {
			s.cleanupInterval = interval
		}
	}
}

// NewMemoryStore creates a sharded in-memory store and starts its
// cleanup goroutine. Call Close to stop it.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		cleanupInterval: time.Minute,
		stopCleanup:     make(chan struct{}),
	}
	for i := range s.shards {
		s.shards[i].entries = make(map[string]*entry)
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.cleanupLoop()

	return s
}

// Take implements Store. The read-check-record sequence runs under the
// entry lock, so concurrent requests for one key are strictly ordered
// while other keys proceed in parallel.
func (s *MemoryStore) Take(ctx context.Context, key string, windows []Window, now time.Time) (bool, []WindowState, error) {
	e := s.entryFor(key, windows)
	defer e.mu.Unlock()

	states := e.prune(windows, now)

	for _, st := range states {
		if st.Count >= st.Window.Limit {
			return false, states, nil
		}
	}

	for i := range states {
		name := states[i].Window.Name
		e.windows[name] = append(e.windows[name], now)
		states[i].Count++
		if states[i].Oldest.IsZero() {
			states[i].Oldest = now
		}
	}
	e.lastSeen = now

	return true, states, nil
}

// Peek implements Store.
func (s *MemoryStore) Peek(ctx context.Context, key string, windows []Window, now time.Time) ([]WindowState, error) {
	e := s.entryFor(key, windows)
	defer e.mu.Unlock()

	return e.prune(windows, now), nil
}

// Reset implements Store.
func (s *MemoryStore) Reset(ctx context.Context, key string, windows []Window) error {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	delete(sh.entries, key)
	return nil
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() error {
	s.cleanupOnce.Do(func() {
		close(s.stopCleanup)
	})
	return nil
}

// entryFor returns the key's entry with its mutex held.
func (s *MemoryStore) entryFor(key string, windows []Window) *entry {
	sh := s.shardFor(key)

	for {
		sh.mu.Lock()
		e, ok := sh.entries[key]
		if !ok {
			e = &entry{windows: make(map[string][]time.Time, len(windows))}
			for _, w := range windows {
				if w.Duration > e.maxWindow {
					e.maxWindow = w.Duration
				}
			}
			sh.entries[key] = e
		}
		sh.mu.Unlock()

		e.mu.Lock()
		if !e.removed {
			return e
		}
		// Lost a race with the sweep; the map no longer holds e.
		e.mu.Unlock()
	}
}

func (s *MemoryStore) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &s.shards[h.Sum32()%shardCount]
}

// prune drops expired timestamps and reports the surviving state per
// window. Caller holds e.mu.
func (e *entry) prune(windows []Window, now time.Time) []WindowState {
	states := make([]WindowState, len(windows))
	for i, w := range windows {
		cutoff := now.Add(-w.Duration)
		ts := e.windows[w.Name]

		// Timestamps are appended in order, so find the first survivor.
		keep := 0
		for keep < len(ts) && !ts[keep].After(cutoff) {
			keep++
		}
		if keep > 0 {
			ts = append(ts[:0:0], ts[keep:]...)
			e.windows[w.Name] = ts
		}

		states[i] = WindowState{Window: w, Count: len(ts)}
		if len(ts) > 0 {
			states[i].Oldest = ts[0]
		}
	}
	return states
}

func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(time.Now())
		case <-s.stopCleanup:
			return
		}
	}
}

// sweep evicts keys idle past their longest window. It locks one shard
// at a time, so admissions on other shards are never blocked.
func (s *MemoryStore) sweep(now time.Time) {
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		for key, e := range sh.entries {
			e.mu.Lock()
			if now.Sub(e.lastSeen) > e.maxWindow {
				e.removed = true
				delete(sh.entries, key)
			}
			e.mu.Unlock()
		}
		sh.mu.Unlock()
	}
}
