package leaderboard

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps results in process memory. Results expire after ttl; zero disables expiry.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	results map[string]memoryResult
	best    map[string]*Entry
}

type memoryResult struct {
	result    GameResult
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		results: make(map[string]memoryResult),
		best:    make(map[string]*Entry),
	}
}

func (m *MemoryStore) SaveResult(_ context.Context, result GameResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := memoryResult{result: copyResult(result)}
	if m.ttl > 0 {
		stored.expiresAt = m.now().Add(m.ttl)
	}
	m.results[result.RoomID] = stored

	for _, p := range result.Players {
		e, ok := m.best[p.Name]
		if !ok {
			e = &Entry{Name: p.Name, Score: p.Score}
			m.best[p.Name] = e
		}
		if p.Score > e.Score {
			e.Score = p.Score
		}
		e.Games++
		e.Correct += p.Correct
	}
	return nil
}

func (m *MemoryStore) RoomResult(_ context.Context, roomID string) (*GameResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.results[roomID]
	if !ok {
		return nil, ErrNotFound
	}
	if !stored.expiresAt.IsZero() && !m.now().Before(stored.expiresAt) {
		delete(m.results, roomID)
		return nil, ErrNotFound
	}
	result := copyResult(stored.result)
	return &result, nil
}

func (m *MemoryStore) Top(_ context.Context, limit int) ([]Entry, error) {
	m.mu.Lock()
	entries := make([]Entry, 0, len(m.best))
	for _, e := range m.best {
		entries = append(entries, *e)
	}
	m.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func copyResult(r GameResult) GameResult {
	r.Players = append([]PlayerResult(nil), r.Players...)
	return r
}
