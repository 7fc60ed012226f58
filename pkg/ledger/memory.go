package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store using an in-memory slice.
// This implementation is intended for testing only.
type MemoryStore struct {
	entries []*Entry
	mu      sync.RWMutex
}

// NewMemoryStore creates an in-memory usage log.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append persists one usage log entry to memory.
func (s *MemoryStore) Append(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("entry cannot be nil")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy to avoid mutation through the caller's pointer
	entryCopy := *entry
	s.entries = append(s.entries, &entryCopy)

	return nil
}

// StatsBetween sums entries with CreatedAt in [from, to).
func (s *MemoryStore) StatsBetween(ctx context.Context, from, to time.Time) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{
		From: from.UTC(),
		To:   to.UTC(),
	}

	for _, entry := range s.entries {
		at := entry.CreatedAt.UTC()
		if at.Before(stats.From) || !at.Before(stats.To) {
			continue
		}
		stats.Calls++
		stats.PostsProcessed += int64(entry.PostsProcessed)
		stats.PromptTokens += int64(entry.PromptTokens)
		stats.CompletionTokens += int64(entry.CompletionTokens)
		stats.TotalTokens += int64(entry.TotalTokens)
		stats.CostMicro += entry.CostMicro
	}

	return stats, nil
}

// Close clears the log.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	return nil
}

// Size returns the number of entries in the log (for testing).
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Entries returns a copy of all entries in append order (for testing).
func (s *MemoryStore) Entries() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		entryCopy := *entry
		entries = append(entries, &entryCopy)
	}
	return entries
}
