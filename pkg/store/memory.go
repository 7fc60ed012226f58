package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store using in-memory maps.
// This implementation is intended for testing only.
type MemoryStore struct {
	posts       map[string]*Post
	enrichments map[string]*EnrichmentRecord
	mu          sync.RWMutex
}

// NewMemoryStore creates an in-memory post store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		posts:       make(map[string]*Post),
		enrichments: make(map[string]*EnrichmentRecord),
	}
}

// SavePost persists a post to memory.
func (s *MemoryStore) SavePost(ctx context.Context, post *Post) error {
	if post == nil {
		return fmt.Errorf("post cannot be nil")
	}
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	postCopy := *post
	s.posts[post.ID] = &postCopy

	return nil
}

// GetPost retrieves a post by id.
func (s *MemoryStore) GetPost(ctx context.Context, id string) (*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}

	postCopy := *post
	return &postCopy, nil
}

// SaveEnrichment inserts an enrichment record unless one already exists.
func (s *MemoryStore) SaveEnrichment(ctx context.Context, record *EnrichmentRecord) (bool, error) {
	if record == nil {
		return false, fmt.Errorf("record cannot be nil")
	}
	if record.PostID == "" {
		return false, fmt.Errorf("record post id cannot be empty")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.enrichments[record.PostID]; exists {
		return false, nil
	}

	recordCopy := *record
	s.enrichments[record.PostID] = &recordCopy

	return true, nil
}

// GetEnrichment retrieves the enrichment record for a post.
func (s *MemoryStore) GetEnrichment(ctx context.Context, postID string) (*EnrichmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.enrichments[postID]
	if !ok {
		return nil, ErrNotFound
	}

	recordCopy := *record
	return &recordCopy, nil
}

// HasEnrichment reports whether an enrichment record exists for a post.
func (s *MemoryStore) HasEnrichment(ctx context.Context, postID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.enrichments[postID]
	return ok, nil
}

// ListUnenriched returns up to limit posts lacking an enrichment record,
// oldest first.
func (s *MemoryStore) ListUnenriched(ctx context.Context, limit int) ([]*Post, error) {
	return s.listUnenriched(limit, "")
}

// ListUnenrichedByChannel is ListUnenriched filtered to one channel.
func (s *MemoryStore) ListUnenrichedByChannel(ctx context.Context, channelID string, limit int) ([]*Post, error) {
	return s.listUnenriched(limit, channelID)
}

func (s *MemoryStore) listUnenriched(limit int, channelID string) ([]*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := []*Post{}
	for id, post := range s.posts {
		if _, enriched := s.enrichments[id]; enriched {
			continue
		}
		if channelID != "" && post.ChannelID != channelID {
			continue
		}
		postCopy := *post
		candidates = append(candidates, &postCopy)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].PostedAt.Equal(candidates[j].PostedAt) {
			return candidates[i].PostedAt.Before(candidates[j].PostedAt)
		}
		return candidates[i].ID < candidates[j].ID
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}

// CountPosts returns the total number of posts.
func (s *MemoryStore) CountPosts(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.posts), nil
}

// CountEnriched returns the number of posts with an enrichment record.
func (s *MemoryStore) CountEnriched(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.enrichments), nil
}

// Close clears the store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = make(map[string]*Post)
	s.enrichments = make(map[string]*EnrichmentRecord)
	return nil
}
