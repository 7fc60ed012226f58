package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested post or enrichment record
// does not exist.
var ErrNotFound = errors.New("not found")

// Post is a feed item awaiting enrichment.
type Post struct {
	// ID is the post identifier (UUID).
	ID string

	// ChannelID identifies the feed channel the post belongs to (UUID).
	ChannelID string

	// Content is the post text. May be empty for media-only posts.
	Content string

	// MediaOnly marks posts whose content is an image or video with no
	// enrichable text.
	MediaOnly bool

	// PostedAt is when the post was published upstream.
	PostedAt time.Time

	// CreatedAt is when the post was ingested.
	CreatedAt time.Time
}

// EnrichmentRecord is the persisted result of enriching one post.
// At most one record exists per post, written once and never updated.
type EnrichmentRecord struct {
	// PostID is the enriched post's identifier.
	PostID string

	// ExplicitKeywords are keywords stated in the text
	// (lowercase, deduplicated, first-seen order).
	ExplicitKeywords []string

	// ImplicitKeywords are inferred topic keywords (same normalization).
	ImplicitKeywords []string

	// Category is the classified topic category.
	Category string

	// Sentiment is the classified sentiment.
	Sentiment string

	// Entities maps entity kinds (persons, organizations, locations)
	// to the names found in the text.
	Entities map[string][]string

	// InputTokens is the prompt token count billed for the call.
	InputTokens int

	// OutputTokens is the completion token count billed for the call.
	OutputTokens int

	// ProcessingTimeMs is the provider round-trip time in milliseconds.
	ProcessingTimeMs int64

	// Model is the model name reported by the provider for the call.
	Model string

	// CreatedAt is when the record was written (UTC).
	CreatedAt time.Time
}

// Store is the persistence interface for posts and enrichment records.
type Store interface {
	// SavePost persists a post. A zero ID or CreatedAt is filled in.
	SavePost(ctx context.Context, post *Post) error

	// GetPost retrieves a post by id. Returns ErrNotFound if absent.
	GetPost(ctx context.Context, id string) (*Post, error)

	// SaveEnrichment inserts an enrichment record unless one already
	// exists for the post. Returns true if the row was inserted, false
	// if a prior record won the write.
	SaveEnrichment(ctx context.Context, record *EnrichmentRecord) (bool, error)

	// GetEnrichment retrieves the enrichment record for a post.
	// Returns ErrNotFound if absent.
	GetEnrichment(ctx context.Context, postID string) (*EnrichmentRecord, error)

	// HasEnrichment reports whether an enrichment record exists for a post.
	HasEnrichment(ctx context.Context, postID string) (bool, error)

	// ListUnenriched returns up to limit posts lacking an enrichment
	// record, oldest first.
	ListUnenriched(ctx context.Context, limit int) ([]*Post, error)

	// ListUnenrichedByChannel is ListUnenriched filtered to one channel.
	ListUnenrichedByChannel(ctx context.Context, channelID string, limit int) ([]*Post, error)

	// CountPosts returns the total number of posts.
	CountPosts(ctx context.Context) (int, error)

	// CountEnriched returns the number of posts with an enrichment record.
	CountEnriched(ctx context.Context) (int, error)

	// Close releases resources held by the store.
	Close() error
}
