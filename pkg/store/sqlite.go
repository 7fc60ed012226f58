package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// schema contains the SQL statements to create the posts schema.
const schema = `
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    channel_id TEXT NOT NULL,
    content TEXT NOT NULL,
    media_only INTEGER NOT NULL DEFAULT 0,
    posted_at INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS enrichments (
    post_id TEXT PRIMARY KEY REFERENCES posts(id) ON DELETE CASCADE,
    explicit_keywords TEXT NOT NULL,
    implicit_keywords TEXT NOT NULL,
    category TEXT NOT NULL,
    sentiment TEXT NOT NULL,
    entities TEXT NOT NULL,
    input_tokens INTEGER NOT NULL,
    output_tokens INTEGER NOT NULL,
    processing_time_ms INTEGER NOT NULL,
    model TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_posts_channel_id ON posts(channel_id);
CREATE INDEX IF NOT EXISTS idx_posts_posted_at ON posts(posted_at);
`

// SQLiteConfig contains configuration for the SQLite posts backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:        "data/posts.db",
		BusyTimeout: 5 * time.Second,
	}
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore creates a SQLite-backed post store.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.BusyTimeout == 0 {
		config.BusyTimeout = 5 * time.Second
	}

	logger := slog.Default().With("component", "store.sqlite")

	if dir := filepath.Dir(config.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open posts database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		fmt.Sprintf("PRAGMA busy_timeout=%d", config.BusyTimeout.Milliseconds()),
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create posts schema: %w", err)
	}

	logger.Info("post store opened", "path", config.Path)

	return &SQLiteStore{
		db:     db,
		config: config,
		logger: logger,
	}, nil
}

// SavePost persists a post. A zero ID or CreatedAt is filled in.
func (s *SQLiteStore) SavePost(ctx context.Context, post *Post) error {
	if post == nil {
		return fmt.Errorf("post cannot be nil")
	}
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO posts (id, channel_id, content, media_only, posted_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			channel_id = excluded.channel_id,
			content = excluded.content,
			media_only = excluded.media_only,
			posted_at = excluded.posted_at
	`

	_, err := s.db.ExecContext(ctx, query,
		post.ID, post.ChannelID, post.Content, post.MediaOnly,
		post.PostedAt.UTC().Unix(), post.CreatedAt.UTC().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}

	return nil
}

// GetPost retrieves a post by id.
func (s *SQLiteStore) GetPost(ctx context.Context, id string) (*Post, error) {
	query := `
		SELECT id, channel_id, content, media_only, posted_at, created_at
		FROM posts WHERE id = ?
	`

	var post Post
	var postedAt, createdAt int64

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.ChannelID, &post.Content, &post.MediaOnly,
		&postedAt, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	post.PostedAt = time.Unix(postedAt, 0).UTC()
	post.CreatedAt = time.Unix(createdAt, 0).UTC()

	return &post, nil
}

// SaveEnrichment inserts an enrichment record unless one already exists.
// The write itself decides the winner when two enrichment runs race on the
// same post: ON CONFLICT DO NOTHING keeps the first record and reports
// false to the loser.
func (s *SQLiteStore) SaveEnrichment(ctx context.Context, record *EnrichmentRecord) (bool, error) {
	if record == nil {
		return false, fmt.Errorf("record cannot be nil")
	}
	if record.PostID == "" {
		return false, fmt.Errorf("record post id cannot be empty")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	explicitJSON, err := json.Marshal(record.ExplicitKeywords)
	if err != nil {
		return false, fmt.Errorf("failed to marshal explicit keywords: %w", err)
	}
	implicitJSON, err := json.Marshal(record.ImplicitKeywords)
	if err != nil {
		return false, fmt.Errorf("failed to marshal implicit keywords: %w", err)
	}
	entitiesJSON, err := json.Marshal(record.Entities)
	if err != nil {
		return false, fmt.Errorf("failed to marshal entities: %w", err)
	}

	query := `
		INSERT INTO enrichments (
			post_id, explicit_keywords, implicit_keywords, category, sentiment,
			entities, input_tokens, output_tokens, processing_time_ms,
			model, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(post_id) DO NOTHING
	`

	result, err := s.db.ExecContext(ctx, query,
		record.PostID, string(explicitJSON), string(implicitJSON),
		record.Category, record.Sentiment, string(entitiesJSON),
		record.InputTokens, record.OutputTokens, record.ProcessingTimeMs,
		record.Model, record.CreatedAt.UTC().Unix(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to save enrichment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

// GetEnrichment retrieves the enrichment record for a post.
func (s *SQLiteStore) GetEnrichment(ctx context.Context, postID string) (*EnrichmentRecord, error) {
	query := `
		SELECT post_id, explicit_keywords, implicit_keywords, category, sentiment,
		       entities, input_tokens, output_tokens, processing_time_ms,
		       model, created_at
		FROM enrichments WHERE post_id = ?
	`

	var record EnrichmentRecord
	var explicitJSON, implicitJSON, entitiesJSON string
	var createdAt int64

	err := s.db.QueryRowContext(ctx, query, postID).Scan(
		&record.PostID, &explicitJSON, &implicitJSON,
		&record.Category, &record.Sentiment, &entitiesJSON,
		&record.InputTokens, &record.OutputTokens, &record.ProcessingTimeMs,
		&record.Model, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get enrichment: %w", err)
	}

	if err := json.Unmarshal([]byte(explicitJSON), &record.ExplicitKeywords); err != nil {
		return nil, fmt.Errorf("failed to unmarshal explicit keywords: %w", err)
	}
	if err := json.Unmarshal([]byte(implicitJSON), &record.ImplicitKeywords); err != nil {
		return nil, fmt.Errorf("failed to unmarshal implicit keywords: %w", err)
	}
	if err := json.Unmarshal([]byte(entitiesJSON), &record.Entities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entities: %w", err)
	}

	record.CreatedAt = time.Unix(createdAt, 0).UTC()

	return &record, nil
}

// HasEnrichment reports whether an enrichment record exists for a post.
func (s *SQLiteStore) HasEnrichment(ctx context.Context, postID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM enrichments WHERE post_id = ?", postID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check enrichment: %w", err)
	}
	return true, nil
}

// ListUnenriched returns up to limit posts lacking an enrichment record,
// oldest first.
func (s *SQLiteStore) ListUnenriched(ctx context.Context, limit int) ([]*Post, error) {
	query := `
		SELECT p.id, p.channel_id, p.content, p.media_only, p.posted_at, p.created_at
		FROM posts p
		LEFT JOIN enrichments e ON e.post_id = p.id
		WHERE e.post_id IS NULL
		ORDER BY p.posted_at ASC, p.id ASC
		LIMIT ?
	`
	return s.queryPosts(ctx, query, limit)
}

// ListUnenrichedByChannel is ListUnenriched filtered to one channel.
func (s *SQLiteStore) ListUnenrichedByChannel(ctx context.Context, channelID string, limit int) ([]*Post, error) {
	query := `
		SELECT p.id, p.channel_id, p.content, p.media_only, p.posted_at, p.created_at
		FROM posts p
		LEFT JOIN enrichments e ON e.post_id = p.id
		WHERE e.post_id IS NULL AND p.channel_id = ?
		ORDER BY p.posted_at ASC, p.id ASC
		LIMIT ?
	`
	return s.queryPosts(ctx, query, channelID, limit)
}

// CountPosts returns the total number of posts.
func (s *SQLiteStore) CountPosts(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// CountEnriched returns the number of posts with an enrichment record.
func (s *SQLiteStore) CountEnriched(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM enrichments").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count enrichments: %w", err)
	}
	return count, nil
}

// queryPosts runs a post-returning query and scans the rows.
func (s *SQLiteStore) queryPosts(ctx context.Context, query string, args ...interface{}) ([]*Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []*Post{}
	for rows.Next() {
		var post Post
		var postedAt, createdAt int64

		if err := rows.Scan(
			&post.ID, &post.ChannelID, &post.Content, &post.MediaOnly,
			&postedAt, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}

		post.PostedAt = time.Unix(postedAt, 0).UTC()
		post.CreatedAt = time.Unix(createdAt, 0).UTC()
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return posts, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close posts database: %w", err)
	}
	return nil
}
