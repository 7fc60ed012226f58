package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"feedlens/aurora/pkg/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestIngestPosts(t *testing.T) {
	input := `{"id": "7c9e6679-7425-40de-944b-e07fc1f90ae7", "channel_id": "16fd2706-8baf-433b-82eb-8c7fada847da", "content": "bitcoin hits new high", "posted_at": "2026-03-05T10:00:00Z"}
{"id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "channel_id": "16fd2706-8baf-433b-82eb-8c7fada847da", "content": "central bank raises rates"}
{"id": "6ba7b811-9dad-11d1-80b4-00c04fd430c8", "channel_id": "16fd2706-8baf-433b-82eb-8c7fada847da", "media_only": true}
`

	s := store.NewMemoryStore()
	saved, failed, err := ingestPosts(context.Background(), s, strings.NewReader(input), "", testLogger())
	if err != nil {
		t.Fatalf("ingestPosts() error = %v", err)
	}
	if saved != 3 {
		t.Errorf("saved = %d, want 3", saved)
	}
	if failed != 0 {
		t.Errorf("failed = %d, want 0", failed)
	}

	post, err := s.GetPost(context.Background(), "7c9e6679-7425-40de-944b-e07fc1f90ae7")
	if err != nil {
		t.Fatalf("GetPost() error = %v", err)
	}
	if post.Content != "bitcoin hits new high" {
		t.Errorf("Content = %q", post.Content)
	}
	if post.PostedAt.IsZero() {
		t.Error("PostedAt should be parsed from the row")
	}

	mediaPost, err := s.GetPost(context.Background(), "6ba7b811-9dad-11d1-80b4-00c04fd430c8")
	if err != nil {
		t.Fatalf("GetPost() error = %v", err)
	}
	if !mediaPost.MediaOnly {
		t.Error("MediaOnly should be preserved")
	}
}

func TestIngestPostsSkipsMalformedRows(t *testing.T) {
	input := `{"id": "7c9e6679-7425-40de-944b-e07fc1f90ae7", "content": "valid row"}
this is not json

{"id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "content": "another valid row"}
{"unterminated":
`

	s := store.NewMemoryStore()
	saved, failed, err := ingestPosts(context.Background(), s, strings.NewReader(input), "", testLogger())
	if err != nil {
		t.Fatalf("ingestPosts() error = %v", err)
	}
	if saved != 2 {
		t.Errorf("saved = %d, want 2", saved)
	}
	if failed != 2 {
		t.Errorf("failed = %d, want 2", failed)
	}
}

func TestIngestPostsDefaultChannel(t *testing.T) {
	input := `{"id": "7c9e6679-7425-40de-944b-e07fc1f90ae7", "content": "no channel on the row"}
`

	s := store.NewMemoryStore()
	saved, _, err := ingestPosts(context.Background(), s, strings.NewReader(input), "16fd2706-8baf-433b-82eb-8c7fada847da", testLogger())
	if err != nil {
		t.Fatalf("ingestPosts() error = %v", err)
	}
	if saved != 1 {
		t.Fatalf("saved = %d, want 1", saved)
	}

	post, err := s.GetPost(context.Background(), "7c9e6679-7425-40de-944b-e07fc1f90ae7")
	if err != nil {
		t.Fatalf("GetPost() error = %v", err)
	}
	if post.ChannelID != "16fd2706-8baf-433b-82eb-8c7fada847da" {
		t.Errorf("ChannelID = %q, want the default channel", post.ChannelID)
	}
}

func TestIngestPostsGeneratesID(t *testing.T) {
	input := `{"content": "row without an id"}
`

	s := store.NewMemoryStore()
	saved, failed, err := ingestPosts(context.Background(), s, strings.NewReader(input), "", testLogger())
	if err != nil {
		t.Fatalf("ingestPosts() error = %v", err)
	}
	if saved != 1 || failed != 0 {
		t.Fatalf("saved = %d, failed = %d, want 1, 0", saved, failed)
	}

	count, err := s.CountPosts(context.Background())
	if err != nil {
		t.Fatalf("CountPosts() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountPosts() = %d, want 1", count)
	}
}

func TestIngestPostsCancelledContext(t *testing.T) {
	input := `{"id": "7c9e6679-7425-40de-944b-e07fc1f90ae7", "content": "never read"}
`

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := store.NewMemoryStore()
	saved, _, err := ingestPosts(ctx, s, strings.NewReader(input), "", testLogger())
	if err == nil {
		t.Fatal("expected context error")
	}
	if saved != 0 {
		t.Errorf("saved = %d, want 0", saved)
	}
}
