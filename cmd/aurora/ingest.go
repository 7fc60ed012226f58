package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"feedlens/aurora/pkg/cli"
	"feedlens/aurora/pkg/store"
)

// maxIngestLineBytes caps a single NDJSON line. Posts are short-form
// content; anything larger is a malformed row.
const maxIngestLineBytes = 1 << 20

var ingestFlags struct {
	channelID string
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Import posts from an NDJSON file into the post store",
	Long: `Import posts from a newline-delimited JSON file into the post store.

Each line is one post:

  {"id": "7c9e6679-7425-40de-944b-e07fc1f90ae7", "channel_id": "16fd2706-8baf-433b-82eb-8c7fada847da", "content": "Bitcoin hits new high", "media_only": false, "posted_at": "2026-03-05T10:00:00Z"}

A missing id is generated on save. Malformed rows are skipped and
counted. Pass "-" to read from stdin.

Examples:
  aurora ingest posts.ndjson
  cat posts.ndjson | aurora ingest -
  aurora ingest posts.ndjson --channel 16fd2706-8baf-433b-82eb-8c7fada847da`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestFlags.channelID, "channel", "", "channel id applied to rows that omit channel_id")
}

// ingestRow is the NDJSON shape accepted by the ingest command.
type ingestRow struct {
	ID        string    `json:"id"`
	ChannelID string    `json:"channel_id"`
	Content   string    `json:"content"`
	MediaOnly bool      `json:"media_only"`
	PostedAt  time.Time `json:"posted_at"`
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	logger, err := newCommandLogger(cfg)
	if err != nil {
		return err
	}

	posts, err := store.NewSQLiteStore(&store.SQLiteConfig{
		Path:        cfg.Store.Path,
		BusyTimeout: cfg.Store.BusyTimeout,
	})
	if err != nil {
		return cli.NewCommandError("ingest", fmt.Errorf("failed to open post store: %w", err))
	}
	defer posts.Close()

	var in io.Reader
	if args[0] == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			return cli.NewCommandError("ingest", err)
		}
		defer f.Close()
		in = f
	}

	ctx := cli.SetupSignalHandler()

	saved, failed, err := ingestPosts(ctx, posts, in, ingestFlags.channelID, logger)
	if err != nil {
		return cli.NewCommandError("ingest", err)
	}

	fmt.Printf("✓ Ingested %d posts (%d rows skipped)\n", saved, failed)

	total, countErr := posts.CountPosts(ctx)
	enriched, enrichedErr := posts.CountEnriched(ctx)
	if countErr == nil && enrichedErr == nil {
		fmt.Printf("Store now holds %d posts, %d enriched\n", total, enriched)
	}

	if failed > 0 {
		return cli.NewCommandError("ingest", fmt.Errorf("%d rows could not be imported", failed))
	}
	return nil
}

// ingestPosts reads NDJSON rows from r and saves them to the post store.
// Malformed rows are counted and logged, not fatal. Returns saved and
// skipped counts.
func ingestPosts(ctx context.Context, posts store.Store, r io.Reader, defaultChannel string, logger *slog.Logger) (int, int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxIngestLineBytes)

	var saved, failed, line int
	for scanner.Scan() {
		line++
		if ctx.Err() != nil {
			return saved, failed, ctx.Err()
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var row ingestRow
		if err := json.Unmarshal([]byte(text), &row); err != nil {
			failed++
			logger.Warn("skipping malformed row", "line", line, "error", err)
			continue
		}
		if row.ChannelID == "" {
			row.ChannelID = defaultChannel
		}

		post := &store.Post{
			ID:        row.ID,
			ChannelID: row.ChannelID,
			Content:   row.Content,
			MediaOnly: row.MediaOnly,
			PostedAt:  row.PostedAt,
		}
		if err := posts.SavePost(ctx, post); err != nil {
			failed++
			logger.Warn("failed to save post", "line", line, "post_id", row.ID, "error", err)
			continue
		}
		saved++
	}
	if err := scanner.Err(); err != nil {
		return saved, failed, fmt.Errorf("failed to read input: %w", err)
	}

	return saved, failed, nil
}
