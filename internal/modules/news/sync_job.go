package news

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SyncJob polls the configured RSS feeds and upserts every entry found.
// It is scheduled hourly and also runs once at startup.
type SyncJob struct {
	fetcher *Fetcher
	repo    *Repository
	feeds   []string
	timeout time.Duration
	log     zerolog.Logger
}

// NewSyncJob creates a news sync job.
func NewSyncJob(fetcher *Fetcher, repo *Repository, feeds []string, log zerolog.Logger) *SyncJob {
	return &SyncJob{
		fetcher: fetcher,
		repo:    repo,
		feeds:   feeds,
		timeout: 2 * time.Minute,
		log:     log.With().Str("job", "news_sync").Logger(),
	}
}

// Run fetches every configured feed and stores its entries. A failing
// feed is logged and skipped so the remaining feeds are still processed;
// there is no retry before the next scheduled run.
func (j *SyncJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	for _, feedURL := range j.feeds {
		items, err := j.fetcher.Fetch(ctx, feedURL)
		if err != nil {
			j.log.Error().Err(err).Str("feed", feedURL).Msg("Feed fetch failed, skipping")
			continue
		}

		stored := 0
		for _, item := range items {
			if err := j.repo.Upsert(item); err != nil {
				j.log.Error().Err(err).Str("link", item.Link).Msg("Failed to store news item")
				continue
			}
			stored++
		}

		j.log.Info().
			Str("feed", feedURL).
			Int("entries", len(items)).
			Int("stored", stored).
			Msg("Feed synced")
	}

	return nil
}

// Name returns the job name for scheduling and logging.
func (j *SyncJob) Name() string {
	return "news_sync"
}
