// Package monitor orchestrates the periodic fetch/compare/notify/persist loop.
package monitor

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"webwatch/internal/common"
	"webwatch/internal/config"
)

// ContentFetcher retrieves the comparable text content of a URL.
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ChangeNotifier delivers a notification for one detected change.
type ChangeNotifier interface {
	NotifyChange(ctx context.Context, url, oldContent, newContent string) error
}

// SnapshotStore loads and replaces the full url → content snapshot mapping.
type SnapshotStore interface {
	Load(ctx context.Context) (map[string]string, error)
	Save(ctx context.Context, snapshots map[string]string) error
}

// Service runs one monitoring cycle at a time: load the snapshot set, fan the
// per-URL checks out over a bounded worker pool, reduce the results into a
// fresh mapping and persist it.
type Service struct {
	cfg      *config.MonitorConfig
	store    SnapshotStore
	fetcher  ContentFetcher
	notifier ChangeNotifier
	logger   zerolog.Logger
}

// NewService creates a new monitoring Service.
func NewService(
	cfg *config.MonitorConfig,
	store SnapshotStore,
	fetcher ContentFetcher,
	notifier ChangeNotifier,
	logger zerolog.Logger,
) *Service {
	return &Service{
		cfg:      cfg,
		store:    store,
		fetcher:  fetcher,
		notifier: notifier,
		logger:   logger.With().Str("component", "MonitorService").Logger(),
	}
}

// checkJob is one unit of per-cycle work: a URL and its baseline snapshot.
type checkJob struct {
	url      string
	baseline string
}

// checkResult is the reduced outcome for one URL after a cycle.
type checkResult struct {
	url     string
	content string
}

// RunCycle performs a single monitoring pass over every known URL. Storage
// load failures are returned (the loop cannot proceed without a baseline);
// everything else is recovered locally. When the context is cancelled
// mid-cycle the partial results are abandoned without persisting.
func (s *Service) RunCycle(ctx context.Context) error {
	snapshots, err := s.store.Load(ctx)
	if err != nil {
		return common.WrapError(err, "loading snapshot set")
	}
	s.logger.Info().Int("url_count", len(snapshots)).Msg("Cycle started")

	updated := s.checkAll(ctx, snapshots)

	if ctx.Err() != nil {
		s.logger.Info().Msg("Cycle interrupted, abandoning partial results without persisting")
		return nil
	}

	if err := s.store.Save(ctx, updated); err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist snapshot set, continuing with previous state")
	}

	usage := common.GetResourceUsage()
	s.logger.Debug().
		Int64("alloc_mb", usage.AllocMB).
		Int("goroutines", usage.Goroutines).
		Float64("sys_mem_used_percent", usage.SystemMemUsedPercent).
		Float64("cpu_percent", usage.CPUUsagePercent).
		Msg("Cycle resource usage")

	return nil
}

// checkAll fans the per-URL checks out over the worker pool and joins before
// reducing into a single mapping. Each URL is written only by its own worker,
// so the reduce step needs no per-key coordination.
func (s *Service) checkAll(ctx context.Context, snapshots map[string]string) map[string]string {
	numWorkers := s.cfg.MaxConcurrentChecks
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if numWorkers > len(snapshots) {
		numWorkers = len(snapshots)
	}

	jobs := make(chan checkJob, len(snapshots))
	results := make(chan checkResult, len(snapshots))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- checkResult{url: job.url, content: s.checkURL(ctx, job.url, job.baseline)}
			}
		}()
	}

	for url, baseline := range snapshots {
		jobs <- checkJob{url: url, baseline: baseline}
	}
	close(jobs)
	wg.Wait()
	close(results)

	updated := make(map[string]string, len(snapshots))
	for result := range results {
		updated[result.url] = result.content
	}
	return updated
}

// checkURL fetches one URL and decides its next snapshot value. A fetch
// failure keeps the baseline; a first observation stores the content without
// notifying; a change notifies and stores the new content.
func (s *Service) checkURL(ctx context.Context, url, baseline string) string {
	content, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger.Warn().Err(err).Str("url", url).Msg("Failed to fetch content, keeping previous snapshot")
		return baseline
	}

	if baseline == "" {
		s.logger.Info().Str("url", url).Msg("First observation, storing initial content")
		return content
	}

	if content != baseline {
		s.logger.Info().Str("url", url).Msg("Change detected")
		if err := s.notifier.NotifyChange(ctx, url, baseline, content); err != nil {
			s.logger.Error().Err(err).Str("url", url).Msg("Failed to send change notification")
		}
		return content
	}

	return baseline
}
