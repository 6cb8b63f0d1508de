package monitor

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"webwatch/internal/config"
)

// Scheduler drives the Service: one cycle immediately at startup, then one
// every check interval until the context is cancelled or the configured
// maximum number of cycles is reached.
type Scheduler struct {
	cfg     *config.MonitorConfig
	service *Service
	logger  zerolog.Logger
}

// NewScheduler creates a new monitor scheduler.
func NewScheduler(cfg *config.MonitorConfig, service *Service, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		service: service,
		logger:  logger.With().Str("component", "MonitorScheduler").Logger(),
	}
}

// Run blocks until the context is cancelled, the cycle budget is exhausted or
// a cycle fails fatally. A clean interrupt returns nil.
func (s *Scheduler) Run(ctx context.Context) error {
	interval := s.cfg.CheckInterval()
	s.logger.Info().
		Dur("interval", interval).
		Int("max_concurrent_checks", s.cfg.MaxConcurrentChecks).
		Msg("Starting monitoring loop")

	cycles := 0
	for {
		if err := s.service.RunCycle(ctx); err != nil {
			return err
		}
		if ctx.Err() != nil {
			s.logger.Info().Msg("Interrupt received, shutting down gracefully...")
			return nil
		}

		cycles++
		if s.cfg.MaxCycles > 0 && cycles >= s.cfg.MaxCycles {
			s.logger.Info().Int("cycles", cycles).Msg("Configured cycle budget reached, stopping")
			return nil
		}

		s.logger.Info().Dur("next_run_in", interval).Msg("Check completed, sleeping until next cycle")
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Interrupt received, shutting down gracefully...")
			return nil
		case <-time.After(interval):
		}
	}
}
