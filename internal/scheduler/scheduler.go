package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ferrarinobrakes/oddsboard/internal/config"
	"github.com/ferrarinobrakes/oddsboard/internal/constants"
	"github.com/ferrarinobrakes/oddsboard/internal/service"
	"github.com/ferrarinobrakes/oddsboard/internal/store"
)

// Refreshable is the slice of a board the scheduler needs: a way to read
// the loading flags and a way to trigger a fresh load.
type Refreshable interface {
	Snapshot() store.State
	Refresh(ctx context.Context) store.State
}

// Scheduler fires a fresh load on every open board at a fixed interval. A
// board with a load or load-more in flight is skipped for that tick so an
// append never races a replace; there is no backoff, the next tick retries
// unconditionally.
type Scheduler struct {
	registry *service.Registry
	interval time.Duration
	logger   zerolog.Logger
}

func New(cfg *config.Config, registry *service.Registry, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		registry: registry,
		interval: cfg.RefreshInterval,
		logger:   logger.With().Str("component", "scheduler").Logger(),
	}
}

// Run blocks until ctx is cancelled, ticking at the configured interval.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("refresh scheduler starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("refresh scheduler stopped")
			return
		case <-ticker.C:
			s.tickAll(ctx)
		}
	}
}

func (s *Scheduler) tickAll(ctx context.Context) {
	for _, board := range s.registry.Boards() {
		s.Tick(ctx, board)
	}
}

// Tick refreshes one board unless a load is already in flight.
func (s *Scheduler) Tick(ctx context.Context, board Refreshable) {
	snap := board.Snapshot()
	if snap.Loading || snap.LoadingMore {
		s.logger.Debug().
			Bool("loading", snap.Loading).
			Bool("loading_more", snap.LoadingMore).
			Msg("skipping refresh, load in flight")
		return
	}

	tickCtx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	next := board.Refresh(tickCtx)
	if next.LastError != "" {
		// No backoff: the error stays visible until the next tick or a
		// manual refresh succeeds.
		s.logger.Warn().Str("error", next.LastError).Msg("periodic refresh failed")
	}
}
