package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ferrarinobrakes/oddsboard/internal/config"
	"github.com/ferrarinobrakes/oddsboard/internal/domain"
	"github.com/ferrarinobrakes/oddsboard/internal/scheduler"
	"github.com/ferrarinobrakes/oddsboard/internal/store"
)

type fakeBoard struct {
	snap      store.State
	refreshed int
}

func (f *fakeBoard) Snapshot() store.State { return f.snap }

func (f *fakeBoard) Refresh(ctx context.Context) store.State {
	f.refreshed++
	return f.snap
}

func newScheduler() *scheduler.Scheduler {
	cfg := &config.Config{RefreshInterval: time.Second}
	return scheduler.New(cfg, nil, zerolog.Nop())
}

func TestTickRefreshesIdleBoard(t *testing.T) {
	board := &fakeBoard{snap: store.NewState("football", domain.WindowUpcoming, 20)}

	newScheduler().Tick(context.Background(), board)

	if board.refreshed != 1 {
		t.Errorf("refreshed %d times, want 1", board.refreshed)
	}
}

func TestTickSkipsWhileLoadInFlight(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*store.State)
	}{
		{"initial load in flight", func(s *store.State) { s.Loading = true }},
		{"load-more in flight", func(s *store.State) { s.LoadingMore = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := store.NewState("football", domain.WindowUpcoming, 20)
			tt.mod(&snap)
			board := &fakeBoard{snap: snap}

			newScheduler().Tick(context.Background(), board)

			if board.refreshed != 0 {
				t.Errorf("refreshed a busy board %d times", board.refreshed)
			}
		})
	}
}
