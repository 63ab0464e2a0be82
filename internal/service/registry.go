package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ferrarinobrakes/oddsboard/internal/config"
	"github.com/ferrarinobrakes/oddsboard/internal/domain"
	"github.com/ferrarinobrakes/oddsboard/internal/store"
)

// Registry tracks the live browsing sessions, one board each. Boards are
// created with filters seeded from the caller's navigation context and
// dropped when the session closes.
type Registry struct {
	source   Source
	pageSize int
	logger   zerolog.Logger

	mu     sync.RWMutex
	boards map[string]*Board
}

func NewRegistry(cfg *config.Config, source Source, logger zerolog.Logger) *Registry {
	return &Registry{
		source:   source,
		pageSize: cfg.PageSize,
		logger:   logger,
		boards:   make(map[string]*Board),
	}
}

// Open creates a session board and performs its initial load.
func (r *Registry) Open(ctx context.Context, sport string, window domain.TimeWindow) (string, store.State) {
	id := uuid.New().String()
	board := NewBoard(sport, window, r.pageSize, r.source, r.logger)

	r.mu.Lock()
	r.boards[id] = board
	r.mu.Unlock()

	r.logger.Info().Str("board_id", id).Str("sport", sport).Str("window", string(window)).Msg("board opened")
	return id, board.Refresh(ctx)
}

func (r *Registry) Get(id string) (*Board, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	board, ok := r.boards[id]
	if !ok {
		return nil, fmt.Errorf("board %s not found", id)
	}
	return board, nil
}

func (r *Registry) Close(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.boards, id)
}

// Boards returns the currently open boards, for the refresh scheduler.
func (r *Registry) Boards() []*Board {
	r.mu.RLock()
	defer r.mu.RUnlock()
	boards := make([]*Board, 0, len(r.boards))
	for _, b := range r.boards {
		boards = append(boards, b)
	}
	return boards
}
