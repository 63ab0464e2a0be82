package service

import (
	"context"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"github.com/ferrarinobrakes/oddsboard/internal/domain"
	"github.com/ferrarinobrakes/oddsboard/internal/odds"
	"github.com/ferrarinobrakes/oddsboard/internal/oddsapi"
	"github.com/ferrarinobrakes/oddsboard/internal/store"
)

// Source is the paginated odds feed the board loads from.
type Source interface {
	List(ctx context.Context, q oddsapi.Query) (*oddsapi.ListResponse, error)
}

// Board drives one browsing session's store: it turns user intents into
// dispatched actions and orchestrates the fetches they imply.
type Board struct {
	store  *store.Store
	source Source
	logger zerolog.Logger
}

func NewBoard(sport string, window domain.TimeWindow, pageSize int, source Source, logger zerolog.Logger) *Board {
	return &Board{
		store:  store.New(sport, window, pageSize),
		source: source,
		logger: logger.With().Str("component", "board").Logger(),
	}
}

// fetchTag records the filter context and list generation a request was
// issued for. A response whose tag no longer matches current state is
// discarded, not applied: the list it was fetched for no longer exists.
type fetchTag struct {
	requestID string
	epoch     int
	sport     string
	window    domain.TimeWindow
}

func (b *Board) tag(s store.State) fetchTag {
	return fetchTag{
		requestID: gonanoid.Must(8),
		epoch:     s.Epoch,
		sport:     s.Sport,
		window:    s.Window,
	}
}

func (b *Board) stale(t fetchTag) bool {
	cur := b.store.Snapshot()
	return cur.Epoch != t.epoch || cur.Sport != t.sport || cur.Window != t.window
}

// Snapshot returns the board's current state.
func (b *Board) Snapshot() store.State {
	return b.store.Snapshot()
}

// Matches returns the display view of the current state: league, structural
// and time-window filters applied in order.
func (b *Board) Matches() []domain.Match {
	s := b.store.Snapshot()
	return odds.Filter(s.Matches, s.League, s.Window)
}

// Refresh performs a fresh load with the current filters. Prior matches
// stay visible until the load resolves.
func (b *Board) Refresh(ctx context.Context) store.State {
	snap := b.store.Dispatch(store.LoadStarted{})
	t := b.tag(snap)

	resp, err := b.source.List(ctx, oddsapi.Query{
		Sport:    snap.Sport,
		Window:   snap.Window,
		PageSize: snap.PageSize,
		Skip:     0,
	})

	if b.stale(t) {
		// The filter context moved on while this request was in flight.
		// Dropping the response is a cancellation, not an error.
		b.logger.Debug().Str("request_id", t.requestID).Msg("discarding stale refresh response")
		return b.store.Snapshot()
	}
	if err != nil {
		b.logger.Error().Err(err).Str("request_id", t.requestID).Msg("refresh failed")
		return b.store.Dispatch(store.LoadFailed{Err: err.Error()})
	}

	return b.store.Dispatch(store.LoadSucceeded{
		Matches: resp.Data,
		Total:   resp.Total,
		At:      time.Now(),
	})
}

// LoadMore fetches the next page and appends it. It is a no-op while a
// load-more is already in flight or when the last response indicated no
// further results.
func (b *Board) LoadMore(ctx context.Context) store.State {
	snap := b.store.Snapshot()
	if snap.LoadingMore || !snap.HasMore {
		b.logger.Debug().
			Bool("loading_more", snap.LoadingMore).
			Bool("has_more", snap.HasMore).
			Msg("load-more skipped")
		return snap
	}

	snap = b.store.Dispatch(store.LoadMoreStarted{})
	t := b.tag(snap)

	// Skip past every page already loaded; Page is read before the append
	// transition advances it.
	skip := (snap.Page + 1) * snap.PageSize

	resp, err := b.source.List(ctx, oddsapi.Query{
		Sport:    snap.Sport,
		Window:   snap.Window,
		PageSize: snap.PageSize,
		Skip:     skip,
	})

	if b.stale(t) {
		b.logger.Debug().Str("request_id", t.requestID).Msg("discarding stale load-more response")
		return b.store.Snapshot()
	}
	if err != nil {
		b.logger.Error().Err(err).Str("request_id", t.requestID).Msg("load-more failed")
		return b.store.Dispatch(store.LoadFailed{Err: err.Error()})
	}

	return b.store.Dispatch(store.MoreSucceeded{
		Matches: resp.Data,
		At:      time.Now(),
	})
}

// SetSport switches the sport filter and reloads. The reducer resets the
// league filter and clears accumulated matches before the fetch resolves.
func (b *Board) SetSport(ctx context.Context, sport string) store.State {
	b.store.Dispatch(store.SetSport{Sport: sport})
	return b.Refresh(ctx)
}

// SetWindow switches the time-window filter and reloads, keeping sport and
// league.
func (b *Board) SetWindow(ctx context.Context, window domain.TimeWindow) store.State {
	b.store.Dispatch(store.SetWindow{Window: window})
	return b.Refresh(ctx)
}

// SetLeague narrows the display client-side. Loaded matches already cover
// every league of the current sport, so no refetch happens.
func (b *Board) SetLeague(league string) store.State {
	return b.store.Dispatch(store.SetLeague{League: league})
}

// Reset clears pagination ahead of a manual full refresh.
func (b *Board) Reset(ctx context.Context) store.State {
	b.store.Dispatch(store.ResetPaging{})
	return b.Refresh(ctx)
}

func (b *Board) ToggleDetails(matchID string) store.State {
	return b.store.Dispatch(store.ToggleDetails{MatchID: matchID})
}

func (b *Board) ToggleBookmakers(matchID string) store.State {
	return b.store.Dispatch(store.ToggleBookmakers{MatchID: matchID})
}

func (b *Board) SetSort(matchID string, key domain.SortKey) store.State {
	return b.store.Dispatch(store.SetSort{MatchID: matchID, Key: key})
}

// ApplyMatchUpdate swaps in a pushed score/odds snapshot for one match.
func (b *Board) ApplyMatchUpdate(m domain.Match) store.State {
	return b.store.Dispatch(store.MatchUpdated{Match: m})
}
