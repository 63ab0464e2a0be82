package store

import (
	"time"

	"github.com/ferrarinobrakes/oddsboard/internal/domain"
)

// Action is the closed set of board transitions. Every implementation is a
// value type handled exhaustively by Reduce.
type Action interface {
	isAction()
}

// SetSport changes the sport filter. The league filter drops back to "all"
// and accumulated matches are cleared; a fresh load is expected to follow.
type SetSport struct {
	Sport string
}

// SetWindow changes the time-window filter, keeping sport and league.
type SetWindow struct {
	Window domain.TimeWindow
}

// SetLeague filters client-side only: no clearing, no refetch.
type SetLeague struct {
	League string
}

// LoadStarted marks a fresh or periodic load in flight. Prior matches stay
// visible until it resolves.
type LoadStarted struct{}

// LoadMoreStarted marks an incremental page load in flight.
type LoadMoreStarted struct{}

// LoadSucceeded replaces the match list wholesale. Total is nil when the
// source does not report one; the received count is recorded instead.
type LoadSucceeded struct {
	Matches []domain.Match
	Total   *int
	At      time.Time
}

// MoreSucceeded appends one further page in received order.
type MoreSucceeded struct {
	Matches []domain.Match
	At      time.Time
}

// LoadFailed records the error and clears both loading flags. Matches
// already loaded are retained.
type LoadFailed struct {
	Err string
}

// ToggleDetails flips the detail expansion for one match row.
type ToggleDetails struct {
	MatchID string
}

// ToggleBookmakers flips the bookmaker-list expansion for one match row.
type ToggleBookmakers struct {
	MatchID string
}

// SetSort records a sort preference for one match row.
type SetSort struct {
	MatchID string
	Key     domain.SortKey
}

// MatchUpdated swaps in a newer snapshot of one match, carrying fresh
// scores or odds. The match is replaced whole, never field-patched; an
// update for an unknown identifier is ignored.
type MatchUpdated struct {
	Match domain.Match
}

// ResetPaging clears the list and starts over at page zero with has-more
// assumed, used ahead of a manual full refresh.
type ResetPaging struct{}

func (SetSport) isAction()         {}
func (SetWindow) isAction()        {}
func (SetLeague) isAction()        {}
func (LoadStarted) isAction()      {}
func (LoadMoreStarted) isAction()  {}
func (LoadSucceeded) isAction()    {}
func (MoreSucceeded) isAction()    {}
func (LoadFailed) isAction()       {}
func (ToggleDetails) isAction()    {}
func (ToggleBookmakers) isAction() {}
func (SetSort) isAction()          {}
func (MatchUpdated) isAction()     {}
func (ResetPaging) isAction()      {}
