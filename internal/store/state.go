package store

import (
	"maps"
	"time"

	"github.com/ferrarinobrakes/oddsboard/internal/domain"
)

// State is one immutable snapshot of a board. Transitions never mutate a
// State in place; Reduce returns a fresh value with copied maps.
type State struct {
	Sport  string
	Window domain.TimeWindow
	League string

	Matches []domain.Match

	// Page counts in page indexes: 0 after a fresh load, advanced by one
	// per applied append.
	Page     int
	PageSize int

	Total      int
	TotalKnown bool
	HasMore    bool

	Loading     bool
	LoadingMore bool

	LastUpdated time.Time
	LastError   string

	// Epoch increments on every transition that clears or wholesale-replaces
	// the match list, so in-flight responses issued against an earlier list
	// generation can be recognized and discarded.
	Epoch int

	ExpandedDetails    map[string]bool
	ExpandedBookmakers map[string]bool
	SortKeys           map[string]domain.SortKey
}

// NewState seeds a board from the incoming navigation context.
func NewState(sport string, window domain.TimeWindow, pageSize int) State {
	if !window.Valid() {
		window = domain.WindowUpcoming
	}
	return State{
		Sport:              sport,
		Window:             window,
		League:             domain.LeagueAll,
		PageSize:           pageSize,
		HasMore:            true,
		ExpandedDetails:    map[string]bool{},
		ExpandedBookmakers: map[string]bool{},
		SortKeys:           map[string]domain.SortKey{},
	}
}

func (s State) cloneMaps() State {
	s.ExpandedDetails = maps.Clone(s.ExpandedDetails)
	s.ExpandedBookmakers = maps.Clone(s.ExpandedBookmakers)
	s.SortKeys = maps.Clone(s.SortKeys)
	return s
}

// clearMatches empties the accumulated list and resets pagination. The
// per-match UI maps are dropped too: identifiers in the next result set are
// unrelated to the old ones.
func (s State) clearMatches() State {
	s.Matches = nil
	s.Page = 0
	s.Total = 0
	s.TotalKnown = false
	s.HasMore = true
	s.Epoch++
	s.ExpandedDetails = map[string]bool{}
	s.ExpandedBookmakers = map[string]bool{}
	s.SortKeys = map[string]domain.SortKey{}
	return s
}
