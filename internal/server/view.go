package server

import (
	"context"
	"time"

	"github.com/ferrarinobrakes/oddsboard/internal/domain"
	"github.com/ferrarinobrakes/oddsboard/internal/odds"
	"github.com/ferrarinobrakes/oddsboard/internal/service"
	"github.com/ferrarinobrakes/oddsboard/internal/store"
)

// BoardView is the JSON snapshot a client renders: current filters,
// pagination, loading flags and the filtered match rows annotated with
// prices, toggles, logos and follow state.
type BoardView struct {
	ID     string            `json:"id"`
	Sport  string            `json:"sport"`
	Window domain.TimeWindow `json:"window"`
	League string            `json:"league"`

	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalKnown bool `json:"total_known"`
	HasMore    bool `json:"has_more"`

	Loading     bool `json:"loading"`
	LoadingMore bool `json:"loading_more"`

	LastUpdated time.Time `json:"last_updated"`
	LastError   string    `json:"last_error,omitempty"`

	Matches []MatchView `json:"matches"`
}

type MatchView struct {
	domain.Match

	Prices odds.MatchPrices `json:"prices"`

	DetailsExpanded    bool           `json:"details_expanded"`
	BookmakersExpanded bool           `json:"bookmakers_expanded"`
	SortKey            domain.SortKey `json:"sort_key,omitempty"`

	HomeLogo string `json:"home_logo"`
	AwayLogo string `json:"away_logo"`

	HomeFollowed bool `json:"home_followed"`
	AwayFollowed bool `json:"away_followed"`
}

func (h *Handler) boardView(ctx context.Context, id string, board *service.Board, snap store.State) BoardView {
	visible := odds.Filter(snap.Matches, snap.League, snap.Window)

	followed, err := h.favorites.FollowedSet(ctx)
	if err != nil {
		// Follow state is an annotation; the board still renders.
		h.logger.Warn().Err(err).Msg("failed to load followed teams")
		followed = map[string]bool{}
	}

	matches := make([]MatchView, 0, len(visible))
	for _, m := range visible {
		matches = append(matches, MatchView{
			Match:              m,
			Prices:             odds.Prices(m),
			DetailsExpanded:    snap.ExpandedDetails[m.ID],
			BookmakersExpanded: snap.ExpandedBookmakers[m.ID],
			SortKey:            snap.SortKeys[m.ID],
			HomeLogo:           h.logos.Lookup(ctx, m.HomeTeam, m.SportKey),
			AwayLogo:           h.logos.Lookup(ctx, m.AwayTeam, m.SportKey),
			HomeFollowed:       followed[m.HomeTeam],
			AwayFollowed:       followed[m.AwayTeam],
		})
	}

	return BoardView{
		ID:          id,
		Sport:       snap.Sport,
		Window:      snap.Window,
		League:      snap.League,
		Page:        snap.Page,
		PageSize:    snap.PageSize,
		Total:       snap.Total,
		TotalKnown:  snap.TotalKnown,
		HasMore:     snap.HasMore,
		Loading:     snap.Loading,
		LoadingMore: snap.LoadingMore,
		LastUpdated: snap.LastUpdated,
		LastError:   snap.LastError,
		Matches:     matches,
	}
}
