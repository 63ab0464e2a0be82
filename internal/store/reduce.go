package store

import (
	"github.com/ferrarinobrakes/oddsboard/internal/domain"
)

// Reduce applies one action to a state and returns the next state. It is
// pure: the input is never modified and no clock or I/O is consulted.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case SetSport:
		s = s.clearMatches()
		s.Sport = act.Sport
		s.League = domain.LeagueAll
		return s

	case SetWindow:
		s = s.clearMatches()
		s.Window = act.Window
		return s

	case SetLeague:
		s = s.cloneMaps()
		s.League = act.League
		return s

	case LoadStarted:
		s = s.cloneMaps()
		s.Loading = true
		s.LastError = ""
		return s

	case LoadMoreStarted:
		s = s.cloneMaps()
		s.LoadingMore = true
		s.LastError = ""
		return s

	case LoadSucceeded:
		s = s.cloneMaps()
		s.Matches = act.Matches
		s.Page = 0
		// Replacing the list starts a new generation: an append fetched
		// against the previous list must not land on this one.
		s.Epoch++
		// A full page implies more may exist. This stays true even when
		// the reported total is an exact multiple of the page size.
		s.HasMore = len(act.Matches) == s.PageSize
		if act.Total != nil {
			s.Total = *act.Total
			s.TotalKnown = true
		} else {
			s.Total = len(act.Matches)
			s.TotalKnown = false
		}
		s.LastUpdated = act.At
		s.Loading = false
		s.LoadingMore = false
		s.LastError = ""
		return s

	case MoreSucceeded:
		s = s.cloneMaps()
		merged := make([]domain.Match, 0, len(s.Matches)+len(act.Matches))
		merged = append(merged, s.Matches...)
		merged = append(merged, act.Matches...)
		s.Matches = merged
		s.Page++
		s.HasMore = len(act.Matches) == s.PageSize
		s.LastUpdated = act.At
		s.LoadingMore = false
		return s

	case LoadFailed:
		s = s.cloneMaps()
		s.LastError = act.Err
		s.Loading = false
		s.LoadingMore = false
		return s

	case ToggleDetails:
		s = s.cloneMaps()
		s.ExpandedDetails[act.MatchID] = !s.ExpandedDetails[act.MatchID]
		return s

	case ToggleBookmakers:
		s = s.cloneMaps()
		s.ExpandedBookmakers[act.MatchID] = !s.ExpandedBookmakers[act.MatchID]
		return s

	case SetSort:
		s = s.cloneMaps()
		s.SortKeys[act.MatchID] = act.Key
		return s

	case MatchUpdated:
		s = s.cloneMaps()
		for i, m := range s.Matches {
			if m.ID == act.Match.ID {
				updated := make([]domain.Match, len(s.Matches))
				copy(updated, s.Matches)
				updated[i] = act.Match
				s.Matches = updated
				break
			}
		}
		return s

	case ResetPaging:
		return s.clearMatches()
	}

	return s
}
