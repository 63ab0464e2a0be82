package odds

import (
	"github.com/ferrarinobrakes/oddsboard/internal/domain"
)

// Filter applies the board's client-side display filters in order: league,
// then a structural check dropping matches with no bookmaker quotes, then
// the time window. The input slice is never mutated and relative order is
// preserved.
func Filter(matches []domain.Match, league string, window domain.TimeWindow) []domain.Match {
	result := make([]domain.Match, 0, len(matches))
	for _, m := range matches {
		if !leagueMatches(m, league) {
			continue
		}
		// A match with no quotes is not actionable and never reaches
		// rendering or the price calculator.
		if len(m.Bookmakers) == 0 {
			continue
		}
		if !windowMatches(m, window) {
			continue
		}
		result = append(result, m)
	}
	return result
}

func leagueMatches(m domain.Match, league string) bool {
	if league == "" || league == domain.LeagueAll {
		return true
	}
	return m.SportKey == league
}

func windowMatches(m domain.Match, window domain.TimeWindow) bool {
	switch window {
	case domain.WindowInPlay:
		return m.IsLive()
	case domain.WindowResults:
		return m.IsCompleted()
	default:
		// live-and-upcoming: everything not yet completed.
		return !m.IsCompleted()
	}
}
