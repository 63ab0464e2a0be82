package odds

import (
	"math"
	"strings"

	"github.com/ferrarinobrakes/oddsboard/internal/constants"
	"github.com/ferrarinobrakes/oddsboard/internal/domain"
)

// Selection names one of the up to three outcomes of a match-winner market.
type Selection int

const (
	SelectionHome Selection = iota
	SelectionAway
	SelectionDraw
)

// BestPrice scans every bookmaker's first market and returns the maximum
// price quoted for the selected outcome. The second return value is false
// when no bookmaker offers a resolvable quote for that outcome.
//
// Outcome order inside a market carries no meaning, so outcomes are matched
// by name: home and away by exact equality with the canonical team names,
// draw by a case-insensitive substring match for "draw" or "tie" among the
// outcomes not named after either team. A
// bookmaker whose labels match neither rule is skipped for that selection.
func BestPrice(bookmakers []domain.Bookmaker, home, away string, sel Selection) (float64, bool) {
	best := 0.0
	found := false

	for _, bm := range bookmakers {
		if len(bm.Markets) == 0 {
			continue
		}
		outcome, ok := resolve(bm.Markets[0].Outcomes, home, away, sel)
		if !ok {
			continue
		}
		if outcome.Price > best {
			best = outcome.Price
			found = true
		}
	}

	if !found {
		return 0, false
	}
	return best, true
}

// resolve picks the outcome matching sel out of an arbitrarily ordered
// outcome list. A 2-outcome market has no draw; every other shape applies
// the same name rules as the 3-outcome case.
func resolve(outcomes []domain.Outcome, home, away string, sel Selection) (domain.Outcome, bool) {
	if len(outcomes) == 0 {
		return domain.Outcome{}, false
	}

	if sel == SelectionDraw && len(outcomes) == 2 {
		return domain.Outcome{}, false
	}

	for _, o := range outcomes {
		switch sel {
		case SelectionHome:
			if o.Name == home {
				return o, true
			}
		case SelectionAway:
			if o.Name == away {
				return o, true
			}
		case SelectionDraw:
			// Team names take precedence: an outcome labelled with either
			// team is never the draw, whatever substring it carries.
			if o.Name == home || o.Name == away {
				continue
			}
			if isDrawName(o.Name) {
				return o, true
			}
		}
	}
	return domain.Outcome{}, false
}

func isDrawName(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "draw") || strings.Contains(lower, "tie")
}

// ReferencePrice derives the board's own displayed price from a best price:
// a fixed markup, rounded to two decimals.
func ReferencePrice(best float64) float64 {
	return math.Round(best*constants.MarkupRate*100) / 100
}

// Price pairs a best quote with its derived reference price.
type Price struct {
	Best      float64 `json:"best"`
	Reference float64 `json:"reference"`
}

// MatchPrices holds the optional best/reference pair for each outcome of a
// match. A nil entry means no bookmaker quoted that outcome; it is rendered
// as a placeholder, never as zero.
type MatchPrices struct {
	Home *Price `json:"home,omitempty"`
	Away *Price `json:"away,omitempty"`
	Draw *Price `json:"draw,omitempty"`
}

// Prices computes best and reference prices for all three selections of a
// single match.
func Prices(m domain.Match) MatchPrices {
	var p MatchPrices
	p.Home = priceFor(m, SelectionHome)
	p.Away = priceFor(m, SelectionAway)
	p.Draw = priceFor(m, SelectionDraw)
	return p
}

func priceFor(m domain.Match, sel Selection) *Price {
	best, ok := BestPrice(m.Bookmakers, m.HomeTeam, m.AwayTeam, sel)
	if !ok {
		return nil
	}
	return &Price{Best: best, Reference: ReferencePrice(best)}
}
