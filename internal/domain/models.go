package domain

import (
	"time"
)

// TimeWindow selects which slice of the schedule a board shows.
type TimeWindow string

const (
	// WindowInPlay keeps only matches that are live right now.
	WindowInPlay TimeWindow = "in-play"
	// WindowUpcoming keeps live and not-yet-completed matches. This is the
	// data source's default window, so it needs no request parameter.
	WindowUpcoming TimeWindow = "live-upcoming"
	// WindowResults keeps only completed matches.
	WindowResults TimeWindow = "results"
)

// Valid reports whether w is one of the three recognized windows.
func (w TimeWindow) Valid() bool {
	switch w {
	case WindowInPlay, WindowUpcoming, WindowResults:
		return true
	}
	return false
}

// SortKey is a per-match row sort preference chosen by the user.
type SortKey string

const (
	SortByPrice     SortKey = "price"
	SortByBookmaker SortKey = "bookmaker"
)

// LeagueAll is the league filter value that matches every league.
const LeagueAll = "all"

type Match struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	SportTitle   string      `json:"sport_title"`
	League       string      `json:"league,omitempty"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	CommenceTime time.Time   `json:"commence_time"`
	Completed    bool        `json:"completed"`
	Score        *Score      `json:"scores,omitempty"`
	Bookmakers   []Bookmaker `json:"bookmakers,omitempty"`
}

// Score is the optional live-score sub-record attached to a match.
type Score struct {
	Live      bool   `json:"live"`
	Completed bool   `json:"completed"`
	Home      string `json:"home,omitempty"`
	Away      string `json:"away,omitempty"`
}

type Bookmaker struct {
	Key        string    `json:"key"`
	Title      string    `json:"title"`
	LastUpdate time.Time `json:"last_update"`
	Markets    []Market  `json:"markets"`
}

type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is one possible result with its offered decimal price.
type Outcome struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// IsCompleted is true when either the match-level flag or the live-score
// completion flag says the match has finished.
func (m Match) IsCompleted() bool {
	if m.Completed {
		return true
	}
	return m.Score != nil && m.Score.Completed
}

// IsLive is true when the live-score record marks the match as in play and
// it has not completed by either flag.
func (m Match) IsLive() bool {
	return m.Score != nil && m.Score.Live && !m.IsCompleted()
}
