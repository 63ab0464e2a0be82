package odds_test

import (
	"testing"

	"github.com/ferrarinobrakes/oddsboard/internal/domain"
	"github.com/ferrarinobrakes/oddsboard/internal/odds"
)

func quoted() []domain.Bookmaker {
	return []domain.Bookmaker{{Title: "bookie", Markets: market(
		domain.Outcome{Name: "A", Price: 2.0},
		domain.Outcome{Name: "B", Price: 3.0},
	)}}
}

func TestFilterLeague(t *testing.T) {
	matches := []domain.Match{
		{ID: "1", SportKey: "soccer_epl", Bookmakers: quoted()},
		{ID: "2", SportKey: "soccer_laliga", Bookmakers: quoted()},
		{ID: "3", SportKey: "soccer_epl", Bookmakers: quoted()},
	}

	tests := []struct {
		name   string
		league string
		want   []string
	}{
		{"specific league", "soccer_epl", []string{"1", "3"}},
		{"match all", domain.LeagueAll, []string{"1", "2", "3"}},
		{"unset", "", []string{"1", "2", "3"}},
		{"no match", "soccer_serie_a", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := odds.Filter(matches, tt.league, domain.WindowUpcoming)
			assertIDs(t, got, tt.want)
		})
	}
}

func TestFilterDropsMatchesWithoutQuotes(t *testing.T) {
	matches := []domain.Match{
		{ID: "1", Bookmakers: quoted()},
		{ID: "2"},
		{ID: "3", Bookmakers: []domain.Bookmaker{}},
		{ID: "4", Bookmakers: quoted()},
	}

	got := odds.Filter(matches, domain.LeagueAll, domain.WindowUpcoming)
	assertIDs(t, got, []string{"1", "4"})
}

func TestFilterTimeWindow(t *testing.T) {
	matches := []domain.Match{
		{ID: "live", Bookmakers: quoted(), Score: &domain.Score{Live: true}},
		{ID: "upcoming", Bookmakers: quoted()},
		{ID: "done-flag", Bookmakers: quoted(), Completed: true},
		{ID: "done-score", Bookmakers: quoted(), Score: &domain.Score{Completed: true}},
		{ID: "live-but-done", Bookmakers: quoted(), Completed: true, Score: &domain.Score{Live: true}},
	}

	tests := []struct {
		name   string
		window domain.TimeWindow
		want   []string
	}{
		{"in-play", domain.WindowInPlay, []string{"live"}},
		{"live and upcoming", domain.WindowUpcoming, []string{"live", "upcoming"}},
		{"results", domain.WindowResults, []string{"done-flag", "done-score", "live-but-done"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := odds.Filter(matches, domain.LeagueAll, tt.window)
			assertIDs(t, got, tt.want)
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	matches := []domain.Match{
		{ID: "1", Completed: true, Bookmakers: quoted()},
		{ID: "2", Bookmakers: quoted()},
	}

	odds.Filter(matches, domain.LeagueAll, domain.WindowResults)

	if matches[0].ID != "1" || matches[1].ID != "2" {
		t.Error("input slice was reordered")
	}
	if len(matches) != 2 {
		t.Error("input slice length changed")
	}
}

func assertIDs(t *testing.T, got []domain.Match, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d matches, want %d", len(got), len(want))
	}
	for i, m := range got {
		if m.ID != want[i] {
			t.Errorf("match[%d] = %s, want %s", i, m.ID, want[i])
		}
	}
}
