package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ferrarinobrakes/oddsboard/internal/config"
	"github.com/ferrarinobrakes/oddsboard/internal/domain"
	"github.com/ferrarinobrakes/oddsboard/internal/oddsapi"
	"github.com/ferrarinobrakes/oddsboard/internal/service"
)

func testConfig() *config.Config {
	return &config.Config{PageSize: 2}
}

// stubSource records queries and serves canned pages.
type stubSource struct {
	mu      sync.Mutex
	queries []oddsapi.Query
	respond func(q oddsapi.Query) (*oddsapi.ListResponse, error)
}

func (s *stubSource) List(ctx context.Context, q oddsapi.Query) (*oddsapi.ListResponse, error) {
	s.mu.Lock()
	s.queries = append(s.queries, q)
	s.mu.Unlock()
	return s.respond(q)
}

func (s *stubSource) recorded() []oddsapi.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]oddsapi.Query(nil), s.queries...)
}

func page(ids ...string) *oddsapi.ListResponse {
	matches := make([]domain.Match, len(ids))
	for i, id := range ids {
		matches[i] = domain.Match{ID: id}
	}
	return &oddsapi.ListResponse{Data: matches}
}

func newBoard(source service.Source, pageSize int) *service.Board {
	return service.NewBoard("football", domain.WindowUpcoming, pageSize, source, zerolog.Nop())
}

func TestRefreshReplacesMatches(t *testing.T) {
	src := &stubSource{respond: func(q oddsapi.Query) (*oddsapi.ListResponse, error) {
		return page("a", "b"), nil
	}}
	board := newBoard(src, 2)

	snap := board.Refresh(context.Background())

	if len(snap.Matches) != 2 || snap.Matches[0].ID != "a" {
		t.Fatalf("unexpected matches: %+v", snap.Matches)
	}
	if !snap.HasMore || snap.Page != 0 {
		t.Errorf("hasMore=%v page=%d, want true 0", snap.HasMore, snap.Page)
	}
	if snap.Loading {
		t.Error("loading flag still set after refresh")
	}
	if snap.LastUpdated.IsZero() {
		t.Error("last-updated not stamped")
	}

	qs := src.recorded()
	if len(qs) != 1 || qs[0].Skip != 0 || qs[0].PageSize != 2 {
		t.Errorf("unexpected queries: %+v", qs)
	}
}

func TestLoadMoreAdvancesSkip(t *testing.T) {
	src := &stubSource{respond: func(q oddsapi.Query) (*oddsapi.ListResponse, error) {
		return page("x", "y"), nil
	}}
	board := newBoard(src, 2)

	board.Refresh(context.Background())
	board.LoadMore(context.Background())
	snap := board.LoadMore(context.Background())

	qs := src.recorded()
	if len(qs) != 3 {
		t.Fatalf("got %d queries, want 3", len(qs))
	}
	if qs[1].Skip != 2 {
		t.Errorf("first load-more skip = %d, want 2", qs[1].Skip)
	}
	if qs[2].Skip != 4 {
		t.Errorf("second load-more skip = %d, want 4", qs[2].Skip)
	}
	if len(snap.Matches) != 6 {
		t.Errorf("accumulated %d matches, want 6", len(snap.Matches))
	}
	if snap.Page != 2 {
		t.Errorf("page = %d, want 2", snap.Page)
	}
}

func TestLoadMoreNoOpWhenNoMore(t *testing.T) {
	src := &stubSource{respond: func(q oddsapi.Query) (*oddsapi.ListResponse, error) {
		return page("only"), nil // short page: no more results
	}}
	board := newBoard(src, 2)

	board.Refresh(context.Background())
	snap := board.LoadMore(context.Background())

	if got := len(src.recorded()); got != 1 {
		t.Errorf("load-more dispatched a request anyway: %d queries", got)
	}
	if len(snap.Matches) != 1 {
		t.Errorf("matches changed on a no-op load-more: %d", len(snap.Matches))
	}
}

func TestLoadMoreFailureRetainsMatches(t *testing.T) {
	fail := false
	src := &stubSource{respond: func(q oddsapi.Query) (*oddsapi.ListResponse, error) {
		if fail {
			return nil, errors.New("connection reset")
		}
		return page("a", "b"), nil
	}}
	board := newBoard(src, 2)

	board.Refresh(context.Background())
	fail = true
	snap := board.LoadMore(context.Background())

	if len(snap.Matches) != 2 || snap.Matches[0].ID != "a" || snap.Matches[1].ID != "b" {
		t.Errorf("matches changed on load-more failure: %+v", snap.Matches)
	}
	if snap.LoadingMore {
		t.Error("load-more flag not cleared on failure")
	}
	if snap.LastError == "" {
		t.Error("error not recorded")
	}
}

func TestSetSportReloadsWithNewFilters(t *testing.T) {
	src := &stubSource{respond: func(q oddsapi.Query) (*oddsapi.ListResponse, error) {
		if q.Sport == "cricket" {
			return page("c1"), nil
		}
		return page("f1", "f2"), nil
	}}
	board := newBoard(src, 2)
	board.Refresh(context.Background())
	board.SetLeague("soccer_epl")

	snap := board.SetSport(context.Background(), "cricket")

	if snap.Sport != "cricket" {
		t.Errorf("sport = %s", snap.Sport)
	}
	if snap.League != domain.LeagueAll {
		t.Errorf("league = %s, want reset to %s", snap.League, domain.LeagueAll)
	}
	if len(snap.Matches) != 1 || snap.Matches[0].ID != "c1" {
		t.Errorf("matches = %+v, want the cricket page", snap.Matches)
	}
}

func TestStaleLoadMoreResponseDiscarded(t *testing.T) {
	started := make(chan struct{})
	block := make(chan struct{})
	src := &stubSource{respond: func(q oddsapi.Query) (*oddsapi.ListResponse, error) {
		if q.Skip > 0 {
			close(started)
			<-block // hold the append in flight
			return page("stale1", "stale2"), nil
		}
		if q.Sport == "cricket" {
			return page("c1", "c2"), nil
		}
		return page("f1", "f2"), nil
	}}
	board := newBoard(src, 2)
	board.Refresh(context.Background())

	done := make(chan struct{})
	go func() {
		board.LoadMore(context.Background())
		close(done)
	}()
	<-started

	// Switch sports while the append is in flight, then release it.
	snap := board.SetSport(context.Background(), "cricket")
	if len(snap.Matches) != 2 || snap.Matches[0].ID != "c1" {
		t.Fatalf("unexpected matches after sport change: %+v", snap.Matches)
	}

	close(block)
	<-done

	final := board.Snapshot()
	if len(final.Matches) != 2 || final.Matches[0].ID != "c1" || final.Matches[1].ID != "c2" {
		t.Errorf("stale append leaked into the new filter context: %+v", final.Matches)
	}
	if final.LastError != "" {
		t.Errorf("stale discard surfaced as an error: %q", final.LastError)
	}
}

func TestLoadMoreRacedByRefreshDiscarded(t *testing.T) {
	started := make(chan struct{})
	block := make(chan struct{})
	refreshes := 0
	src := &stubSource{respond: func(q oddsapi.Query) (*oddsapi.ListResponse, error) {
		if q.Skip > 0 {
			close(started)
			<-block // hold the append in flight
			return page("stale1", "stale2"), nil
		}
		refreshes++
		if refreshes > 1 {
			return page("r1", "r2"), nil
		}
		return page("f1", "f2"), nil
	}}
	board := newBoard(src, 2)
	board.Refresh(context.Background())

	done := make(chan struct{})
	go func() {
		board.LoadMore(context.Background())
		close(done)
	}()
	<-started

	// A periodic refresh replaces the list wholesale while the append is
	// still in flight. Same sport, same window: only the list generation
	// distinguishes the two.
	board.Refresh(context.Background())

	close(block)
	<-done

	final := board.Snapshot()
	if len(final.Matches) != 2 || final.Matches[0].ID != "r1" || final.Matches[1].ID != "r2" {
		t.Errorf("superseded append landed on the replaced list: %+v", final.Matches)
	}
	if final.Page != 0 {
		t.Errorf("page = %d, want 0 after the replace", final.Page)
	}
}

func TestRegistryLifecycle(t *testing.T) {
	src := &stubSource{respond: func(q oddsapi.Query) (*oddsapi.ListResponse, error) {
		return page("a"), nil
	}}
	reg := service.NewRegistry(testConfig(), src, zerolog.Nop())

	id, snap := reg.Open(context.Background(), "football", domain.WindowUpcoming)
	if len(snap.Matches) != 1 {
		t.Fatalf("initial load missing: %+v", snap.Matches)
	}

	if _, err := reg.Get(id); err != nil {
		t.Fatalf("board not found after open: %v", err)
	}
	if got := len(reg.Boards()); got != 1 {
		t.Errorf("boards = %d, want 1", got)
	}

	reg.Close(id)
	if _, err := reg.Get(id); err == nil {
		t.Error("board still reachable after close")
	}
}
