package favorites_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/ferrarinobrakes/oddsboard/internal/favorites"
)

func testRepo(t *testing.T) *favorites.Repository {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE followed_teams (
		team TEXT PRIMARY KEY,
		sport_key TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		t.Fatalf("creating table: %v", err)
	}

	return favorites.NewRepository(db, zerolog.Nop())
}

func TestToggleFollowsAndUnfollows(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	followed, err := repo.IsFollowed(ctx, "Arsenal")
	if err != nil {
		t.Fatal(err)
	}
	if followed {
		t.Error("team followed before any toggle")
	}

	followed, err = repo.Toggle(ctx, "Arsenal", "soccer")
	if err != nil {
		t.Fatal(err)
	}
	if !followed {
		t.Error("first toggle should follow")
	}

	followed, err = repo.IsFollowed(ctx, "Arsenal")
	if err != nil {
		t.Fatal(err)
	}
	if !followed {
		t.Error("follow not persisted")
	}

	followed, err = repo.Toggle(ctx, "Arsenal", "soccer")
	if err != nil {
		t.Fatal(err)
	}
	if followed {
		t.Error("second toggle should unfollow")
	}
}

func TestFollowedSet(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	for _, team := range []string{"Arsenal", "Chelsea"} {
		if _, err := repo.Toggle(ctx, team, "soccer"); err != nil {
			t.Fatal(err)
		}
	}

	set, err := repo.FollowedSet(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(set) != 2 || !set["Arsenal"] || !set["Chelsea"] {
		t.Errorf("followed set = %v", set)
	}
}
