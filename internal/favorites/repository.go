package favorites

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// Repository persists which teams the user follows, keyed by team name.
type Repository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewRepository(db *sql.DB, logger zerolog.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger.With().Str("component", "favorites").Logger(),
	}
}

func (r *Repository) IsFollowed(ctx context.Context, team string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM followed_teams WHERE team = ?", team).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check followed team: %w", err)
	}
	return count > 0, nil
}

// Toggle flips the followed state for a team and returns the new state.
func (r *Repository) Toggle(ctx context.Context, team, sportKey string) (bool, error) {
	followed, err := r.IsFollowed(ctx, team)
	if err != nil {
		return false, err
	}

	if followed {
		if _, err := r.db.ExecContext(ctx, "DELETE FROM followed_teams WHERE team = ?", team); err != nil {
			return false, fmt.Errorf("failed to unfollow team: %w", err)
		}
		r.logger.Debug().Str("team", team).Msg("team unfollowed")
		return false, nil
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO followed_teams (team, sport_key) VALUES (?, ?) ON CONFLICT(team) DO NOTHING",
		team, sportKey)
	if err != nil {
		return false, fmt.Errorf("failed to follow team: %w", err)
	}
	r.logger.Debug().Str("team", team).Str("sport_key", sportKey).Msg("team followed")
	return true, nil
}

func (r *Repository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT team FROM followed_teams ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list followed teams: %w", err)
	}
	defer rows.Close()

	var teams []string
	for rows.Next() {
		var team string
		if err := rows.Scan(&team); err != nil {
			return nil, fmt.Errorf("failed to scan followed team: %w", err)
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

// FollowedSet returns the followed teams as a lookup map for annotating a
// page of matches in one query.
func (r *Repository) FollowedSet(ctx context.Context) (map[string]bool, error) {
	teams, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(teams))
	for _, t := range teams {
		set[t] = true
	}
	return set, nil
}
