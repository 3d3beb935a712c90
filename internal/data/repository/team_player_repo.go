package repository

import (
	"context"
	"fmt"

	"audioathlete/pkg/database"

	"go.uber.org/zap"
)

// TeamPlayerRepository manages team_players, the team membership rows.
type TeamPlayerRepository interface {
	Create(ctx context.Context, teamID, playerID int64) error
	FindPlayerIDs(ctx context.Context, teamID int64) ([]int64, error)
	DeleteByTeam(ctx context.Context, teamID int64) error
	DeleteByPlayer(ctx context.Context, playerID int64) error
}

type teamPlayerRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTeamPlayerRepository(db database.Querier, log *zap.Logger) TeamPlayerRepository {
	return &teamPlayerRepository{
		db:  db,
		log: log.With(zap.String("repository", "team_player")),
	}
}

func (r *teamPlayerRepository) Create(ctx context.Context, teamID, playerID int64) error {
	query := `INSERT INTO team_players (team_id, player_id) VALUES ($1, $2)`

	if _, err := r.db.Exec(ctx, query, teamID, playerID); err != nil {
		r.log.Error("Failed to link player to team",
			zap.Error(err),
			zap.Int64("team_id", teamID),
			zap.Int64("player_id", playerID),
		)
		return fmt.Errorf("link player %d to team %d: %w", playerID, teamID, classify(err))
	}

	return nil
}

func (r *teamPlayerRepository) FindPlayerIDs(ctx context.Context, teamID int64) ([]int64, error) {
	query := `SELECT player_id FROM team_players WHERE team_id = $1 ORDER BY player_id ASC`

	rows, err := r.db.Query(ctx, query, teamID)
	if err != nil {
		r.log.Error("Failed to list team players", zap.Error(err), zap.Int64("team_id", teamID))
		return nil, fmt.Errorf("list players of team %d: %w", teamID, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan team player row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team player rows: %w", err)
	}

	return ids, nil
}

func (r *teamPlayerRepository) DeleteByTeam(ctx context.Context, teamID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM team_players WHERE team_id = $1`, teamID); err != nil {
		r.log.Error("Failed to remove team memberships", zap.Error(err), zap.Int64("team_id", teamID))
		return fmt.Errorf("remove memberships of team %d: %w", teamID, err)
	}
	return nil
}

func (r *teamPlayerRepository) DeleteByPlayer(ctx context.Context, playerID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM team_players WHERE player_id = $1`, playerID); err != nil {
		r.log.Error("Failed to remove player memberships", zap.Error(err), zap.Int64("player_id", playerID))
		return fmt.Errorf("remove memberships of player %d: %w", playerID, err)
	}
	return nil
}
