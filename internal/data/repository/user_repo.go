package repository

import (
	"context"
	"errors"
	"fmt"

	"audioathlete/internal/data/entity"
	"audioathlete/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error)
	// FindCoachTeamID returns nil when id is not a coach or the coach has no team.
	FindCoachTeamID(ctx context.Context, coachID int64) (*int64, error)
	UpdateTeam(ctx context.Context, userID, teamID int64) error
	ClearTeam(ctx context.Context, teamID int64) error
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewUserRepository(db database.Querier, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, name, username, password, user_type, coach_email, team_id, created_at`

func scanUser(row rowScanner, user *entity.User) error {
	return row.Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.Email,
		&user.TeamID,
		&user.CreatedAt,
	)
}

// Create inserts a new user record and fills in the generated id
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (name, username, password, user_type, coach_email, team_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := ur.db.QueryRow(ctx, query,
		user.Name,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.Email,
		user.TeamID,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("username", user.Username),
			zap.String("user_type", string(user.Role)),
		)
		return fmt.Errorf("create user %s: %w", user.Username, classify(err))
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user entity.User
	err := scanUser(ur.db.QueryRow(ctx, query, id), &user)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return nil, fmt.Errorf("find user by ID %d: %w", id, err)
	}

	return &user, nil
}

func (ur *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	var user entity.User
	err := scanUser(ur.db.QueryRow(ctx, query, username), &user)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by username",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, fmt.Errorf("find user by username %s: %w", username, err)
	}

	return &user, nil
}

// FindAll retrieves a page of users ordered by id
func (ur *userRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := ur.db.Query(ctx, query, limit, offset)
	if err != nil {
		ur.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all users limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	users := make([]*entity.User, 0)
	for rows.Next() {
		var user entity.User
		if err := scanUser(rows, &user); err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

func (ur *userRepository) FindCoachTeamID(ctx context.Context, coachID int64) (*int64, error) {
	query := `SELECT team_id FROM users WHERE id = $1 AND user_type = 'coach'`

	var teamID *int64
	err := ur.db.QueryRow(ctx, query, coachID).Scan(&teamID)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find coach team",
			zap.Error(err),
			zap.Int64("coach_id", coachID),
		)
		return nil, fmt.Errorf("find team of coach %d: %w", coachID, err)
	}

	return teamID, nil
}

func (ur *userRepository) UpdateTeam(ctx context.Context, userID, teamID int64) error {
	query := `UPDATE users SET team_id = $2 WHERE id = $1`

	result, err := ur.db.Exec(ctx, query, userID, teamID)
	if err != nil {
		ur.log.Error("Failed to update user team",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("team_id", teamID),
		)
		return fmt.Errorf("update team of user %d: %w", userID, classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update team of user %d: %w", userID, ErrNotFound)
	}

	return nil
}

// ClearTeam drops every user's reference to teamID
func (ur *userRepository) ClearTeam(ctx context.Context, teamID int64) error {
	query := `UPDATE users SET team_id = NULL WHERE team_id = $1`

	if _, err := ur.db.Exec(ctx, query, teamID); err != nil {
		ur.log.Error("Failed to clear team references",
			zap.Error(err),
			zap.Int64("team_id", teamID),
		)
		return fmt.Errorf("clear references to team %d: %w", teamID, err)
	}

	return nil
}

func (ur *userRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := ur.db.Exec(ctx, query, id)
	if err != nil {
		ur.log.Error("Failed to delete user",
			zap.Error(err),
			zap.Int64("id", id),
		)
		return fmt.Errorf("delete user %d: %w", id, classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete user %d: %w", id, ErrNotFound)
	}

	ur.log.Info("User deleted", zap.Int64("id", id))
	return nil
}
