package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"audioathlete/internal/data/entity"
	"audioathlete/internal/data/repository"
	"audioathlete/pkg/database"
	"audioathlete/pkg/utils"

	"go.uber.org/zap/zaptest"
)

// openTestDB connects to TEST_DATABASE_URL and resets the schema. Tests that
// need PostgreSQL are skipped when it is unset.
func openTestDB(t *testing.T) database.PgxIface {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.InitDB(utils.DatabaseConfig{URL: url})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(db.Close)

	ctx := context.Background()
	if err := database.Migrate(ctx, db, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := db.Exec(ctx, `TRUNCATE workout_prompts, workouts, team_players, teams, users RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}

func TestPostgresCoachTeamRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewRepository(db, zaptest.NewLogger(t))
	ctx := context.Background()

	email := "coach@example.com"
	coach := &entity.User{Name: "Casey", Username: "casey", PasswordHash: "x", Role: entity.RoleCoach, Email: &email}

	err := repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		if err := tx.User.Create(ctx, coach); err != nil {
			return err
		}
		team := &entity.Team{Name: "Hawks", CoachID: coach.ID}
		if err := tx.Team.Create(ctx, team); err != nil {
			return err
		}
		return tx.User.UpdateTeam(ctx, coach.ID, team.ID)
	})
	if err != nil {
		t.Fatalf("provision coach: %v", err)
	}

	teamID, err := repo.User.FindCoachTeamID(ctx, coach.ID)
	if err != nil || teamID == nil {
		t.Fatalf("FindCoachTeamID = %v, %v", teamID, err)
	}

	team, err := repo.Team.FindByID(ctx, *teamID)
	if err != nil || team == nil {
		t.Fatalf("FindByID = %v, %v", team, err)
	}
	if team.CoachName == nil || *team.CoachName != "Casey" {
		t.Fatalf("coach name = %v", team.CoachName)
	}

	dup := &entity.User{Name: "Other", Username: "casey", PasswordHash: "x", Role: entity.RolePlayer}
	if err := repo.User.Create(ctx, dup); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("duplicate username err = %v", err)
	}

	if err := repo.User.Delete(ctx, coach.ID); !errors.Is(err, repository.ErrReferenced) {
		t.Fatalf("delete referenced coach err = %v", err)
	}
}

func TestPostgresRollbackLeavesNoRows(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewRepository(db, zaptest.NewLogger(t))
	ctx := context.Background()

	boom := errors.New("boom")
	err := repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		u := &entity.User{Name: "P", Username: "p1", PasswordHash: "x", Role: entity.RolePlayer}
		if err := tx.User.Create(ctx, u); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithinTx err = %v", err)
	}

	users, err := repo.User.FindAll(ctx, 10, 0)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("users after rollback = %d", len(users))
	}
}

func TestPostgresPromptsCascadeWithWorkout(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewRepository(db, zaptest.NewLogger(t))
	ctx := context.Background()

	coach := &entity.User{Name: "C", Username: "c", PasswordHash: "x", Role: entity.RoleCoach}
	if err := repo.User.Create(ctx, coach); err != nil {
		t.Fatal(err)
	}
	team := &entity.Team{Name: "T", CoachID: coach.ID}
	if err := repo.Team.Create(ctx, team); err != nil {
		t.Fatal(err)
	}
	workout := &entity.Workout{TeamID: team.ID, CoachID: coach.ID, Title: "Intervals", ScheduledDate: time.Now().UTC()}
	if err := repo.Workout.Create(ctx, workout); err != nil {
		t.Fatal(err)
	}
	for _, minutes := range []int{5, 10} {
		p := &entity.WorkoutPrompt{WorkoutID: workout.ID, BlockLength: minutes, Instruction: "run"}
		if err := repo.Prompt.Create(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	total, err := repo.Prompt.SumBlockLength(ctx, workout.ID)
	if err != nil || total != 15 {
		t.Fatalf("SumBlockLength = %d, %v", total, err)
	}

	if err := repo.Workout.Delete(ctx, workout.ID); err != nil {
		t.Fatalf("delete workout: %v", err)
	}
	prompts, err := repo.Prompt.FindByWorkoutID(ctx, workout.ID)
	if err != nil || len(prompts) != 0 {
		t.Fatalf("prompts after delete = %d, %v", len(prompts), err)
	}

	if err := repo.Prompt.Create(ctx, &entity.WorkoutPrompt{WorkoutID: workout.ID, BlockLength: 1, Instruction: "x"}); !errors.Is(err, repository.ErrReferenced) {
		t.Fatalf("prompt for missing workout err = %v", err)
	}
}
