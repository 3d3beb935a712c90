package repotest

import (
	"context"
	"fmt"
	"sort"

	"audioathlete/internal/data/entity"
	"audioathlete/internal/data/repository"
)

// ==================== USERS ====================

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("user.create"); err != nil {
		return err
	}
	for _, u := range s.data.users {
		if u.Username == user.Username {
			return fmt.Errorf("create user %s: %w", user.Username, repository.ErrDuplicate)
		}
	}
	if user.TeamID != nil {
		if _, ok := s.data.teams[*user.TeamID]; !ok {
			return fmt.Errorf("create user %s: %w", user.Username, repository.ErrReferenced)
		}
	}

	user.ID = s.nextID("users")
	user.CreatedAt = s.now()
	s.data.users[user.ID] = *user
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("user.find"); err != nil {
		return nil, err
	}
	u, ok := s.data.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("user.find"); err != nil {
		return nil, err
	}
	for _, u := range s.data.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("user.find_all"); err != nil {
		return nil, err
	}
	users := make([]*entity.User, 0, len(s.data.users))
	for _, id := range sortedKeys(s.data.users) {
		u := s.data.users[id]
		users = append(users, &u)
	}
	return page(users, limit, offset), nil
}

func (r *userRepo) FindCoachTeamID(_ context.Context, coachID int64) (*int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("user.find_coach_team"); err != nil {
		return nil, err
	}
	u, ok := s.data.users[coachID]
	if !ok || u.Role != entity.RoleCoach || u.TeamID == nil {
		return nil, nil
	}
	id := *u.TeamID
	return &id, nil
}

func (r *userRepo) UpdateTeam(_ context.Context, userID, teamID int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("user.update_team"); err != nil {
		return err
	}
	u, ok := s.data.users[userID]
	if !ok {
		return fmt.Errorf("update team of user %d: %w", userID, repository.ErrNotFound)
	}
	if _, ok := s.data.teams[teamID]; !ok {
		return fmt.Errorf("update team of user %d: %w", userID, repository.ErrReferenced)
	}
	u.TeamID = &teamID
	s.data.users[userID] = u
	return nil
}

func (r *userRepo) ClearTeam(_ context.Context, teamID int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("user.clear_team"); err != nil {
		return err
	}
	s.clearTeamLocked(teamID)
	return nil
}

func (s *Store) clearTeamLocked(teamID int64) {
	for id, u := range s.data.users {
		if u.TeamID != nil && *u.TeamID == teamID {
			u.TeamID = nil
			s.data.users[id] = u
		}
	}
}

func (r *userRepo) Delete(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("user.delete"); err != nil {
		return err
	}
	if _, ok := s.data.users[id]; !ok {
		return fmt.Errorf("delete user %d: %w", id, repository.ErrNotFound)
	}
	for _, t := range s.data.teams {
		if t.CoachID == id {
			return fmt.Errorf("delete user %d: %w", id, repository.ErrReferenced)
		}
	}
	for m := range s.data.memberships {
		if m.PlayerID == id {
			return fmt.Errorf("delete user %d: %w", id, repository.ErrReferenced)
		}
	}
	for _, w := range s.data.workouts {
		if w.CoachID == id {
			return fmt.Errorf("delete user %d: %w", id, repository.ErrReferenced)
		}
	}
	delete(s.data.users, id)
	return nil
}

// ==================== TEAMS ====================

type teamRepo struct {
	s *Store
}

func (s *Store) withCoachName(t entity.Team) *entity.Team {
	if u, ok := s.data.users[t.CoachID]; ok {
		name := u.Name
		t.CoachName = &name
	}
	return &t
}

func (r *teamRepo) Create(_ context.Context, team *entity.Team) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("team.create"); err != nil {
		return err
	}
	if _, ok := s.data.users[team.CoachID]; !ok {
		return fmt.Errorf("create team %s: %w", team.Name, repository.ErrReferenced)
	}
	for _, t := range s.data.teams {
		if t.CoachID == team.CoachID {
			return fmt.Errorf("create team %s: %w", team.Name, repository.ErrDuplicate)
		}
	}

	team.ID = s.nextID("teams")
	team.CreatedAt = s.now()
	stored := *team
	stored.CoachName = nil
	s.data.teams[team.ID] = stored
	return nil
}

func (r *teamRepo) FindByID(_ context.Context, id int64) (*entity.Team, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("team.find"); err != nil {
		return nil, err
	}
	t, ok := s.data.teams[id]
	if !ok {
		return nil, nil
	}
	return s.withCoachName(t), nil
}

func (r *teamRepo) FindByCoachID(_ context.Context, coachID int64) (*entity.Team, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("team.find"); err != nil {
		return nil, err
	}
	for _, t := range s.data.teams {
		if t.CoachID == coachID {
			return s.withCoachName(t), nil
		}
	}
	return nil, nil
}

func (r *teamRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Team, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("team.find_all"); err != nil {
		return nil, err
	}
	teams := make([]*entity.Team, 0, len(s.data.teams))
	for _, id := range sortedKeys(s.data.teams) {
		teams = append(teams, s.withCoachName(s.data.teams[id]))
	}
	return page(teams, limit, offset), nil
}

func (r *teamRepo) Delete(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("team.delete"); err != nil {
		return err
	}
	if _, ok := s.data.teams[id]; !ok {
		return fmt.Errorf("delete team %d: %w", id, repository.ErrNotFound)
	}
	for m := range s.data.memberships {
		if m.TeamID == id {
			return fmt.Errorf("delete team %d: %w", id, repository.ErrReferenced)
		}
	}
	for _, w := range s.data.workouts {
		if w.TeamID == id {
			return fmt.Errorf("delete team %d: %w", id, repository.ErrReferenced)
		}
	}
	// users.team_id is ON DELETE SET NULL
	s.clearTeamLocked(id)
	delete(s.data.teams, id)
	return nil
}

// ==================== MEMBERSHIPS ====================

type teamPlayerRepo struct {
	s *Store
}

func (r *teamPlayerRepo) Create(_ context.Context, teamID, playerID int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("team_player.create"); err != nil {
		return err
	}
	_, teamOK := s.data.teams[teamID]
	_, userOK := s.data.users[playerID]
	if !teamOK || !userOK {
		return fmt.Errorf("link player %d to team %d: %w", playerID, teamID, repository.ErrReferenced)
	}
	key := entity.TeamPlayer{TeamID: teamID, PlayerID: playerID}
	if _, ok := s.data.memberships[key]; ok {
		return fmt.Errorf("link player %d to team %d: %w", playerID, teamID, repository.ErrDuplicate)
	}
	s.data.memberships[key] = struct{}{}
	return nil
}

func (r *teamPlayerRepo) FindPlayerIDs(_ context.Context, teamID int64) ([]int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("team_player.find"); err != nil {
		return nil, err
	}
	ids := make([]int64, 0)
	for m := range s.data.memberships {
		if m.TeamID == teamID {
			ids = append(ids, m.PlayerID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *teamPlayerRepo) DeleteByTeam(_ context.Context, teamID int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("team_player.delete"); err != nil {
		return err
	}
	for m := range s.data.memberships {
		if m.TeamID == teamID {
			delete(s.data.memberships, m)
		}
	}
	return nil
}

func (r *teamPlayerRepo) DeleteByPlayer(_ context.Context, playerID int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("team_player.delete"); err != nil {
		return err
	}
	for m := range s.data.memberships {
		if m.PlayerID == playerID {
			delete(s.data.memberships, m)
		}
	}
	return nil
}

// ==================== WORKOUTS ====================

type workoutRepo struct {
	s *Store
}

func (r *workoutRepo) Create(_ context.Context, workout *entity.Workout) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("workout.create"); err != nil {
		return err
	}
	_, teamOK := s.data.teams[workout.TeamID]
	_, coachOK := s.data.users[workout.CoachID]
	if !teamOK || !coachOK {
		return fmt.Errorf("create workout %s: %w", workout.Title, repository.ErrReferenced)
	}

	workout.ID = s.nextID("workouts")
	workout.CreatedAt = s.now()
	s.data.workouts[workout.ID] = *workout
	return nil
}

func (r *workoutRepo) FindByID(_ context.Context, id int64) (*entity.Workout, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("workout.find"); err != nil {
		return nil, err
	}
	w, ok := s.data.workouts[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *workoutRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Workout, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("workout.find_all"); err != nil {
		return nil, err
	}
	workouts := make([]*entity.Workout, 0, len(s.data.workouts))
	for _, w := range s.data.workouts {
		w := w
		workouts = append(workouts, &w)
	}
	sort.Slice(workouts, func(i, j int) bool {
		a, b := workouts[i], workouts[j]
		if !a.ScheduledDate.Equal(b.ScheduledDate) {
			return a.ScheduledDate.After(b.ScheduledDate)
		}
		return a.ID > b.ID
	})
	return page(workouts, limit, offset), nil
}

func (r *workoutRepo) CountByTeam(_ context.Context, teamID int64) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("workout.count"); err != nil {
		return 0, err
	}
	var count int64
	for _, w := range s.data.workouts {
		if w.TeamID == teamID {
			count++
		}
	}
	return count, nil
}

func (r *workoutRepo) UpdateTotalLength(_ context.Context, id int64, totalSec int) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("workout.update_total_length"); err != nil {
		return err
	}
	w, ok := s.data.workouts[id]
	if !ok {
		return fmt.Errorf("update length of workout %d: %w", id, repository.ErrNotFound)
	}
	w.TotalLengthSec = totalSec
	s.data.workouts[id] = w
	return nil
}

func (r *workoutRepo) Delete(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("workout.delete"); err != nil {
		return err
	}
	if _, ok := s.data.workouts[id]; !ok {
		return fmt.Errorf("delete workout %d: %w", id, repository.ErrNotFound)
	}
	// workout_prompts.workout_id is ON DELETE CASCADE
	for pid, p := range s.data.prompts {
		if p.WorkoutID == id {
			delete(s.data.prompts, pid)
		}
	}
	delete(s.data.workouts, id)
	return nil
}

// ==================== PROMPTS ====================

type promptRepo struct {
	s *Store
}

func (r *promptRepo) Create(_ context.Context, prompt *entity.WorkoutPrompt) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("prompt.create"); err != nil {
		return err
	}
	if _, ok := s.data.workouts[prompt.WorkoutID]; !ok {
		return fmt.Errorf("create prompt for workout %d: %w", prompt.WorkoutID, repository.ErrReferenced)
	}
	if prompt.BlockLength <= 0 {
		return fmt.Errorf("create prompt for workout %d: block_length check violated", prompt.WorkoutID)
	}

	prompt.ID = s.nextID("workout_prompts")
	prompt.CreatedAt = s.now()
	s.data.prompts[prompt.ID] = *prompt
	return nil
}

func (r *promptRepo) FindByID(_ context.Context, id int64) (*entity.WorkoutPrompt, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("prompt.find"); err != nil {
		return nil, err
	}
	p, ok := s.data.prompts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *promptRepo) FindByWorkoutID(_ context.Context, workoutID int64) ([]*entity.WorkoutPrompt, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("prompt.find"); err != nil {
		return nil, err
	}
	prompts := make([]*entity.WorkoutPrompt, 0)
	for _, id := range sortedKeys(s.data.prompts) {
		if p := s.data.prompts[id]; p.WorkoutID == workoutID {
			prompts = append(prompts, &p)
		}
	}
	return prompts, nil
}

func (r *promptRepo) SumBlockLength(_ context.Context, workoutID int64) (int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("prompt.sum"); err != nil {
		return 0, err
	}
	total := 0
	for _, p := range s.data.prompts {
		if p.WorkoutID == workoutID {
			total += p.BlockLength
		}
	}
	return total, nil
}

func (r *promptRepo) Delete(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("prompt.delete"); err != nil {
		return err
	}
	if _, ok := s.data.prompts[id]; !ok {
		return fmt.Errorf("delete prompt %d: %w", id, repository.ErrNotFound)
	}
	delete(s.data.prompts, id)
	return nil
}

// ==================== HEALTH ====================

type healthRepo struct {
	s *Store
}

func (r *healthRepo) Probe(context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("health.probe"); err != nil {
		return 0, err
	}
	return 1, nil
}
