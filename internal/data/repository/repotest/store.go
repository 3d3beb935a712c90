// Package repotest provides an in-memory implementation of the repository
// interfaces for service and handler tests.
//
// The store enforces the same foreign keys, unique indexes and cascades as
// the PostgreSQL schema, and its transactor snapshots the whole store so a
// failed unit of work leaves no trace. Id sequences are not rolled back,
// matching PostgreSQL sequences.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"audioathlete/internal/data/entity"
	"audioathlete/internal/data/repository"
)

type state struct {
	users       map[int64]entity.User
	teams       map[int64]entity.Team
	memberships map[entity.TeamPlayer]struct{}
	workouts    map[int64]entity.Workout
	prompts     map[int64]entity.WorkoutPrompt
}

func (s state) clone() state {
	c := state{
		users:       make(map[int64]entity.User, len(s.users)),
		teams:       make(map[int64]entity.Team, len(s.teams)),
		memberships: make(map[entity.TeamPlayer]struct{}, len(s.memberships)),
		workouts:    make(map[int64]entity.Workout, len(s.workouts)),
		prompts:     make(map[int64]entity.WorkoutPrompt, len(s.prompts)),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.teams {
		c.teams[k] = v
	}
	for k := range s.memberships {
		c.memberships[k] = struct{}{}
	}
	for k, v := range s.workouts {
		c.workouts[k] = v
	}
	for k, v := range s.prompts {
		c.prompts[k] = v
	}
	return c
}

type Store struct {
	mu       sync.Mutex
	data     state
	seq      map[string]int64
	failures map[string]error
	now      func() time.Time

	// Commits and Rollbacks count finished units of work
	Commits   int
	Rollbacks int
}

func NewStore() *Store {
	return &Store{
		data: state{
			users:       make(map[int64]entity.User),
			teams:       make(map[int64]entity.Team),
			memberships: make(map[entity.TeamPlayer]struct{}),
			workouts:    make(map[int64]entity.Workout),
			prompts:     make(map[int64]entity.WorkoutPrompt),
		},
		seq:      make(map[string]int64),
		failures: make(map[string]error),
		now:      time.Now,
	}
}

// Fail makes the named operation (for example "team_player.create") return
// err until cleared with a nil err.
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

func (s *Store) failure(op string) error {
	if err, ok := s.failures[op]; ok {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// Repository returns repositories backed by the store.
func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		User:       &userRepo{s: s},
		Team:       &teamRepo{s: s},
		TeamPlayer: &teamPlayerRepo{s: s},
		Workout:    &workoutRepo{s: s},
		Prompt:     &promptRepo{s: s},
		Health:     &healthRepo{s: s},
		Tx:         &transactor{s: s},
	}
}

type transactor struct {
	s *Store
}

func (t *transactor) WithinTx(ctx context.Context, fn func(tx *repository.Repository) error) (err error) {
	t.s.mu.Lock()
	if err := t.s.failure("tx.begin"); err != nil {
		t.s.mu.Unlock()
		return err
	}
	snapshot := t.s.data.clone()
	t.s.mu.Unlock()

	repo := t.s.Repository()
	repo.Tx = joined{repo: repo}

	defer func() {
		if p := recover(); p != nil {
			t.s.restore(snapshot)
			panic(p)
		}
	}()

	if err = fn(repo); err != nil {
		t.s.restore(snapshot)
		return err
	}

	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if err := t.s.failure("tx.commit"); err != nil {
		t.s.data = snapshot
		t.s.Rollbacks++
		return err
	}
	t.s.Commits++
	return nil
}

func (s *Store) restore(snapshot state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = snapshot
	s.Rollbacks++
}

type joined struct {
	repo *repository.Repository
}

func (j joined) WithinTx(_ context.Context, fn func(tx *repository.Repository) error) error {
	return fn(j.repo)
}

// ==================== INSPECTION ====================

func (s *Store) CountUsers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.users)
}

func (s *Store) CountTeams() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.teams)
}

func (s *Store) CountMemberships() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.memberships)
}

func (s *Store) CountWorkouts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.workouts)
}

func (s *Store) CountPrompts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.prompts)
}

func (s *Store) HasMembership(teamID, playerID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data.memberships[entity.TeamPlayer{TeamID: teamID, PlayerID: playerID}]
	return ok
}

// User returns a copy of the stored user, if any.
func (s *Store) User(id int64) (entity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.data.users[id]
	return u, ok
}

func (s *Store) Team(id int64) (entity.Team, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.data.teams[id]
	return t, ok
}

func (s *Store) Workout(id int64) (entity.Workout, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.data.workouts[id]
	return w, ok
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
