// Package memory provides in-memory implementations of the repository
// interfaces. It backs local development without a database and doubles as
// the fake for service and handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"fittrack/internal/domain"
	"fittrack/internal/repository"
)

// Store holds every collection behind a single lock. All four repository
// interfaces are satisfied by views over it.
type Store struct {
	mu        sync.RWMutex
	users     map[string]domain.User
	workouts  map[string]domain.Workout
	goals     map[string]domain.Goal
	exercises map[string]domain.Exercise
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:     make(map[string]domain.User),
		workouts:  make(map[string]domain.Workout),
		goals:     make(map[string]domain.Goal),
		exercises: make(map[string]domain.Exercise),
	}
}

// Users returns the store as a UserRepository.
func (s *Store) Users() repository.UserRepository { return (*userStore)(s) }

// Workouts returns the store as a WorkoutRepository.
func (s *Store) Workouts() repository.WorkoutRepository { return (*workoutStore)(s) }

// Goals returns the store as a GoalRepository.
func (s *Store) Goals() repository.GoalRepository { return (*goalStore)(s) }

// Exercises returns the store as an ExerciseRepository.
func (s *Store) Exercises() repository.ExerciseRepository { return (*exerciseStore)(s) }

type userStore Store

func (s *userStore) Create(ctx context.Context, user *domain.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return "", repository.ErrDuplicate
		}
	}
	user.ID = uuid.NewString()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.users[user.ID] = *user
	return user.ID, nil
}

func (s *userStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (s *userStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type workoutStore Store

func (s *workoutStore) Create(ctx context.Context, workout *domain.Workout) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	workout.ID = uuid.NewString()
	now := time.Now().UTC()
	if workout.Date.IsZero() {
		workout.Date = now
	}
	workout.Date = workout.Date.UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now
	s.workouts[workout.ID] = *workout
	return workout.ID, nil
}

func (s *workoutStore) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	workout, ok := s.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &workout, nil
}

func (s *workoutStore) GetByUserID(ctx context.Context, userID string) ([]domain.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	workouts := []domain.Workout{}
	for _, w := range s.workouts {
		if w.UserID == userID {
			workouts = append(workouts, w)
		}
	}
	sort.Slice(workouts, func(i, j int) bool {
		return workouts[i].Date.After(workouts[j].Date)
	})
	return workouts, nil
}

func (s *workoutStore) GetByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]domain.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start = start.UTC()
	end = repository.EndOfDay(end)

	workouts := []domain.Workout{}
	for _, w := range s.workouts {
		if w.UserID != userID {
			continue
		}
		if w.Date.Before(start) || w.Date.After(end) {
			continue
		}
		workouts = append(workouts, w)
	}
	sort.Slice(workouts, func(i, j int) bool {
		return workouts[i].Date.After(workouts[j].Date)
	})
	return workouts, nil
}

func (s *workoutStore) Update(ctx context.Context, workoutID string, patch domain.WorkoutPatch) (*domain.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	workout, ok := s.workouts[workoutID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	patch.Apply(&workout)
	workout.UpdatedAt = time.Now().UTC()
	s.workouts[workoutID] = workout
	return &workout, nil
}

type goalStore Store

func (s *goalStore) Create(ctx context.Context, goal *domain.Goal) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal.ID = uuid.NewString()
	goal.Current = 0
	if goal.Date.IsZero() {
		goal.Date = time.Now().UTC()
	}
	s.goals[goal.ID] = *goal
	return goal.ID, nil
}

func (s *goalStore) GetByUserID(ctx context.Context, userID string) ([]domain.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	goals := []domain.Goal{}
	for _, g := range s.goals {
		if g.UserID == userID {
			goals = append(goals, g)
		}
	}
	sort.Slice(goals, func(i, j int) bool {
		return goals[i].Date.Before(goals[j].Date)
	})
	return goals, nil
}

func (s *goalStore) UpdateCurrent(ctx context.Context, goalID string, current int) (*domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal, ok := s.goals[goalID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	goal.Current = current
	s.goals[goalID] = goal
	return &goal, nil
}

type exerciseStore Store

func (s *exerciseStore) Create(ctx context.Context, exercise *domain.Exercise) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exercise.ID = uuid.NewString()
	if exercise.CreatedAt.IsZero() {
		exercise.CreatedAt = time.Now().UTC()
	}
	s.exercises[exercise.ID] = *exercise
	return exercise.ID, nil
}

func (s *exerciseStore) GetByUserID(ctx context.Context, userID string) ([]domain.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exercises := []domain.Exercise{}
	for _, e := range s.exercises {
		if e.UserID == userID {
			exercises = append(exercises, e)
		}
	}
	sort.Slice(exercises, func(i, j int) bool {
		return exercises[i].CreatedAt.Before(exercises[j].CreatedAt)
	})
	return exercises, nil
}

func (s *exerciseStore) Seed(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, e := range domain.DefaultExercises() {
		e.ID = uuid.NewString()
		e.UserID = userID
		e.CreatedAt = now
		s.exercises[e.ID] = e
		now = now.Add(time.Millisecond) // keep seeded order stable
	}
	return nil
}
