package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fittrack/internal/domain"
	"fittrack/internal/repository"
	"fittrack/internal/stats"
)

var ErrGoalNotFound = errors.New("goal not found")

// GoalService handles goal CRUD and live progress computation.
type GoalService interface {
	List(ctx context.Context, userID string) ([]domain.Goal, error)
	Create(ctx context.Context, userID string, goalType domain.GoalType, target int) (*domain.Goal, error)
	UpdateCurrent(ctx context.Context, userID, goalID string, current int) (*domain.Goal, error)
	// Progress measures today's workouts against the user's goal targets.
	// The stored current values play no part in it.
	Progress(ctx context.Context, userID string, now time.Time) (stats.GoalReport, error)
}

type goalService struct {
	goalRepo    repository.GoalRepository
	workoutRepo repository.WorkoutRepository
}

// NewGoalService creates a new instance of goalService.
func NewGoalService(goalRepo repository.GoalRepository, workoutRepo repository.WorkoutRepository) GoalService {
	return &goalService{
		goalRepo:    goalRepo,
		workoutRepo: workoutRepo,
	}
}

// List returns all goals for the user.
func (s *goalService) List(ctx context.Context, userID string) ([]domain.Goal, error) {
	return s.goalRepo.GetByUserID(ctx, userID)
}

// Create persists a new goal; Current always starts at 0.
func (s *goalService) Create(ctx context.Context, userID string, goalType domain.GoalType, target int) (*domain.Goal, error) {
	if !goalType.Valid() {
		return nil, fmt.Errorf("%w: unknown goal type %q", ErrValidationFailed, goalType)
	}
	if target < 1 {
		return nil, fmt.Errorf("%w: target must be at least 1", ErrValidationFailed)
	}

	goal := &domain.Goal{
		UserID: userID,
		Type:   goalType,
		Target: target,
	}
	goalID, err := s.goalRepo.Create(ctx, goal)
	if err != nil {
		return nil, err
	}
	goal.ID = goalID
	return goal, nil
}

// UpdateCurrent sets a goal's accumulated value after confirming the goal
// belongs to the user.
func (s *goalService) UpdateCurrent(ctx context.Context, userID, goalID string, current int) (*domain.Goal, error) {
	if current < 0 {
		return nil, fmt.Errorf("%w: current cannot be negative", ErrValidationFailed)
	}

	goals, err := s.goalRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	owned := false
	for _, g := range goals {
		if g.ID == goalID {
			owned = true
			break
		}
	}
	if !owned {
		return nil, ErrGoalNotFound
	}

	goal, err := s.goalRepo.UpdateCurrent(ctx, goalID, current)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

// Progress computes the live goal report from today's workouts.
func (s *goalService) Progress(ctx context.Context, userID string, now time.Time) (stats.GoalReport, error) {
	workouts, err := s.workoutRepo.GetByUserAndDateRange(ctx, userID, stats.StartOfDay(now), now)
	if err != nil {
		return stats.GoalReport{}, err
	}
	goals, err := s.goalRepo.GetByUserID(ctx, userID)
	if err != nil {
		return stats.GoalReport{}, err
	}
	return stats.Progress(stats.TodayTotals(workouts, now), goals), nil
}
