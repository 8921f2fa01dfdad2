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

// --- Error Definitions ---
var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrValidationFailed = errors.New("validation failed")
)

// WorkoutInput carries the caller-provided fields of a new workout.
type WorkoutInput struct {
	ExerciseType string
	Duration     int
	Calories     int
	Intensity    domain.Intensity
	Notes        string
	Date         time.Time // zero means "now"
}

// WeeklySummary bundles the weekly series with its chart scale factor.
type WeeklySummary struct {
	Days     []stats.DaySummary `json:"days"`
	MaxScore float64            `json:"maxActivityScore"`
}

// WorkoutService handles workout logging and the aggregated views that are
// derived from it.
type WorkoutService interface {
	Log(ctx context.Context, userID string, input WorkoutInput) (*domain.Workout, error)
	List(ctx context.Context, userID string) ([]domain.Workout, error)
	Patch(ctx context.Context, userID, workoutID string, patch domain.WorkoutPatch) (*domain.Workout, error)
	// WeeklyWorkouts returns the raw workouts of the current Monday-Sunday
	// window.
	WeeklyWorkouts(ctx context.Context, userID string, now time.Time) ([]domain.Workout, error)
	TodayTotals(ctx context.Context, userID string, now time.Time) (stats.DailyTotals, error)
	WeeklySummary(ctx context.Context, userID string, now time.Time) (WeeklySummary, error)
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{workoutRepo: workoutRepo}
}

func validateInput(input WorkoutInput) error {
	if input.ExerciseType == "" {
		return fmt.Errorf("%w: exerciseType is required", ErrValidationFailed)
	}
	if input.Duration < 1 {
		return fmt.Errorf("%w: duration must be at least 1 minute", ErrValidationFailed)
	}
	if input.Calories < 0 {
		return fmt.Errorf("%w: calories cannot be negative", ErrValidationFailed)
	}
	if !input.Intensity.Valid() {
		return fmt.Errorf("%w: intensity must be low, medium or high", ErrValidationFailed)
	}
	return nil
}

// Log validates and persists a new workout for the user.
func (s *workoutService) Log(ctx context.Context, userID string, input WorkoutInput) (*domain.Workout, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	workout := &domain.Workout{
		UserID:       userID,
		ExerciseType: input.ExerciseType,
		Duration:     input.Duration,
		Calories:     input.Calories,
		Intensity:    input.Intensity,
		Notes:        input.Notes,
		Date:         input.Date,
	}
	workoutID, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = workoutID
	return workout, nil
}

// List returns the user's workouts newest-first.
func (s *workoutService) List(ctx context.Context, userID string) ([]domain.Workout, error) {
	return s.workoutRepo.GetByUserID(ctx, userID)
}

// Patch applies a partial update to a workout owned by the user. The merge
// is field-level last-write-wins; untouched fields keep their values.
func (s *workoutService) Patch(ctx context.Context, userID, workoutID string, patch domain.WorkoutPatch) (*domain.Workout, error) {
	if patch.ExerciseType != nil && *patch.ExerciseType == "" {
		return nil, fmt.Errorf("%w: exerciseType cannot be empty", ErrValidationFailed)
	}
	if patch.Duration != nil && *patch.Duration < 1 {
		return nil, fmt.Errorf("%w: duration must be at least 1 minute", ErrValidationFailed)
	}
	if patch.Calories != nil && *patch.Calories < 0 {
		return nil, fmt.Errorf("%w: calories cannot be negative", ErrValidationFailed)
	}
	if patch.Intensity != nil && !patch.Intensity.Valid() {
		return nil, fmt.Errorf("%w: intensity must be low, medium or high", ErrValidationFailed)
	}

	existing, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	// A foreign workout id is indistinguishable from a missing one.
	if existing.UserID != userID {
		return nil, ErrWorkoutNotFound
	}

	updated, err := s.workoutRepo.Update(ctx, workoutID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return updated, nil
}

// WeeklyWorkouts fetches the raw workouts of the current week, using the
// same Monday anchor as the weekly series.
func (s *workoutService) WeeklyWorkouts(ctx context.Context, userID string, now time.Time) ([]domain.Workout, error) {
	return s.workoutRepo.GetByUserAndDateRange(ctx, userID, stats.WeekStart(now), stats.WeekEnd(now))
}

// TodayTotals fetches and aggregates today's workouts.
func (s *workoutService) TodayTotals(ctx context.Context, userID string, now time.Time) (stats.DailyTotals, error) {
	workouts, err := s.workoutRepo.GetByUserAndDateRange(ctx, userID, stats.StartOfDay(now), now)
	if err != nil {
		return stats.DailyTotals{}, err
	}
	return stats.TodayTotals(workouts, now), nil
}

// WeeklySummary fetches the current week's workouts and buckets them into
// the Mon..Sun series.
func (s *workoutService) WeeklySummary(ctx context.Context, userID string, now time.Time) (WeeklySummary, error) {
	workouts, err := s.WeeklyWorkouts(ctx, userID, now)
	if err != nil {
		return WeeklySummary{}, err
	}
	series := stats.Weekly(workouts, now)
	return WeeklySummary{
		Days:     series,
		MaxScore: stats.MaxActivityScore(series),
	}, nil
}
