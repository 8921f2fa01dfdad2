package repository

import (
	"context"
	"time"

	"fittrack/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("already exists")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// WorkoutRepository defines the interface for interacting with workout records.
type WorkoutRepository interface {
	// Create assigns an ID and persists the workout. The caller is expected
	// to have validated and defaulted the record.
	Create(ctx context.Context, workout *domain.Workout) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Workout, error)
	// GetByUserID returns the user's workouts newest-first by date. An
	// unknown user yields an empty slice, not an error.
	GetByUserID(ctx context.Context, userID string) ([]domain.Workout, error)
	// GetByUserAndDateRange returns workouts with start <= date <= end.
	// Implementations normalize end via EndOfDay so a midnight boundary
	// never drops same-day records.
	GetByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]domain.Workout, error)
	// Update shallow-merges the patch over the stored record and returns
	// the result. ID and UserID are never changed.
	Update(ctx context.Context, workoutID string, patch domain.WorkoutPatch) (*domain.Workout, error)
}

// GoalRepository defines the interface for interacting with goal records.
type GoalRepository interface {
	// Create persists the goal with Current forced to 0.
	Create(ctx context.Context, goal *domain.Goal) (string, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Goal, error)
	UpdateCurrent(ctx context.Context, goalID string, current int) (*domain.Goal, error)
}

// ExerciseRepository defines the interface for the per-user exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (string, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Exercise, error)
	// Seed inserts the default exercise catalog for a new user.
	Seed(ctx context.Context, userID string) error
}

// EndOfDay pushes a range end to the last instant of its civil day unless it
// already lies in the day's final hour. Callers of date-range queries often
// pass a midnight boundary; without this, workouts logged later that same
// day would be silently excluded.
func EndOfDay(t time.Time) time.Time {
	t = t.UTC()
	if t.Hour() == 23 {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}
