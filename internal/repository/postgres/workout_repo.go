package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fittrack/internal/domain"
	"fittrack/internal/repository"
)

const workoutColumns = `id, user_id, exercise_type, duration, calories, intensity, notes, date, created_at, updated_at`

// WorkoutRepository provides Postgres-backed persistence for workouts.
type WorkoutRepository struct {
	pool *pgxpool.Pool
}

// NewWorkoutRepository constructs a WorkoutRepository.
func NewWorkoutRepository(pool *pgxpool.Pool) *WorkoutRepository {
	return &WorkoutRepository{pool: pool}
}

// Create inserts a new workout, assigning identity, timestamps and the date
// default.
func (r *WorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (string, error) {
	if workout.UserID == "" {
		return "", errors.New("workout requires userId")
	}
	workout.ID = uuid.NewString()
	now := time.Now().UTC()
	if workout.Date.IsZero() {
		workout.Date = now
	}
	workout.Date = workout.Date.UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now

	const query = `INSERT INTO workouts (` + workoutColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err := r.pool.Exec(ctx, query,
		workout.ID,
		workout.UserID,
		workout.ExerciseType,
		workout.Duration,
		workout.Calories,
		workout.Intensity,
		workout.Notes,
		workout.Date,
		workout.CreatedAt,
		workout.UpdatedAt,
	)
	if err != nil {
		return "", err
	}
	return workout.ID, nil
}

// GetByID retrieves a single workout.
func (r *WorkoutRepository) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	const query = `SELECT ` + workoutColumns + ` FROM workouts WHERE id=$1`
	workout, err := scanWorkout(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return workout, nil
}

// GetByUserID retrieves all workouts for a user, newest-first by date.
func (r *WorkoutRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Workout, error) {
	const query = `SELECT ` + workoutColumns + ` FROM workouts WHERE user_id=$1 ORDER BY date DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return collectWorkouts(rows)
}

// GetByUserAndDateRange retrieves workouts within [start, end], with the end
// boundary pushed to the last instant of its civil day.
func (r *WorkoutRepository) GetByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]domain.Workout, error) {
	const query = `SELECT ` + workoutColumns + ` FROM workouts
        WHERE user_id=$1 AND date >= $2 AND date <= $3 ORDER BY date DESC`
	rows, err := r.pool.Query(ctx, query, userID, start.UTC(), repository.EndOfDay(end))
	if err != nil {
		return nil, err
	}
	return collectWorkouts(rows)
}

// Update shallow-merges the patch over the stored row and returns the
// result. ID and user_id are never part of the SET list.
func (r *WorkoutRepository) Update(ctx context.Context, workoutID string, patch domain.WorkoutPatch) (*domain.Workout, error) {
	sets := []string{"updated_at = $1"}
	args := []interface{}{time.Now().UTC()}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.ExerciseType != nil {
		add("exercise_type", *patch.ExerciseType)
	}
	if patch.Duration != nil {
		add("duration", *patch.Duration)
	}
	if patch.Calories != nil {
		add("calories", *patch.Calories)
	}
	if patch.Intensity != nil {
		add("intensity", *patch.Intensity)
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes)
	}
	if patch.Date != nil {
		add("date", patch.Date.UTC())
	}

	args = append(args, workoutID)
	query := fmt.Sprintf(`UPDATE workouts SET %s WHERE id = $%d RETURNING `+workoutColumns,
		joinSets(sets), len(args))

	workout, err := scanWorkout(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	return workout, nil
}

func joinSets(sets []string) string {
	out := sets[0]
	for _, s := range sets[1:] {
		out += ", " + s
	}
	return out
}

func scanWorkout(row pgx.Row) (*domain.Workout, error) {
	var w domain.Workout
	err := row.Scan(&w.ID, &w.UserID, &w.ExerciseType, &w.Duration, &w.Calories,
		&w.Intensity, &w.Notes, &w.Date, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

func collectWorkouts(rows pgx.Rows) ([]domain.Workout, error) {
	defer rows.Close()
	workouts := []domain.Workout{}
	for rows.Next() {
		var w domain.Workout
		err := rows.Scan(&w.ID, &w.UserID, &w.ExerciseType, &w.Duration, &w.Calories,
			&w.Intensity, &w.Notes, &w.Date, &w.CreatedAt, &w.UpdatedAt)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}
