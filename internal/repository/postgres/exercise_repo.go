package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fittrack/internal/domain"
)

// ExerciseRepository provides Postgres-backed persistence for the per-user
// exercise catalog.
type ExerciseRepository struct {
	pool *pgxpool.Pool
}

// NewExerciseRepository constructs an ExerciseRepository.
func NewExerciseRepository(pool *pgxpool.Pool) *ExerciseRepository {
	return &ExerciseRepository{pool: pool}
}

const insertExercise = `INSERT INTO exercises (id, user_id, name, category, calories_per_minute, emoji, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`

// Create inserts a new exercise into the user's catalog.
func (r *ExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (string, error) {
	if exercise.UserID == "" || exercise.Name == "" {
		return "", errors.New("exercise requires userId and name")
	}
	exercise.ID = uuid.NewString()
	exercise.CreatedAt = time.Now().UTC()

	_, err := r.pool.Exec(ctx, insertExercise,
		exercise.ID,
		exercise.UserID,
		exercise.Name,
		exercise.Category,
		exercise.CaloriesPerMinute,
		exercise.Emoji,
		exercise.CreatedAt,
	)
	if err != nil {
		return "", err
	}
	return exercise.ID, nil
}

// GetByUserID retrieves the user's exercise catalog.
func (r *ExerciseRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Exercise, error) {
	const query = `SELECT id, user_id, name, category, calories_per_minute, emoji, created_at
        FROM exercises WHERE user_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := []domain.Exercise{}
	for rows.Next() {
		var e domain.Exercise
		err := rows.Scan(&e.ID, &e.UserID, &e.Name, &e.Category, &e.CaloriesPerMinute, &e.Emoji, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// Seed inserts the default catalog for a new user inside one transaction.
func (r *ExerciseRepository) Seed(ctx context.Context, userID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	for _, e := range domain.DefaultExercises() {
		_, err := tx.Exec(ctx, insertExercise,
			uuid.NewString(), userID, e.Name, e.Category, e.CaloriesPerMinute, e.Emoji, now)
		if err != nil {
			return err
		}
		now = now.Add(time.Millisecond)
	}
	return tx.Commit(ctx)
}
