package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fittrack/internal/domain"
	"fittrack/internal/repository"
)

// GoalRepository provides Postgres-backed persistence for goals.
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository constructs a GoalRepository.
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

// Create inserts a new goal with current forced to 0 regardless of input.
func (r *GoalRepository) Create(ctx context.Context, goal *domain.Goal) (string, error) {
	if goal.UserID == "" {
		return "", errors.New("goal requires userId")
	}
	goal.ID = uuid.NewString()
	goal.Current = 0
	if goal.Date.IsZero() {
		goal.Date = time.Now().UTC()
	}

	const query = `INSERT INTO goals (id, user_id, type, target, current, date) VALUES ($1,$2,$3,$4,$5,$6)`
	_, err := r.pool.Exec(ctx, query, goal.ID, goal.UserID, goal.Type, goal.Target, goal.Current, goal.Date)
	if err != nil {
		return "", err
	}
	return goal.ID, nil
}

// GetByUserID retrieves all goals for a user.
func (r *GoalRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Goal, error) {
	const query = `SELECT id, user_id, type, target, current, date FROM goals WHERE user_id=$1 ORDER BY date`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []domain.Goal{}
	for rows.Next() {
		var g domain.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Type, &g.Target, &g.Current, &g.Date); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// UpdateCurrent sets the goal's accumulated value and returns the result.
func (r *GoalRepository) UpdateCurrent(ctx context.Context, goalID string, current int) (*domain.Goal, error) {
	const query = `UPDATE goals SET current=$1 WHERE id=$2 RETURNING id, user_id, type, target, current, date`
	var g domain.Goal
	err := r.pool.QueryRow(ctx, query, current, goalID).Scan(&g.ID, &g.UserID, &g.Type, &g.Target, &g.Current, &g.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}
