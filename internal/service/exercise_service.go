package service

import (
	"context"
	"fmt"

	"fittrack/internal/domain"
	"fittrack/internal/repository"
)

// ExerciseService handles the per-user exercise catalog. Pass-through CRUD;
// no aggregation semantics live here.
type ExerciseService interface {
	List(ctx context.Context, userID string) ([]domain.Exercise, error)
	Create(ctx context.Context, userID, name, category string, caloriesPerMinute int, emoji string) (*domain.Exercise, error)
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo}
}

// List returns the user's exercise catalog.
func (s *exerciseService) List(ctx context.Context, userID string) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetByUserID(ctx, userID)
}

// Create adds a new exercise to the user's catalog.
func (s *exerciseService) Create(ctx context.Context, userID, name, category string, caloriesPerMinute int, emoji string) (*domain.Exercise, error) {
	if name == "" || category == "" {
		return nil, fmt.Errorf("%w: name and category are required", ErrValidationFailed)
	}
	if caloriesPerMinute < 1 {
		return nil, fmt.Errorf("%w: caloriesPerMinute must be at least 1", ErrValidationFailed)
	}

	exercise := &domain.Exercise{
		UserID:            userID,
		Name:              name,
		Category:          category,
		CaloriesPerMinute: caloriesPerMinute,
		Emoji:             emoji,
	}
	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = exerciseID
	return exercise, nil
}
