package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fittrack/internal/domain"
	"fittrack/internal/repository"
)

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository.
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewExerciseRepository creates a new exercise repository.
func NewExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// Create inserts a new exercise into the user's catalog.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (string, error) {
	if exercise.UserID == "" || exercise.Name == "" {
		return "", errors.New("exercise requires userId and name")
	}
	exercise.ID = uuid.NewString()
	exercise.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, exercise); err != nil {
		return "", err
	}
	return exercise.ID, nil
}

// GetByUserID retrieves the user's exercise catalog.
func (r *mongoExerciseRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Exercise, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	exercises := []domain.Exercise{}
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

// Seed inserts the default exercise catalog for a new user.
func (r *mongoExerciseRepository) Seed(ctx context.Context, userID string) error {
	defaults := domain.DefaultExercises()
	docs := make([]interface{}, 0, len(defaults))
	now := time.Now().UTC()
	for _, e := range defaults {
		e.ID = uuid.NewString()
		e.UserID = userID
		e.CreatedAt = now
		now = now.Add(time.Millisecond)
		docs = append(docs, e)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// EnsureExerciseIndexes creates necessary indexes. Call during startup.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
