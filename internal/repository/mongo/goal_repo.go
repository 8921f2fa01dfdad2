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

const goalCollectionName = "goals"

// mongoGoalRepository implements repository.GoalRepository.
type mongoGoalRepository struct {
	collection *mongo.Collection
}

// NewGoalRepository creates a new goal repository.
func NewGoalRepository(db *mongo.Database) repository.GoalRepository {
	return &mongoGoalRepository{
		collection: db.Collection(goalCollectionName),
	}
}

// Create inserts a new goal with Current forced to 0 regardless of input.
func (r *mongoGoalRepository) Create(ctx context.Context, goal *domain.Goal) (string, error) {
	if goal.UserID == "" {
		return "", errors.New("goal requires userId")
	}
	goal.ID = uuid.NewString()
	goal.Current = 0
	if goal.Date.IsZero() {
		goal.Date = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, goal); err != nil {
		return "", err
	}
	return goal.ID, nil
}

// GetByUserID retrieves all goals for a user.
func (r *mongoGoalRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Goal, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	goals := []domain.Goal{}
	if err = cursor.All(ctx, &goals); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return goals, nil
}

// UpdateCurrent sets the goal's accumulated value and returns the result.
func (r *mongoGoalRepository) UpdateCurrent(ctx context.Context, goalID string, current int) (*domain.Goal, error) {
	var goal domain.Goal
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"current": current}}
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": goalID}, update, opts).Decode(&goal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

// EnsureGoalIndexes creates necessary indexes. Call during startup.
func EnsureGoalIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
