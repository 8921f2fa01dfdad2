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

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository.
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewWorkoutRepository creates a new workout repository.
func NewWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout. The caller validates the record; the
// repository only assigns identity, timestamps and the date default.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (string, error) {
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

	if _, err := r.collection.InsertOne(ctx, workout); err != nil {
		return "", err
	}
	return workout.ID, nil
}

// GetByID retrieves a single workout by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// GetByUserID retrieves all workouts for a user, newest-first by date.
func (r *mongoWorkoutRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Workout, error) {
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	return r.find(ctx, filter, findOptions)
}

// GetByUserAndDateRange retrieves workouts within [start, end], pushing the
// end boundary to the last instant of its civil day first.
func (r *mongoWorkoutRepository) GetByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]domain.Workout, error) {
	filter := bson.M{
		"userId": userID,
		"date": bson.M{
			"$gte": start.UTC(),
			"$lte": repository.EndOfDay(end),
		},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	return r.find(ctx, filter, findOptions)
}

func (r *mongoWorkoutRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Workout, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	workouts := []domain.Workout{}
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return workouts, nil
}

// Update shallow-merges the patch over the stored record. ID and UserID are
// never part of the update document.
func (r *mongoWorkoutRepository) Update(ctx context.Context, workoutID string, patch domain.WorkoutPatch) (*domain.Workout, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.ExerciseType != nil {
		set["exerciseType"] = *patch.ExerciseType
	}
	if patch.Duration != nil {
		set["duration"] = *patch.Duration
	}
	if patch.Calories != nil {
		set["calories"] = *patch.Calories
	}
	if patch.Intensity != nil {
		set["intensity"] = *patch.Intensity
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}
	if patch.Date != nil {
		set["date"] = patch.Date.UTC()
	}

	var workout domain.Workout
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": workoutID}, bson.M{"$set": set}, opts).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Covers both the newest-first listing and the date-range query.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
