package domain

import (
	"time"
)

// Intensity is the effort level of a workout session.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// Valid reports whether the intensity is one of the known levels.
func (i Intensity) Valid() bool {
	switch i {
	case IntensityLow, IntensityMedium, IntensityHigh:
		return true
	}
	return false
}

// Workout represents a single logged workout session.
// Date is when the workout happened (distinct from CreatedAt) and is stored
// in UTC; same-day checks compare civil dates, not instants.
type Workout struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	UserID       string    `bson:"userId" json:"userId"`
	ExerciseType string    `bson:"exerciseType" json:"exerciseType"`
	Duration     int       `bson:"duration" json:"duration"` // minutes
	Calories     int       `bson:"calories" json:"calories"`
	Intensity    Intensity `bson:"intensity" json:"intensity"`
	Notes        string    `bson:"notes,omitempty" json:"notes"`
	Date         time.Time `bson:"date" json:"date"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// WorkoutPatch carries the fields of a partial workout update.
// Nil fields are left untouched; ID and UserID are never patchable.
type WorkoutPatch struct {
	ExerciseType *string
	Duration     *int
	Calories     *int
	Intensity    *Intensity
	Notes        *string
	Date         *time.Time
}

// Empty reports whether the patch carries no fields at all.
func (p WorkoutPatch) Empty() bool {
	return p.ExerciseType == nil && p.Duration == nil && p.Calories == nil &&
		p.Intensity == nil && p.Notes == nil && p.Date == nil
}

// Apply merges the patch over the workout, field by field.
func (p WorkoutPatch) Apply(w *Workout) {
	if p.ExerciseType != nil {
		w.ExerciseType = *p.ExerciseType
	}
	if p.Duration != nil {
		w.Duration = *p.Duration
	}
	if p.Calories != nil {
		w.Calories = *p.Calories
	}
	if p.Intensity != nil {
		w.Intensity = *p.Intensity
	}
	if p.Notes != nil {
		w.Notes = *p.Notes
	}
	if p.Date != nil {
		w.Date = p.Date.UTC()
	}
}
