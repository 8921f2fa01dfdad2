package domain

import (
	"time"
)

// GoalType identifies what a daily goal measures.
type GoalType string

const (
	GoalTypeDailyCalories GoalType = "daily_calories"
	GoalTypeDailyWorkouts GoalType = "daily_workouts"
	GoalTypeActiveTime    GoalType = "active_time"
)

// Valid reports whether the goal type is one of the known categories.
func (t GoalType) Valid() bool {
	switch t {
	case GoalTypeDailyCalories, GoalTypeDailyWorkouts, GoalTypeActiveTime:
		return true
	}
	return false
}

// Goal is a per-user daily target. Current starts at 0 and is updated
// explicitly; live progress is always computed from workouts, never read
// back from Current.
type Goal struct {
	ID      string    `bson:"_id,omitempty" json:"id"`
	UserID  string    `bson:"userId" json:"userId"`
	Type    GoalType  `bson:"type" json:"type"`
	Target  int       `bson:"target" json:"target"`
	Current int       `bson:"current" json:"current"`
	Date    time.Time `bson:"date" json:"date"`
}
