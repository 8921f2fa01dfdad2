package domain

import (
	"time"
)

// Exercise is an entry in a user's exercise library. The catalog only feeds
// icon/color lookups and the add-workout form; it carries no aggregation
// semantics.
type Exercise struct {
	ID                string    `bson:"_id,omitempty" json:"id"`
	UserID            string    `bson:"userId" json:"userId"`
	Name              string    `bson:"name" json:"name"`
	Category          string    `bson:"category" json:"category"`
	CaloriesPerMinute int       `bson:"caloriesPerMinute" json:"caloriesPerMinute"`
	Emoji             string    `bson:"emoji" json:"emoji"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
}

// DefaultExercises is the starter catalog seeded for every new user.
func DefaultExercises() []Exercise {
	return []Exercise{
		{Name: "Running", Category: "cardio", CaloriesPerMinute: 8, Emoji: "🏃‍♂️"},
		{Name: "Push-ups", Category: "strength", CaloriesPerMinute: 5, Emoji: "💪"},
		{Name: "Yoga", Category: "flexibility", CaloriesPerMinute: 3, Emoji: "🧘‍♀️"},
		{Name: "HIIT", Category: "cardio", CaloriesPerMinute: 12, Emoji: "⚡"},
		{Name: "Cycling", Category: "cardio", CaloriesPerMinute: 6, Emoji: "🚴‍♂️"},
		{Name: "Swimming", Category: "cardio", CaloriesPerMinute: 10, Emoji: "🏊‍♂️"},
		{Name: "Weight Training", Category: "strength", CaloriesPerMinute: 7, Emoji: "🏋️‍♂️"},
		{Name: "Pilates", Category: "flexibility", CaloriesPerMinute: 4, Emoji: "🤸‍♀️"},
	}
}
