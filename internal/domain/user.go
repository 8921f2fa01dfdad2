package domain

import (
	"time"
)

// User is an account that owns workouts, goals and an exercise library.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"passwordHash" json:"-"` // never expose via JSON
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
