package domain

import (
	"time"
)

// Difficulty of a generated workout.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// DailyWorkout represents a single workout session of a user.
type DailyWorkout struct {
	ID              string     `bson:"_id" json:"id"`
	OwnerID         string     `bson:"ownerId" json:"ownerId"`
	Title           string     `bson:"title" json:"title"` // e.g. "Chest/Back (10/18/26)"
	DurationMinutes int        `bson:"durationMinutes" json:"durationMinutes"`
	Difficulty      Difficulty `bson:"difficulty" json:"difficulty"`
	Date            time.Time  `bson:"date" json:"date"`
	Completed       bool       `bson:"completed" json:"completed"`
	CompletedAt     *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	IsFavorite      bool       `bson:"isFavorite" json:"isFavorite"`
	IsShared        bool       `bson:"isShared" json:"isShared"`
	SharedWith      []string   `bson:"sharedWith" json:"sharedWith"` // user ids with read access
	WeeklyWorkoutID *string    `bson:"weeklyWorkoutId,omitempty" json:"weeklyWorkoutId,omitempty"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`

	// Exercises are stored separately and attached on read.
	Exercises []Exercise `bson:"-" json:"exercises"`
}

// IsVisibleTo reports whether userID may read the workout: the owner, anyone
// it is shared with, and everyone while it is not part of a weekly workout.
func (w *DailyWorkout) IsVisibleTo(userID string) bool {
	if w.OwnerID == userID || w.WeeklyWorkoutID == nil {
		return true
	}
	for _, id := range w.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}

// Exercise is one exercise of a DailyWorkout.
type Exercise struct {
	ID             string `bson:"_id" json:"id"`
	DailyWorkoutID string `bson:"dailyWorkoutId" json:"dailyWorkoutId"`
	Name           string `bson:"name" json:"name"`
	BodyPart       string `bson:"bodyPart" json:"bodyPart"`
	TargetSets     int    `bson:"targetSets" json:"targetSets"`
	TargetReps     string `bson:"targetReps" json:"targetReps"` // textual range, e.g. "8-10"
	Notes          string `bson:"notes" json:"notes"`
	Position       int    `bson:"position" json:"position"` // order within the workout
	Completed      bool   `bson:"completed" json:"completed"`

	Sets []ExerciseSet `bson:"-" json:"sets"`
}

// ExerciseSet is a single set of an Exercise. SetNumber is unique per exercise.
type ExerciseSet struct {
	ID         string  `bson:"_id" json:"id"`
	ExerciseID string  `bson:"exerciseId" json:"exerciseId"`
	SetNumber  int     `bson:"setNumber" json:"setNumber"`
	Weight     float64 `bson:"weight" json:"weight"`
	Reps       int     `bson:"reps" json:"reps"`
	Completed  bool    `bson:"completed" json:"completed"`
}

// WeeklyStatus is the lifecycle of a WeeklyWorkout.
type WeeklyStatus string

const (
	WeeklyInProgress WeeklyStatus = "in_progress"
	WeeklyCompleted  WeeklyStatus = "completed"
)

// WeeklyWorkout groups the daily workouts of one calendar week.
type WeeklyWorkout struct {
	ID            string       `bson:"_id" json:"id"`
	OwnerID       string       `bson:"ownerId" json:"ownerId"`
	WeekStartDate time.Time    `bson:"weekStartDate" json:"weekStartDate"`
	Status        WeeklyStatus `bson:"status" json:"status"`
	CreatedAt     time.Time    `bson:"createdAt" json:"createdAt"`

	Workouts []DailyWorkout `bson:"-" json:"workouts,omitempty"`
}
