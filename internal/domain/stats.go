package domain

// Completion counts items and how many of them are done.
type Completion struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Rate      int `json:"rate"` // percent, 0-100
}

// WorkoutStats is the progress summary of a user for the current week.
type WorkoutStats struct {
	WeeklyWorkouts     int           `json:"weeklyWorkouts"`
	CompletedWorkouts  int           `json:"completedWorkouts"`
	CompletionRate     int           `json:"completionRate"`
	ExerciseCompletion Completion    `json:"exerciseCompletion"`
	Partner            *PartnerStats `json:"partner"`
}

// PartnerStats is the same summary computed for an accepted partner, over the
// partner's most recent weekly workout.
type PartnerStats struct {
	UserID             string     `json:"userId"`
	Name               string     `json:"name"`
	WeeklyWorkouts     int        `json:"weeklyWorkouts"`
	CompletedWorkouts  int        `json:"completedWorkouts"`
	CompletionRate     int        `json:"completionRate"`
	ExerciseCompletion Completion `json:"exerciseCompletion"`
}
