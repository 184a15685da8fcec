package api

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler serves workout generation and progress tracking.
type WorkoutHandler struct {
	workoutService  service.WorkoutService
	progressService service.ProgressService
}

func NewWorkoutHandler(workoutService service.WorkoutService, progressService service.ProgressService) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService:  workoutService,
		progressService: progressService,
	}
}

// --- Request/Response Structs ---

type GenerateWorkoutRequest struct {
	DurationMinutes int                     `json:"durationMinutes" binding:"required"`
	Difficulty      string                  `json:"difficulty" binding:"required"`
	BodyParts       []string                `json:"bodyParts" binding:"required"`
	Sharing         *service.SharingOptions `json:"sharing"`
}

type UpdateSetRequest struct {
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
	Completed bool    `json:"completed"`
}

type UpdateSetResponse struct {
	ExerciseCompleted bool `json:"exerciseCompleted"`
}

type CompleteWorkoutResponse struct {
	WeekCompleted bool `json:"weekCompleted"`
}

type FavoriteRequest struct {
	IsFavorite *bool `json:"isFavorite" binding:"required"`
}

// --- Handler Methods ---

// GenerateWorkout godoc
// @Summary Generate a workout
// @Description Picks random exercises from the catalog for each requested body part.
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateWorkoutRequest true "Generator options"
// @Success 201 {object} domain.DailyWorkout
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "No exercises for a body part"
// @Router /workouts [post]
func (h *WorkoutHandler) GenerateWorkout(c *gin.Context) {
	var req GenerateWorkoutRequest
	// Difficulty and body parts are checked by the service, not by binding tags
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Call the WorkoutService to pick and store the exercises
	workout, err := h.workoutService.Generate(c.Request.Context(), getUserIDFromContext(c), service.GenerateRequest{
		DurationMinutes: req.DurationMinutes,
		Difficulty:      domain.Difficulty(req.Difficulty),
		BodyParts:       req.BodyParts,
		Sharing:         req.Sharing,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Return the stored workout with its exercises and empty sets
	c.JSON(http.StatusCreated, workout)
}

// GetWorkout godoc
// @Summary Get a workout with its exercises and sets
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 200 {object} domain.DailyWorkout
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{id} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	workout, err := h.workoutService.GetWorkout(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// CopyWorkout godoc
// @Summary Add a copy of a workout to the caller's current week
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Source workout ID"
// @Success 201 {object} domain.DailyWorkout
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{id}/copy [post]
func (h *WorkoutHandler) CopyWorkout(c *gin.Context) {
	workout, err := h.workoutService.AddToWeek(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

// GetCurrentWeek godoc
// @Summary List workouts of the current week
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.DailyWorkout
// @Router /workouts/week [get]
func (h *WorkoutHandler) GetCurrentWeek(c *gin.Context) {
	workouts, err := h.progressService.GetCurrentWeekWorkouts(c.Request.Context(), getUserIDFromContext(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	// Always return a JSON array, never null
	if workouts == nil {
		workouts = []domain.DailyWorkout{}
	}
	c.JSON(http.StatusOK, workouts)
}

// GetFavorites godoc
// @Summary List favorite workouts
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.DailyWorkout
// @Router /workouts/favorites [get]
func (h *WorkoutHandler) GetFavorites(c *gin.Context) {
	workouts, err := h.workoutService.ListFavorites(c.Request.Context(), getUserIDFromContext(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	if workouts == nil {
		workouts = []domain.DailyWorkout{}
	}
	c.JSON(http.StatusOK, workouts)
}

// CompleteWorkout godoc
// @Summary Mark a workout completed
// @Description Completes the workout and, when every day of its week is done, the weekly workout.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 200 {object} CompleteWorkoutResponse
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{id}/complete [post]
func (h *WorkoutHandler) CompleteWorkout(c *gin.Context) {
	weekCompleted, err := h.progressService.CompleteWorkout(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, CompleteWorkoutResponse{WeekCompleted: weekCompleted})
}

// SetFavorite godoc
// @Summary Flag or unflag a workout as favorite
// @Tags Workouts
// @Accept json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Param request body FavoriteRequest true "Favorite flag"
// @Success 204
// @Router /workouts/{id}/favorite [put]
func (h *WorkoutHandler) SetFavorite(c *gin.Context) {
	var req FavoriteRequest
	// isFavorite is a pointer so that an explicit false passes the required check
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Not owning the workout is not an error, the flag is simply left alone
	err := h.progressService.ToggleFavorite(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), *req.IsFavorite)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteWorkout godoc
// @Summary Delete a workout with its exercises and sets
// @Tags Workouts
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 204
// @Router /workouts/{id} [delete]
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	if err := h.progressService.DeleteWorkout(c.Request.Context(), getUserIDFromContext(c), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateSet godoc
// @Summary Record weight, reps and completion for one set
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ID"
// @Param setNumber path int true "Set number, starting at 1"
// @Param request body UpdateSetRequest true "Set values"
// @Success 200 {object} UpdateSetResponse
// @Failure 400 {object} gin.H "Invalid set values"
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /exercises/{exerciseId}/sets/{setNumber} [put]
func (h *WorkoutHandler) UpdateSet(c *gin.Context) {
	// Parse the set number from the URL path
	setNumber, err := strconv.Atoi(c.Param("setNumber"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid set number")
		return
	}

	var req UpdateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	exerciseCompleted, err := h.progressService.UpdateExerciseSet(
		c.Request.Context(),
		getUserIDFromContext(c),
		c.Param("exerciseId"),
		setNumber,
		service.SetUpdate{Weight: req.Weight, Reps: req.Reps, Completed: req.Completed},
	)
	if err != nil {
		respondWithError(c, err)
		return
	}
	// Tell the client whether this set finished the exercise
	c.JSON(http.StatusOK, UpdateSetResponse{ExerciseCompleted: exerciseCompleted})
}

// GetStats godoc
// @Summary Progress summary for the current week
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.WorkoutStats
// @Router /stats [get]
func (h *WorkoutHandler) GetStats(c *gin.Context) {
	stats, err := h.progressService.ComputeStats(c.Request.Context(), getUserIDFromContext(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetBodyParts godoc
// @Summary List the body parts the generator can target
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string
// @Router /catalog/body-parts [get]
func (h *WorkoutHandler) GetBodyParts(c *gin.Context) {
	parts, err := h.workoutService.ListBodyParts(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	if parts == nil {
		parts = []string{}
	}
	c.JSON(http.StatusOK, parts)
}
