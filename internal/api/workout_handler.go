package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"fittrack/internal/domain"
	"fittrack/internal/service"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	now            func() time.Time
}

// NewWorkoutHandler creates a new WorkoutHandler. The clock is injectable
// for tests; production callers pass nil to use time.Now.
func NewWorkoutHandler(workoutService service.WorkoutService, now func() time.Time) *WorkoutHandler {
	if now == nil {
		now = time.Now
	}
	return &WorkoutHandler{workoutService: workoutService, now: now}
}

// --- DTOs ---

// CreateWorkoutRequest is the canonical create shape. The caloriesBurned
// and workoutDate aliases come from the older client lineage and are
// accepted only when the canonical fields are absent.
type CreateWorkoutRequest struct {
	ExerciseType string           `json:"exerciseType" binding:"required"`
	Duration     int              `json:"duration" binding:"required,min=1"`
	Calories     *int             `json:"calories" binding:"omitempty,min=0"`
	Intensity    domain.Intensity `json:"intensity" binding:"required,oneof=low medium high"`
	Notes        string           `json:"notes"`
	Date         *time.Time       `json:"date"`

	CaloriesBurned *int       `json:"caloriesBurned" binding:"omitempty,min=0"`
	WorkoutDate    *time.Time `json:"workoutDate"`
}

// PatchWorkoutRequest carries any subset of patchable workout fields.
type PatchWorkoutRequest struct {
	ExerciseType *string           `json:"exerciseType"`
	Duration     *int              `json:"duration"`
	Calories     *int              `json:"calories"`
	Intensity    *domain.Intensity `json:"intensity"`
	Notes        *string           `json:"notes"`
	Date         *time.Time        `json:"date"`
}

// WorkoutResponse is the wire shape of a workout. Notes serialize as null
// when empty.
type WorkoutResponse struct {
	ID           string           `json:"id"`
	UserID       string           `json:"userId"`
	ExerciseType string           `json:"exerciseType"`
	Duration     int              `json:"duration"`
	Calories     int              `json:"calories"`
	Intensity    domain.Intensity `json:"intensity"`
	Notes        *string          `json:"notes"`
	Date         time.Time        `json:"date"`
}

// MapWorkoutToResponse converts a domain.Workout to the response DTO.
func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	if w == nil {
		return WorkoutResponse{}
	}
	var notes *string
	if w.Notes != "" {
		notes = &w.Notes
	}
	return WorkoutResponse{
		ID:           w.ID,
		UserID:       w.UserID,
		ExerciseType: w.ExerciseType,
		Duration:     w.Duration,
		Calories:     w.Calories,
		Intensity:    w.Intensity,
		Notes:        notes,
		Date:         w.Date,
	}
}

// MapWorkoutsToResponse converts a slice of workouts to response DTOs.
func MapWorkoutsToResponse(workouts []domain.Workout) []WorkoutResponse {
	responses := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		responses[i] = MapWorkoutToResponse(&workouts[i])
	}
	return responses
}

// --- Handler Methods ---

// ListWorkouts returns the authenticated user's workouts, newest-first.
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	workouts, err := h.workoutService.List(c.Request.Context(), userID)
	if err != nil {
		log.Errorf("list workouts failed: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch workouts.")
		return
	}
	c.JSON(http.StatusOK, MapWorkoutsToResponse(workouts))
}

// CreateWorkout validates and logs a new workout.
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	calories := req.Calories
	if calories == nil {
		calories = req.CaloriesBurned
	}
	if calories == nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: calories is required")
		return
	}
	date := req.Date
	if date == nil {
		date = req.WorkoutDate
	}

	input := service.WorkoutInput{
		ExerciseType: req.ExerciseType,
		Duration:     req.Duration,
		Calories:     *calories,
		Intensity:    req.Intensity,
		Notes:        req.Notes,
	}
	if date != nil {
		input.Date = *date
	}

	workout, err := h.workoutService.Log(c.Request.Context(), userID, input)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Errorf("create workout failed: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to create workout.")
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

// PatchWorkout applies a partial update to one of the user's workouts.
func (h *WorkoutHandler) PatchWorkout(c *gin.Context) {
	var req PatchWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	patch := domain.WorkoutPatch{
		ExerciseType: req.ExerciseType,
		Duration:     req.Duration,
		Calories:     req.Calories,
		Intensity:    req.Intensity,
		Notes:        req.Notes,
		Date:         req.Date,
	}

	workout, err := h.workoutService.Patch(c.Request.Context(), userID, c.Param("id"), patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutNotFound):
			abortWithError(c, http.StatusNotFound, "Workout not found")
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			log.Errorf("patch workout failed: %s", err)
			abortWithError(c, http.StatusInternalServerError, "Failed to update workout.")
		}
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// WeeklyWorkouts returns the raw workouts of the current Monday-Sunday
// window, computed server-side.
func (h *WorkoutHandler) WeeklyWorkouts(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	workouts, err := h.workoutService.WeeklyWorkouts(c.Request.Context(), userID, h.now())
	if err != nil {
		log.Errorf("weekly workouts failed: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch weekly workouts.")
		return
	}
	c.JSON(http.StatusOK, MapWorkoutsToResponse(workouts))
}
