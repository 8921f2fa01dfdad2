package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"fittrack/internal/service"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

type CreateExerciseRequest struct {
	Name              string `json:"name" binding:"required"`
	Category          string `json:"category" binding:"required"`
	CaloriesPerMinute int    `json:"caloriesPerMinute" binding:"required,min=1"`
	Emoji             string `json:"emoji"`
}

// ListExercises returns the user's exercise catalog.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	exercises, err := h.exerciseService.List(c.Request.Context(), userID)
	if err != nil {
		log.Errorf("list exercises failed: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch exercises.")
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// CreateExercise adds an exercise to the user's catalog.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	exercise, err := h.exerciseService.Create(c.Request.Context(), userID, req.Name, req.Category, req.CaloriesPerMinute, req.Emoji)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Errorf("create exercise failed: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to create exercise.")
		return
	}
	c.JSON(http.StatusCreated, exercise)
}
