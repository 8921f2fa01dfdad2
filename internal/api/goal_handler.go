package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"fittrack/internal/domain"
	"fittrack/internal/service"
)

// GoalHandler holds the goal service dependency.
type GoalHandler struct {
	goalService service.GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// --- DTOs ---

type CreateGoalRequest struct {
	Type   domain.GoalType `json:"type" binding:"required,oneof=daily_calories daily_workouts active_time"`
	Target int             `json:"target" binding:"required,min=1"`
}

// PatchGoalRequest updates the accumulated value only; type and target are
// not editable through PATCH.
type PatchGoalRequest struct {
	Current *int `json:"current" binding:"required,min=0"`
}

// --- Handler Methods ---

// ListGoals returns the user's goals.
func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	goals, err := h.goalService.List(c.Request.Context(), userID)
	if err != nil {
		log.Errorf("list goals failed: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch goals.")
		return
	}
	c.JSON(http.StatusOK, goals)
}

// CreateGoal creates a goal for the user; current always starts at 0.
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	goal, err := h.goalService.Create(c.Request.Context(), userID, req.Type, req.Target)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Errorf("create goal failed: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to create goal.")
		return
	}
	c.JSON(http.StatusCreated, goal)
}

// PatchGoal updates a goal's current value.
func (h *GoalHandler) PatchGoal(c *gin.Context) {
	var req PatchGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	goal, err := h.goalService.UpdateCurrent(c.Request.Context(), userID, c.Param("id"), *req.Current)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGoalNotFound):
			abortWithError(c, http.StatusNotFound, "Goal not found")
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			log.Errorf("patch goal failed: %s", err)
			abortWithError(c, http.StatusInternalServerError, "Failed to update goal.")
		}
		return
	}
	c.JSON(http.StatusOK, goal)
}
