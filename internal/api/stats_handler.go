package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"fittrack/internal/service"
)

// StatsHandler serves the aggregated dashboard views. All computation
// happens in the stats package; the handler only fetches and serializes.
type StatsHandler struct {
	workoutService service.WorkoutService
	goalService    service.GoalService
	now            func() time.Time
}

// NewStatsHandler creates a new StatsHandler. The clock is injectable for
// tests; production callers pass nil to use time.Now.
func NewStatsHandler(workoutService service.WorkoutService, goalService service.GoalService, now func() time.Time) *StatsHandler {
	if now == nil {
		now = time.Now
	}
	return &StatsHandler{
		workoutService: workoutService,
		goalService:    goalService,
		now:            now,
	}
}

// TodayStats returns today's workout/calorie/duration totals.
func (h *StatsHandler) TodayStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	totals, err := h.workoutService.TodayTotals(c.Request.Context(), userID, h.now())
	if err != nil {
		log.Errorf("today stats failed: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to compute today stats.")
		return
	}
	c.JSON(http.StatusOK, totals)
}

// WeeklyStats returns the Mon..Sun series with the chart scale factor.
func (h *StatsHandler) WeeklyStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	summary, err := h.workoutService.WeeklySummary(c.Request.Context(), userID, h.now())
	if err != nil {
		log.Errorf("weekly stats failed: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to compute weekly stats.")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GoalStats returns the live goal-progress report.
func (h *StatsHandler) GoalStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	report, err := h.goalService.Progress(c.Request.Context(), userID, h.now())
	if err != nil {
		log.Errorf("goal stats failed: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to compute goal progress.")
		return
	}
	c.JSON(http.StatusOK, report)
}
