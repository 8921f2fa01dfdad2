package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fittrack/internal/service"
)

// SetupRoutes wires all handlers onto the router. The clock is injectable
// for tests; pass nil for time.Now.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	workoutService service.WorkoutService,
	goalService service.GoalService,
	exerciseService service.ExerciseService,
	now func() time.Time,
) {
	authHandler := NewAuthHandler(authService)
	workoutHandler := NewWorkoutHandler(workoutService, now)
	goalHandler := NewGoalHandler(goalService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	statsHandler := NewStatsHandler(workoutService, goalService, now)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID})
		})

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			// Registered before the :id route matters for readability
			// only; gin keeps static segments ahead of params.
			workoutGroup.GET("/weekly", workoutHandler.WeeklyWorkouts)
			workoutGroup.PATCH("/:id", workoutHandler.PatchWorkout)
		}

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
		}

		goalGroup := protected.Group("/goals")
		{
			goalGroup.GET("", goalHandler.ListGoals)
			goalGroup.POST("", goalHandler.CreateGoal)
			goalGroup.PATCH("/:id", goalHandler.PatchGoal)
		}

		statsGroup := protected.Group("/stats")
		{
			statsGroup.GET("/today", statsHandler.TodayStats)
			statsGroup.GET("/weekly", statsHandler.WeeklyStats)
			statsGroup.GET("/goals", statsHandler.GoalStats)
		}
	}
}
