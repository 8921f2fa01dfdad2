package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/internal/repository/memory"
	"fittrack/internal/service"
)

// Wednesday, 2024-05-15. The surrounding week runs Mon 13th .. Sun 19th.
var fixedNow = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	authService := service.NewAuthService(store.Users(), store.Exercises(), "test-secret", time.Hour)
	workoutService := service.NewWorkoutService(store.Workouts())
	goalService := service.NewGoalService(store.Goals(), store.Workouts())
	exerciseService := service.NewExerciseService(store.Exercises())

	router := gin.New()
	SetupRoutes(router, "test-secret", authService, workoutService, goalService, exerciseService, func() time.Time { return fixedNow })
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestRegisterValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "ab", // too short
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "alice",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterDuplicateConflict(t *testing.T) {
	router := newTestRouter(t)
	registerAndLogin(t, router, "alice")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "alice",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{
		"/api/v1/workouts",
		"/api/v1/workouts/weekly",
		"/api/v1/exercises",
		"/api/v1/goals",
		"/api/v1/stats/today",
		"/api/v1/stats/weekly",
		"/api/v1/stats/goals",
		"/api/v1/me",
	} {
		rec := doJSON(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestInvalidToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/workouts", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts", nil)
	req.Header.Set("Authorization", "Basic abc")
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusUnauthorized, rec2.Code)
}

func TestCreateAndListWorkouts(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "alice")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/workouts", token, gin.H{
		"exerciseType": "Running",
		"duration":     30,
		"calories":     250,
		"intensity":    "medium",
		"date":         fixedNow,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created WorkoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Nil(t, created.Notes)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/workouts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []WorkoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestCreateWorkoutLegacyAliases(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "alice")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/workouts", token, gin.H{
		"exerciseType":   "Cycling",
		"duration":       45,
		"caloriesBurned": 300,
		"workoutDate":    fixedNow,
		"intensity":      "high",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created WorkoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 300, created.Calories)
}

func TestCreateWorkoutMissingCalories(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "alice")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/workouts", token, gin.H{
		"exerciseType": "Running",
		"duration":     30,
		"intensity":    "low",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateWorkoutRejectsUnknownIntensity(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "alice")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/workouts", token, gin.H{
		"exerciseType": "Running",
		"duration":     30,
		"calories":     250,
		"intensity":    "extreme",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatchWorkout(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "alice")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/workouts", token, gin.H{
		"exerciseType": "Running",
		"duration":     30,
		"calories":     250,
		"intensity":    "medium",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created WorkoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, router, http.MethodPatch, "/api/v1/workouts/"+created.ID, token, gin.H{
		"calories": 400,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var patched WorkoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &patched))
	assert.Equal(t, 400, patched.Calories)
	assert.Equal(t, "Running", patched.ExerciseType)
}

func TestPatchWorkoutOfAnotherUserIs404(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := registerAndLogin(t, router, "alice")
	bobToken := registerAndLogin(t, router, "bob")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/workouts", aliceToken, gin.H{
		"exerciseType": "Running",
		"duration":     30,
		"calories":     250,
		"intensity":    "medium",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created WorkoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, router, http.MethodPatch, "/api/v1/workouts/"+created.ID, bobToken, gin.H{
		"calories": 1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWeeklyStats(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "alice")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/workouts", token, gin.H{
		"exerciseType": "Running",
		"duration":     30,
		"calories":     150,
		"intensity":    "medium",
		"date":         time.Date(2024, 5, 13, 8, 0, 0, 0, time.UTC), // Monday
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/stats/weekly", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary service.WeeklySummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Len(t, summary.Days, 7)
	assert.Equal(t, "Mon", summary.Days[0].Day)
	assert.Equal(t, 150, summary.Days[0].Calories)
	assert.InDelta(t, 96.0, summary.MaxScore, 0.001)
}

func TestTodayStats(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "alice")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/workouts", token, gin.H{
		"exerciseType": "Running",
		"duration":     30,
		"calories":     250,
		"intensity":    "medium",
		"date":         fixedNow.Add(-time.Hour),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/stats/today", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var totals struct {
		Workouts int `json:"workouts"`
		Calories int `json:"calories"`
		Duration int `json:"duration"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &totals))
	assert.Equal(t, 1, totals.Workouts)
	assert.Equal(t, 250, totals.Calories)
	assert.Equal(t, 30, totals.Duration)
}

func TestGoalsFlow(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "alice")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/goals", token, gin.H{
		"type":   "daily_calories",
		"target": 500,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var goal struct {
		ID      string `json:"id"`
		Target  int    `json:"target"`
		Current int    `json:"current"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &goal))
	assert.Equal(t, 500, goal.Target)
	assert.Zero(t, goal.Current)

	rec = doJSON(t, router, http.MethodPatch, "/api/v1/goals/"+goal.ID, token, gin.H{
		"current": 200,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/v1/workouts", token, gin.H{
		"exerciseType": "Running",
		"duration":     30,
		"calories":     250,
		"intensity":    "medium",
		"date":         fixedNow,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/stats/goals", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report struct {
		Calories struct {
			Current    int `json:"current"`
			Target     int `json:"target"`
			Percentage int `json:"percentage"`
		} `json:"calories"`
		Overall int `json:"overall"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 250, report.Calories.Current)
	assert.Equal(t, 500, report.Calories.Target)
	assert.Equal(t, 50, report.Calories.Percentage)
}

func TestCreateGoalRejectsUnknownType(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "alice")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/goals", token, gin.H{
		"type":   "weekly_steps",
		"target": 100,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExercisesSeededOnRegister(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "alice")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/exercises", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var exercises []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &exercises))
	assert.Len(t, exercises, 8)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/exercises", token, gin.H{
		"name":              "Rowing",
		"category":          "cardio",
		"caloriesPerMinute": 9,
		"emoji":             "🚣",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/v1/exercises", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &exercises))
	assert.Len(t, exercises, 9)
}

func TestMeEndpoint(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "alice")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		UserID string `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.UserID)
}
