package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/internal/domain"
	"fittrack/internal/repository/memory"
)

// Wednesday, 2024-05-15. The surrounding week runs Mon 13th .. Sun 19th.
var testNow = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func newWorkoutService() WorkoutService {
	return NewWorkoutService(memory.NewStore().Workouts())
}

func validInput() WorkoutInput {
	return WorkoutInput{
		ExerciseType: "Running",
		Duration:     30,
		Calories:     250,
		Intensity:    domain.IntensityMedium,
		Date:         testNow,
	}
}

func TestLogRejectsInvalidInput(t *testing.T) {
	svc := newWorkoutService()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*WorkoutInput)
	}{
		{"missing exercise type", func(in *WorkoutInput) { in.ExerciseType = "" }},
		{"zero duration", func(in *WorkoutInput) { in.Duration = 0 }},
		{"negative calories", func(in *WorkoutInput) { in.Calories = -1 }},
		{"unknown intensity", func(in *WorkoutInput) { in.Intensity = "extreme" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := svc.Log(ctx, "user-1", in)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}

func TestLogPersistsWorkout(t *testing.T) {
	svc := newWorkoutService()
	ctx := context.Background()

	workout, err := svc.Log(ctx, "user-1", validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, workout.ID)
	assert.Equal(t, "user-1", workout.UserID)

	listed, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, workout.ID, listed[0].ID)
}

func TestPatchMergesFields(t *testing.T) {
	svc := newWorkoutService()
	ctx := context.Background()

	workout, err := svc.Log(ctx, "user-1", validInput())
	require.NoError(t, err)

	newCalories := 400
	updated, err := svc.Patch(ctx, "user-1", workout.ID, domain.WorkoutPatch{Calories: &newCalories})
	require.NoError(t, err)
	assert.Equal(t, 400, updated.Calories)
	assert.Equal(t, "Running", updated.ExerciseType)
	assert.Equal(t, 30, updated.Duration)
}

func TestPatchRejectsInvalidFields(t *testing.T) {
	svc := newWorkoutService()
	ctx := context.Background()

	workout, err := svc.Log(ctx, "user-1", validInput())
	require.NoError(t, err)

	badDuration := 0
	_, err = svc.Patch(ctx, "user-1", workout.ID, domain.WorkoutPatch{Duration: &badDuration})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestPatchUnknownWorkout(t *testing.T) {
	svc := newWorkoutService()

	calories := 100
	_, err := svc.Patch(context.Background(), "user-1", "no-such-id", domain.WorkoutPatch{Calories: &calories})
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestPatchForeignWorkoutLooksMissing(t *testing.T) {
	svc := newWorkoutService()
	ctx := context.Background()

	workout, err := svc.Log(ctx, "owner", validInput())
	require.NoError(t, err)

	calories := 100
	_, err = svc.Patch(ctx, "intruder", workout.ID, domain.WorkoutPatch{Calories: &calories})
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestTodayTotalsIgnoresOtherDays(t *testing.T) {
	svc := newWorkoutService()
	ctx := context.Background()

	in := validInput()
	_, err := svc.Log(ctx, "user-1", in)
	require.NoError(t, err)

	yesterday := validInput()
	yesterday.Date = testNow.AddDate(0, 0, -1)
	yesterday.Calories = 999
	_, err = svc.Log(ctx, "user-1", yesterday)
	require.NoError(t, err)

	totals, err := svc.TodayTotals(ctx, "user-1", testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, totals.Workouts)
	assert.Equal(t, 250, totals.Calories)
	assert.Equal(t, 30, totals.Duration)
}

func TestWeeklySummaryBucketsByDay(t *testing.T) {
	svc := newWorkoutService()
	ctx := context.Background()

	monday := validInput()
	monday.Date = time.Date(2024, 5, 13, 8, 0, 0, 0, time.UTC)
	monday.Calories = 150
	monday.Duration = 30
	_, err := svc.Log(ctx, "user-1", monday)
	require.NoError(t, err)

	// Outside the Mon 13th .. Sun 19th window.
	lastWeek := validInput()
	lastWeek.Date = time.Date(2024, 5, 12, 8, 0, 0, 0, time.UTC)
	_, err = svc.Log(ctx, "user-1", lastWeek)
	require.NoError(t, err)

	summary, err := svc.WeeklySummary(ctx, "user-1", testNow)
	require.NoError(t, err)
	require.Len(t, summary.Days, 7)
	assert.Equal(t, "Mon", summary.Days[0].Day)
	assert.Equal(t, 150, summary.Days[0].Calories)
	assert.Equal(t, 1, summary.Days[0].Workouts)
	for _, day := range summary.Days[1:] {
		assert.Zero(t, day.Workouts)
	}
	// 150*0.4 + 30*2*0.6 = 96
	assert.InDelta(t, 96.0, summary.Days[0].ActivityScore, 0.001)
	assert.InDelta(t, 96.0, summary.MaxScore, 0.001)
}

func TestWeeklyWorkoutsWindow(t *testing.T) {
	svc := newWorkoutService()
	ctx := context.Background()

	inWeek := validInput()
	inWeek.Date = time.Date(2024, 5, 19, 23, 0, 0, 0, time.UTC) // Sunday night
	_, err := svc.Log(ctx, "user-1", inWeek)
	require.NoError(t, err)

	nextWeek := validInput()
	nextWeek.Date = time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC) // next Monday
	_, err = svc.Log(ctx, "user-1", nextWeek)
	require.NoError(t, err)

	workouts, err := svc.WeeklyWorkouts(ctx, "user-1", testNow)
	require.NoError(t, err)
	require.Len(t, workouts, 1)
	assert.True(t, workouts[0].Date.Equal(inWeek.Date) || workouts[0].Date.Day() == 19)
}
