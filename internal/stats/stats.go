// Package stats is the aggregation engine: pure functions that turn a list
// of workouts (plus optional goal targets) into today's totals, a weekly
// series and goal progress. It performs no I/O and never fails; every
// reducer has a defined zero result for empty input.
package stats

import (
	"math"
	"time"

	"fittrack/internal/domain"
)

// Weights of the activity score, a blend of calories and active minutes
// used only for relative bar-height scaling in the weekly chart.
const (
	calorieWeight  = 0.4
	durationWeight = 0.6

	// minChartScale keeps a lone non-zero day from rendering at full
	// height and guards the divide when the whole week is empty.
	minChartScale = 50.0
)

// Default daily targets when a user has no stored goal of a type, matching
// the dashboard defaults.
const (
	DefaultCaloriesTarget   = 600
	DefaultWorkoutsTarget   = 3
	DefaultActiveTimeTarget = 90
)

var dayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DailyTotals are the roll-ups for a single civil day.
type DailyTotals struct {
	Workouts int `json:"workouts"`
	Calories int `json:"calories"`
	Duration int `json:"duration"`
}

// DaySummary is one bucket of the weekly series.
type DaySummary struct {
	Day           string  `json:"day"`
	Calories      int     `json:"calories"`
	Workouts      int     `json:"workouts"`
	Duration      int     `json:"duration"`
	ActivityScore float64 `json:"activityScore"`
}

// GoalProgress is the live completion state of a single goal category.
type GoalProgress struct {
	Current    int  `json:"current"`
	Target     int  `json:"target"`
	Percentage int  `json:"percentage"`
	Achieved   bool `json:"achieved"`
}

// GoalReport combines the three goal categories with an overall figure.
type GoalReport struct {
	Calories   GoalProgress `json:"calories"`
	Workouts   GoalProgress `json:"workouts"`
	ActiveTime GoalProgress `json:"activeTime"`
	Overall    int          `json:"overall"`
	Achieved   int          `json:"achieved"`
}

// TodayTotals sums the workouts that fall on now's civil date.
func TodayTotals(workouts []domain.Workout, now time.Time) DailyTotals {
	var totals DailyTotals
	for _, w := range workouts {
		if !SameDay(w.Date, now) {
			continue
		}
		totals.Workouts++
		totals.Calories += w.Calories
		totals.Duration += w.Duration
	}
	return totals
}

// ActivityScore blends calories and active minutes, weighting
// time-under-load over raw calories.
func ActivityScore(calories, duration int) float64 {
	return float64(calories)*calorieWeight + float64(duration)*2*durationWeight
}

// Weekly buckets workouts into the seven civil days Monday..Sunday of now's
// week. Workouts outside the window are ignored; empty days produce zero
// buckets, never gaps.
func Weekly(workouts []domain.Workout, now time.Time) []DaySummary {
	weekStart := WeekStart(now)
	series := make([]DaySummary, 7)
	keys := make(map[string]int, 7)
	for i := range series {
		day := weekStart.AddDate(0, 0, i)
		series[i].Day = dayNames[i]
		keys[DayKey(day)] = i
	}
	for _, w := range workouts {
		i, ok := keys[DayKey(w.Date)]
		if !ok {
			continue
		}
		series[i].Calories += w.Calories
		series[i].Duration += w.Duration
		series[i].Workouts++
	}
	for i := range series {
		series[i].ActivityScore = ActivityScore(series[i].Calories, series[i].Duration)
	}
	return series
}

// MaxActivityScore returns the chart scale factor: the highest score of the
// week, floored at 50.
func MaxActivityScore(series []DaySummary) float64 {
	maxScore := minChartScale
	for _, day := range series {
		if day.ActivityScore > maxScore {
			maxScore = day.ActivityScore
		}
	}
	return maxScore
}

// Percentage computes current/target as a whole percentage capped at 100.
// A non-positive target yields 0; there is no division by zero here.
func Percentage(current, target int) int {
	if target <= 0 {
		return 0
	}
	pct := int(math.Round(float64(current) / float64(target) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// OverallProgress is the rounded mean of the category percentages.
func OverallProgress(percentages ...int) int {
	if len(percentages) == 0 {
		return 0
	}
	sum := 0
	for _, p := range percentages {
		sum += p
	}
	return int(math.Round(float64(sum) / float64(len(percentages))))
}

// Progress measures today's totals against the user's stored goal targets.
// Categories without a stored goal fall back to the default targets. The
// stored Current field is never consulted; progress is always live.
func Progress(totals DailyTotals, goals []domain.Goal) GoalReport {
	targets := map[domain.GoalType]int{
		domain.GoalTypeDailyCalories: DefaultCaloriesTarget,
		domain.GoalTypeDailyWorkouts: DefaultWorkoutsTarget,
		domain.GoalTypeActiveTime:    DefaultActiveTimeTarget,
	}
	for _, g := range goals {
		if g.Type.Valid() && g.Target >= 1 {
			targets[g.Type] = g.Target
		}
	}

	report := GoalReport{
		Calories:   progressFor(totals.Calories, targets[domain.GoalTypeDailyCalories]),
		Workouts:   progressFor(totals.Workouts, targets[domain.GoalTypeDailyWorkouts]),
		ActiveTime: progressFor(totals.Duration, targets[domain.GoalTypeActiveTime]),
	}
	report.Overall = OverallProgress(
		report.Calories.Percentage,
		report.Workouts.Percentage,
		report.ActiveTime.Percentage,
	)
	for _, p := range []GoalProgress{report.Calories, report.Workouts, report.ActiveTime} {
		if p.Achieved {
			report.Achieved++
		}
	}
	return report
}

func progressFor(current, target int) GoalProgress {
	pct := Percentage(current, target)
	return GoalProgress{
		Current:    current,
		Target:     target,
		Percentage: pct,
		Achieved:   pct >= 100,
	}
}
