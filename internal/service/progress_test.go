package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fitpulse/backend/internal/metrics"
	"github.com/fitpulse/backend/internal/repository"
	"github.com/fitpulse/backend/pkg/model"
)

func newTestRepos(t *testing.T) (*repository.EventRepository, *repository.ProfileRepository, *repository.GamificationRepository, *repository.GoalRepository) {
	t.Helper()
	store := repository.NewStore()
	logger := zap.NewNop()
	return repository.NewEventRepository(store, logger),
		repository.NewProfileRepository(store, logger),
		repository.NewGamificationRepository(store, logger),
		repository.NewGoalRepository(store, logger)
}

func logEvent(t *testing.T, repo *repository.EventRepository, e model.Event) {
	t.Helper()
	require.NoError(t, repo.Append(context.Background(), &e))
}

func workoutOn(date string) model.Event {
	return model.Event{
		Type: model.EventWorkout,
		Date: date,
		Workout: &model.WorkoutDetails{
			DurationMin: 30,
			Calories:    250,
			Intensity:   6,
			Type:        "cardio",
		},
	}
}

func mealOn(date string, calories, protein float64) model.Event {
	return model.Event{
		Type: model.EventMeal,
		Date: date,
		Meal: &model.MealDetails{
			MealType: model.MealLunch,
			FoodName: "bowl",
			Calories: calories,
			ProteinG: protein,
			CarbsG:   40,
			FatG:     10,
		},
	}
}

func waterOn(date string, glasses int) model.Event {
	return model.Event{
		Type:  model.EventWater,
		Date:  date,
		Water: &model.WaterDetails{GlassesAdded: glasses},
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		target   float64
		expected float64
	}{
		{"zero target", 50, 0, 0},
		{"negative target", 50, -10, 0},
		{"halfway", 50, 100, 50},
		{"exactly at target", 100, 100, 100},
		{"over target clamps", 250, 100, 100},
		{"negative current clamps", -20, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ProgressPercent(tt.current, tt.target))
		})
	}
}

func TestDailyTotals_SumsOnlyMeals(t *testing.T) {
	events, profile, _, _ := newTestRepos(t)
	svc := NewProgressService(events, profile, DefaultStreakConfig(), zap.NewNop())

	logEvent(t, events, mealOn("2026-03-02", 500, 30))
	logEvent(t, events, mealOn("2026-03-02", 700, 45))
	logEvent(t, events, workoutOn("2026-03-02"))
	logEvent(t, events, mealOn("2026-03-03", 400, 20))

	totals := svc.DailyTotals(context.Background(), "2026-03-02")
	assert.Equal(t, 1200.0, totals.Calories)
	assert.Equal(t, 75.0, totals.ProteinG)

	empty := svc.DailyTotals(context.Background(), "2026-03-10")
	assert.Zero(t, empty.Calories)
	assert.Zero(t, empty.ProteinG)
}

func TestWaterGlasses_AccumulatesAcrossEvents(t *testing.T) {
	events, profile, _, _ := newTestRepos(t)
	svc := NewProgressService(events, profile, DefaultStreakConfig(), zap.NewNop())

	logEvent(t, events, waterOn("2026-03-02", 3))
	logEvent(t, events, waterOn("2026-03-02", 2))
	logEvent(t, events, waterOn("2026-03-03", 5))

	assert.Equal(t, 5, svc.WaterGlasses(context.Background(), "2026-03-02"))
	assert.Equal(t, 5, svc.WaterGlasses(context.Background(), "2026-03-03"))
	assert.Equal(t, 0, svc.WaterGlasses(context.Background(), "2026-03-04"))
}

func TestWeeklyCount_InclusiveWindow(t *testing.T) {
	events, profile, _, _ := newTestRepos(t)
	svc := NewProgressService(events, profile, DefaultStreakConfig(), zap.NewNop())

	logEvent(t, events, workoutOn("2026-03-01")) // ref-7, inside
	logEvent(t, events, workoutOn("2026-03-05"))
	logEvent(t, events, workoutOn("2026-03-08")) // ref, inside
	logEvent(t, events, workoutOn("2026-02-28")) // outside

	assert.Equal(t, 3, svc.WeeklyCount(context.Background(), model.EventWorkout, "2026-03-08"))
}

func TestStreakDays_CountsConsecutiveQualifyingDays(t *testing.T) {
	events, profile, _, _ := newTestRepos(t)
	svc := NewProgressService(events, profile, DefaultStreakConfig(), zap.NewNop())

	// Three consecutive workout days ending at the reference date.
	logEvent(t, events, workoutOn("2026-03-06"))
	logEvent(t, events, workoutOn("2026-03-07"))
	logEvent(t, events, workoutOn("2026-03-08"))

	assert.Equal(t, 3, svc.StreakDays(context.Background(), "2026-03-08"))
}

func TestStreakDays_GapBreaksStreak(t *testing.T) {
	events, profile, _, _ := newTestRepos(t)
	svc := NewProgressService(events, profile, DefaultStreakConfig(), zap.NewNop())

	logEvent(t, events, workoutOn("2026-03-04"))
	// 2026-03-05 has no activity.
	logEvent(t, events, workoutOn("2026-03-06"))
	logEvent(t, events, workoutOn("2026-03-07"))

	assert.Equal(t, 2, svc.StreakDays(context.Background(), "2026-03-07"))
	assert.Equal(t, 0, svc.StreakDays(context.Background(), "2026-03-05"))
}

func TestStreakDays_WaterTargetQualifiesDay(t *testing.T) {
	events, profile, _, _ := newTestRepos(t)
	svc := NewProgressService(events, profile, DefaultStreakConfig(), zap.NewNop())

	ctx := context.Background()
	target := profile.Get(ctx).Nutrition.WaterTargetGlasses
	require.Positive(t, target)

	logEvent(t, events, waterOn("2026-03-08", target))
	assert.Equal(t, 1, svc.StreakDays(ctx, "2026-03-08"))

	// Below the target does not qualify.
	logEvent(t, events, waterOn("2026-03-09", target-1))
	assert.Equal(t, 0, svc.StreakDays(ctx, "2026-03-09"))
}

func TestStreakDays_MealsQualifyDay(t *testing.T) {
	events, profile, _, _ := newTestRepos(t)
	svc := NewProgressService(events, profile, StreakConfig{MealsPerDay: 2, MaxLookback: 30}, zap.NewNop())

	logEvent(t, events, mealOn("2026-03-08", 400, 25))
	assert.Equal(t, 0, svc.StreakDays(context.Background(), "2026-03-08"))

	logEvent(t, events, mealOn("2026-03-08", 600, 35))
	assert.Equal(t, 1, svc.StreakDays(context.Background(), "2026-03-08"))
}

func TestStreakDays_RecomputedFromLog(t *testing.T) {
	events, profile, _, _ := newTestRepos(t)
	svc := NewProgressService(events, profile, DefaultStreakConfig(), zap.NewNop())

	logEvent(t, events, workoutOn("2026-03-07"))
	logEvent(t, events, workoutOn("2026-03-08"))

	// Repeated reads never mutate the streak.
	for i := 0; i < 5; i++ {
		assert.Equal(t, 2, svc.StreakDays(context.Background(), "2026-03-08"))
	}
}

func TestDailyProgressFor_PercentsAgainstDerivedTargets(t *testing.T) {
	events, profile, _, _ := newTestRepos(t)
	svc := NewProgressService(events, profile, DefaultStreakConfig(), zap.NewNop())

	ctx := context.Background()
	summary := metrics.Summarize(profile.Get(ctx))
	half := float64(summary.CalorieTarget) / 2

	logEvent(t, events, mealOn("2026-03-08", half, 10))
	logEvent(t, events, workoutOn("2026-03-08"))
	logEvent(t, events, model.Event{
		Type: model.EventMood,
		Date: "2026-03-08",
		Mood: &model.MoodDetails{Mood: model.MoodHappy},
	})

	day := svc.DailyProgressFor(ctx, "2026-03-08")
	assert.Equal(t, "2026-03-08", day.Date)
	assert.InDelta(t, 50.0, day.CaloriePercent, 0.1)
	assert.Equal(t, 1, day.WorkoutsLogged)
	assert.Equal(t, 1, day.MealsLogged)
	assert.True(t, day.CheckInComplete)
}

func TestWeeklySummaryFor(t *testing.T) {
	events, profile, _, _ := newTestRepos(t)
	svc := NewProgressService(events, profile, DefaultStreakConfig(), zap.NewNop())

	ctx := context.Background()
	p := profile.Get(ctx)
	p.Goals.WeeklyWorkoutTarget = 4
	profile.Save(ctx, p)

	logEvent(t, events, workoutOn("2026-03-06"))
	logEvent(t, events, workoutOn("2026-03-08"))
	logEvent(t, events, mealOn("2026-03-07", 600, 40))

	summary, err := svc.WeeklySummaryFor(ctx, "2026-03-08")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.WorkoutCount)
	assert.Equal(t, 4, summary.WorkoutTarget)
	assert.Equal(t, 50.0, summary.WorkoutPercent)
	require.Len(t, summary.History, 4)

	// The newest bucket holds this week's activity.
	latest := summary.History[3]
	assert.Equal(t, 2, latest.Workouts)
	assert.Equal(t, 600.0, latest.Calories)
	assert.Equal(t, 40.0, latest.ProteinG)

	// History buckets are ordered oldest first, seven days apart.
	for i := 1; i < len(summary.History); i++ {
		prev, err := time.Parse(model.DateLayout, summary.History[i-1].WeekStart)
		require.NoError(t, err)
		cur, err := time.Parse(model.DateLayout, summary.History[i].WeekStart)
		require.NoError(t, err)
		assert.Equal(t, 7*24*time.Hour, cur.Sub(prev))
	}
}

func TestWeeklySummaryFor_InvalidDate(t *testing.T) {
	events, profile, _, _ := newTestRepos(t)
	svc := NewProgressService(events, profile, DefaultStreakConfig(), zap.NewNop())

	_, err := svc.WeeklySummaryFor(context.Background(), "not-a-date")
	assert.Error(t, err)
}
