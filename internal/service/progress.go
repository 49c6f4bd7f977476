package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fitpulse/backend/internal/metrics"
	"github.com/fitpulse/backend/internal/repository"
	"github.com/fitpulse/backend/pkg/model"
)

// EventSource is the event-log read surface the progress engine needs.
type EventSource interface {
	List(ctx context.Context, filter repository.EventFilter) []model.Event
	ListByDate(ctx context.Context, date string) []model.Event
	CountByType(ctx context.Context, t model.EventType) int
}

// ProfileSource provides the current profile snapshot.
type ProfileSource interface {
	Get(ctx context.Context) *model.Profile
}

// StreakConfig tunes the qualifying-day predicate for streak computation.
type StreakConfig struct {
	// MealsPerDay is how many logged meals count as "all meals logged".
	MealsPerDay int
	// MaxLookback bounds the backward walk so a corrupt log cannot spin.
	MaxLookback int
}

// DefaultStreakConfig matches the daily-logging notion the tracker uses.
func DefaultStreakConfig() StreakConfig {
	return StreakConfig{MealsPerDay: 3, MaxLookback: 365}
}

// ProgressService derives percent-to-target values, streaks, and weekly
// aggregates from the event log and the metrics engine. It holds no state of
// its own; everything is recomputed from the log on every call.
type ProgressService struct {
	events  EventSource
	profile ProfileSource
	streak  StreakConfig
	logger  *zap.Logger
}

// NewProgressService creates a new ProgressService.
func NewProgressService(events EventSource, profile ProfileSource, streak StreakConfig, logger *zap.Logger) *ProgressService {
	if streak.MealsPerDay <= 0 {
		streak.MealsPerDay = 3
	}
	if streak.MaxLookback <= 0 {
		streak.MaxLookback = 365
	}
	return &ProgressService{
		events:  events,
		profile: profile,
		streak:  streak,
		logger:  logger,
	}
}

// ProgressPercent clamps current/target into [0,100]. A non-positive target
// yields 0 rather than an error.
func ProgressPercent(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	pct := current / target * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// DailyTotals sums the meal events of the given ISO date. An empty day is an
// empty aggregate, not an error.
func (s *ProgressService) DailyTotals(ctx context.Context, date string) model.DailyTotals {
	var totals model.DailyTotals
	for _, e := range s.events.ListByDate(ctx, date) {
		if e.Type != model.EventMeal || e.Meal == nil {
			continue
		}
		totals.Calories += e.Meal.Calories
		totals.ProteinG += e.Meal.ProteinG
		totals.CarbsG += e.Meal.CarbsG
		totals.FatG += e.Meal.FatG
	}
	return totals
}

// WaterGlasses sums the water events of the given ISO date.
func (s *ProgressService) WaterGlasses(ctx context.Context, date string) int {
	glasses := 0
	for _, e := range s.events.ListByDate(ctx, date) {
		if e.Type == model.EventWater && e.Water != nil {
			glasses += e.Water.GlassesAdded
		}
	}
	return glasses
}

// WeeklyCount counts events of the given variant with a date in
// [refDate-7d, refDate] inclusive.
func (s *ProgressService) WeeklyCount(ctx context.Context, t model.EventType, refDate string) int {
	ref, err := time.Parse(model.DateLayout, refDate)
	if err != nil {
		return 0
	}
	from := ref.AddDate(0, 0, -7).Format(model.DateLayout)
	return len(s.events.List(ctx, repository.EventFilter{Type: t, From: from, To: refDate}))
}

// StreakDays walks backward from refDate counting consecutive qualifying
// days. The streak is derived fresh from the log on every call; it is never
// an independently mutated counter, so it cannot drift.
func (s *ProgressService) StreakDays(ctx context.Context, refDate string) int {
	ref, err := time.Parse(model.DateLayout, refDate)
	if err != nil {
		return 0
	}

	waterTarget := s.profile.Get(ctx).Nutrition.WaterTargetGlasses

	days := 0
	for i := 0; i < s.streak.MaxLookback; i++ {
		date := ref.AddDate(0, 0, -i).Format(model.DateLayout)
		if !s.dayQualifies(ctx, date, waterTarget) {
			break
		}
		days++
	}
	return days
}

// dayQualifies implements the qualifying-day predicate: at least one workout,
// or all intended meals logged, or the water target met.
func (s *ProgressService) dayQualifies(ctx context.Context, date string, waterTarget int) bool {
	meals, workouts, glasses := 0, 0, 0
	for _, e := range s.events.ListByDate(ctx, date) {
		switch e.Type {
		case model.EventWorkout:
			workouts++
		case model.EventMeal:
			meals++
		case model.EventWater:
			if e.Water != nil {
				glasses += e.Water.GlassesAdded
			}
		}
	}
	if workouts >= 1 {
		return true
	}
	if meals >= s.streak.MealsPerDay {
		return true
	}
	return waterTarget > 0 && glasses >= waterTarget
}

// DailyProgress is the percent-to-target view of a single day.
type DailyProgress struct {
	Date            string            `json:"date"`
	Totals          model.DailyTotals `json:"totals"`
	CaloriePercent  float64           `json:"calorie_percent"`
	ProteinPercent  float64           `json:"protein_percent"`
	WaterGlasses    int               `json:"water_glasses"`
	WaterPercent    float64           `json:"water_percent"`
	WorkoutsLogged  int               `json:"workouts_logged"`
	MealsLogged     int               `json:"meals_logged"`
	CheckInComplete bool              `json:"check_in_complete"`
}

// DailyProgressFor assembles the full daily dashboard row for a date.
func (s *ProgressService) DailyProgressFor(ctx context.Context, date string) DailyProgress {
	summary := metrics.Summarize(s.profile.Get(ctx))
	totals := s.DailyTotals(ctx, date)
	glasses := s.WaterGlasses(ctx, date)

	workouts, meals, checkIn := 0, 0, false
	for _, e := range s.events.ListByDate(ctx, date) {
		switch e.Type {
		case model.EventWorkout:
			workouts++
		case model.EventMeal:
			meals++
		case model.EventMood:
			checkIn = true
		}
	}

	return DailyProgress{
		Date:            date,
		Totals:          totals,
		CaloriePercent:  ProgressPercent(totals.Calories, float64(summary.CalorieTarget)),
		ProteinPercent:  ProgressPercent(totals.ProteinG, float64(summary.ProteinTarget)),
		WaterGlasses:    glasses,
		WaterPercent:    ProgressPercent(float64(glasses), float64(summary.WaterTarget)),
		WorkoutsLogged:  workouts,
		MealsLogged:     meals,
		CheckInComplete: checkIn,
	}
}

// WeeklyBucket is one week of aggregated activity, newest last.
type WeeklyBucket struct {
	WeekStart string  `json:"week_start"`
	Workouts  int     `json:"workouts"`
	Calories  float64 `json:"calories"`
	ProteinG  float64 `json:"protein_g"`
}

// WeeklySummary aggregates the reference week plus history buckets.
type WeeklySummary struct {
	WorkoutCount   int            `json:"workout_count"`
	WorkoutTarget  int            `json:"workout_target"`
	WorkoutPercent float64        `json:"workout_percent"`
	StreakDays     int            `json:"streak_days"`
	History        []WeeklyBucket `json:"history"`
}

// WeeklySummaryFor aggregates the 7 days ending at refDate plus the four
// preceding week buckets.
func (s *ProgressService) WeeklySummaryFor(ctx context.Context, refDate string) (WeeklySummary, error) {
	ref, err := time.Parse(model.DateLayout, refDate)
	if err != nil {
		return WeeklySummary{}, fmt.Errorf("invalid reference date %q: %w", refDate, err)
	}

	target := s.profile.Get(ctx).Goals.WeeklyWorkoutTarget
	count := s.WeeklyCount(ctx, model.EventWorkout, refDate)

	history := make([]WeeklyBucket, 0, 4)
	for w := 3; w >= 0; w-- {
		end := ref.AddDate(0, 0, -7*w)
		start := end.AddDate(0, 0, -6)
		bucket := WeeklyBucket{WeekStart: start.Format(model.DateLayout)}
		for _, e := range s.events.List(ctx, repository.EventFilter{
			From: start.Format(model.DateLayout),
			To:   end.Format(model.DateLayout),
		}) {
			switch e.Type {
			case model.EventWorkout:
				bucket.Workouts++
			case model.EventMeal:
				if e.Meal != nil {
					bucket.Calories += e.Meal.Calories
					bucket.ProteinG += e.Meal.ProteinG
				}
			}
		}
		history = append(history, bucket)
	}

	summary := WeeklySummary{
		WorkoutCount:   count,
		WorkoutTarget:  target,
		WorkoutPercent: ProgressPercent(float64(count), float64(target)),
		StreakDays:     s.StreakDays(ctx, refDate),
		History:        history,
	}

	s.logger.Debug("weekly summary computed",
		zap.String("ref_date", refDate),
		zap.Int("workouts", count),
		zap.Int("streak_days", summary.StreakDays),
	)

	return summary, nil
}
