package service

import (
	"context"
	"fmt"
	"math"

	"github.com/fitpulse/backend/internal/metrics"
	"github.com/fitpulse/backend/pkg/model"
)

// BMIRecommendations returns deterministic advice strings for a BMI value and
// the delta to the target BMI. Always returns at least one entry so the
// presentation layer has something to render.
func BMIRecommendations(bmi, targetBMI float64) []string {
	var recs []string

	switch metrics.CategoryOf(bmi) {
	case metrics.Underweight:
		recs = append(recs,
			"Focus on calorie-dense, nutritious foods",
			"Include strength training to build muscle mass",
			"Consider smaller, more frequent meals",
		)
	case metrics.Overweight, metrics.Obese:
		recs = append(recs,
			"Create a consistent calorie deficit",
			"Combine cardio and strength training",
			"Focus on whole foods and protein",
		)
	}

	if targetBMI > 0 && math.Abs(targetBMI-bmi) >= 0.5 {
		direction := "lose"
		if targetBMI > bmi {
			direction = "gain"
		}
		recs = append(recs, fmt.Sprintf("Aim to %s %.1f BMI points to reach your target", direction, math.Abs(targetBMI-bmi)))
	}

	if len(recs) == 0 {
		recs = append(recs,
			"Maintain your current healthy habits",
			"Focus on body composition rather than weight",
		)
	}

	return recs
}

// HealthRecommendations derives advice from the reference day's logged
// events: short sleep, missed water target, and high stress each contribute a
// line. An empty log yields general guidance, never an error.
func (s *ProgressService) HealthRecommendations(ctx context.Context, refDate string) []string {
	var recs []string

	profile := s.profile.Get(ctx)
	events := s.events.ListByDate(ctx, refDate)

	var sleepHours float64
	sleepLogged := false
	stressLevel := 0
	for _, e := range events {
		switch e.Type {
		case model.EventSleep:
			if e.Sleep != nil {
				sleepHours = e.Sleep.Hours
				sleepLogged = true
			}
		case model.EventStress:
			if e.Stress != nil && e.Stress.Level > stressLevel {
				stressLevel = e.Stress.Level
			}
		}
	}

	if sleepLogged && sleepHours < 7 {
		recs = append(recs, fmt.Sprintf("Aim for 7-9 hours of sleep. Current: %.1f hours", sleepHours))
	}

	glasses := s.WaterGlasses(ctx, refDate)
	if target := profile.Nutrition.WaterTargetGlasses; target > 0 && glasses < target {
		recs = append(recs, fmt.Sprintf("Drink more water: %d/%d glasses today", glasses, target))
	}

	if stressLevel >= 7 {
		recs = append(recs, "Stress is high today. Try a short walk or breathing exercise")
	}

	if len(recs) == 0 {
		recs = append(recs,
			"You're on track today. Keep the routine going",
			"Consistency beats intensity. Small daily actions add up",
		)
	}

	return recs
}
