package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fitpulse/backend/pkg/model"
)

func TestBMIRecommendations(t *testing.T) {
	tests := []struct {
		name      string
		bmi       float64
		targetBMI float64
		contains  string
	}{
		{"underweight", 17.0, 0, "calorie-dense"},
		{"overweight", 27.5, 0, "calorie deficit"},
		{"obese", 32.0, 0, "calorie deficit"},
		{"normal", 22.0, 0, "healthy habits"},
		{"target below current", 27.0, 24.0, "lose 3.0 BMI points"},
		{"target above current", 18.0, 20.5, "gain 2.5 BMI points"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := BMIRecommendations(tt.bmi, tt.targetBMI)
			require.NotEmpty(t, recs)
			found := false
			for _, r := range recs {
				if strings.Contains(r, tt.contains) {
					found = true
				}
			}
			assert.True(t, found, "expected a recommendation containing %q, got %v", tt.contains, recs)
		})
	}
}

func TestHealthRecommendations(t *testing.T) {
	events, profile, _, _ := newTestRepos(t)
	svc := NewProgressService(events, profile, DefaultStreakConfig(), zap.NewNop())
	ctx := context.Background()

	logEvent(t, events, model.Event{
		Type:  model.EventSleep,
		Date:  "2026-03-08",
		Sleep: &model.SleepDetails{Hours: 5.5, Quality: 4},
	})
	logEvent(t, events, model.Event{
		Type:   model.EventStress,
		Date:   "2026-03-08",
		Stress: &model.StressDetails{Level: 8},
	})

	recs := svc.HealthRecommendations(ctx, "2026-03-08")
	require.Len(t, recs, 3, "short sleep, missed water, and high stress each contribute")
	assert.Contains(t, recs[0], "5.5 hours")
	assert.Contains(t, recs[1], "Drink more water")
	assert.Contains(t, recs[2], "Stress is high")
}

func TestHealthRecommendations_EmptyDayStillAdvises(t *testing.T) {
	events, profile, _, _ := newTestRepos(t)
	svc := NewProgressService(events, profile, DefaultStreakConfig(), zap.NewNop())
	ctx := context.Background()

	// Meet the water target so no warning fires.
	target := profile.Get(ctx).Nutrition.WaterTargetGlasses
	logEvent(t, events, waterOn("2026-03-08", target))

	recs := svc.HealthRecommendations(ctx, "2026-03-08")
	require.NotEmpty(t, recs)
	assert.Contains(t, recs[0], "on track")
}
