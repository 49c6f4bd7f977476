// Package repository implements the in-memory session store backing the
// engines: the profile, the append-only event log, user goals, and the
// gamification state. One Store is created per user session and destroyed
// with it; there is exactly one logical writer at a time, and the mutex only
// guards the HTTP shell's concurrent reads.
package repository

import (
	"sync"
	"time"

	"github.com/fitpulse/backend/pkg/model"
)

// Store is the per-session application state container. All repositories
// share one Store; nothing else holds mutable state.
type Store struct {
	mu sync.RWMutex

	profile      model.Profile
	events       []model.Event
	goals        []*model.Goal
	gamification model.GamificationState
}

// NewStore creates a session store seeded with the default profile.
func NewStore() *Store {
	return &Store{
		profile: defaultProfile(),
		gamification: model.GamificationState{
			AwardedDays: make(model.AwardLedger),
		},
	}
}

// defaultProfile mirrors the values a fresh session starts with before the
// user edits anything.
func defaultProfile() model.Profile {
	return model.Profile{
		Personal: model.Personal{
			Age:      25,
			Gender:   model.GenderMale,
			HeightCm: 170,
			WeightKg: 70,
		},
		Goals: model.FitnessGoals{
			PrimaryGoal:         model.GoalWeightLoss,
			TargetWeightKg:      65,
			FitnessLevel:        model.LevelBeginner,
			WeeklyWorkoutTarget: 3,
		},
		Nutrition: model.NutritionPrefs{
			WaterTargetGlasses: 8,
		},
		Lifestyle: model.Lifestyle{
			ActivityLevel: model.ActivityModerate,
		},
		UpdatedAt: time.Now(),
	}
}
