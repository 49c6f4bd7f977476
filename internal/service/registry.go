package service

import "github.com/fitpulse/backend/pkg/model"

// ChallengeCatalog returns the built-in challenge definitions. Starting a
// challenge copies the definition into the gamification state; the catalog
// itself is never mutated.
func ChallengeCatalog() []model.Challenge {
	return []model.Challenge{
		{
			ID:          "seven-day-streak",
			Title:       "7-Day Streak",
			Description: "Complete your daily logging for 7 consecutive days",
			Points:      100,
			Duration:    "7 days",
			Type:        "consistency",
			Requirement: model.RequireStreakDays,
			Threshold:   7,
			Status:      model.ChallengeAvailable,
		},
		{
			ID:          "water-warrior",
			Title:       "Water Warrior",
			Description: "Meet your water goal for 5 days",
			Points:      75,
			Duration:    "5 days",
			Type:        "health",
			Requirement: model.RequireWaterDays,
			Threshold:   5,
			Status:      model.ChallengeAvailable,
		},
		{
			ID:          "workout-week",
			Title:       "Workout Week",
			Description: "Complete 5 workouts in 7 days",
			Points:      150,
			Duration:    "7 days",
			Type:        "fitness",
			Requirement: model.RequireWorkoutsWeek,
			Threshold:   5,
			Status:      model.ChallengeAvailable,
		},
		{
			ID:          "nutrition-ninja",
			Title:       "Nutrition Ninja",
			Description: "Log all meals for 3 days",
			Points:      50,
			Duration:    "3 days",
			Type:        "nutrition",
			Requirement: model.RequireNutritionDays,
			Threshold:   3,
			Status:      model.ChallengeAvailable,
		},
		{
			ID:          "sleep-champion",
			Title:       "Sleep Champion",
			Description: "Get 7+ hours of sleep for 4 nights",
			Points:      80,
			Duration:    "4 days",
			Type:        "recovery",
			Requirement: model.RequireSleepNights,
			Threshold:   4,
			Status:      model.ChallengeAvailable,
		},
	}
}

// RewardCatalog returns the redeemable reward definitions.
func RewardCatalog() []model.Reward {
	return []model.Reward{
		{ID: "rest-day-pass", Name: "Rest Day Pass", Description: "Skip a day guilt-free", Cost: 50, Type: "utility"},
		{ID: "custom-workout", Name: "Custom Workout", Description: "AI-generated personalized workout", Cost: 100, Type: "feature"},
		{ID: "nutrition-analysis", Name: "Nutrition Analysis", Description: "Detailed analysis of your eating habits", Cost: 75, Type: "insight"},
		{ID: "avatar-customization", Name: "Avatar Customization", Description: "Unlock special avatar features", Cost: 150, Type: "cosmetic"},
	}
}

// badgeSnapshot is the state a badge predicate is evaluated against.
type badgeSnapshot struct {
	StreakDays   int
	WorkoutCount int
}

// badgeDef pairs a badge with its unlock predicate. Predicates are data here
// so every consumer shares one registry instead of scattered conditionals.
type badgeDef struct {
	badge    model.Badge
	unlocked func(badgeSnapshot) bool
}

// badgeRegistry lists every badge the tracker can award. Earned badges are
// permanent even when the underlying condition later stops holding.
var badgeRegistry = []badgeDef{
	{
		badge:    model.Badge{ID: "week-warrior", Name: "Week Warrior", Emoji: "🔥", Description: "7-day streak"},
		unlocked: func(s badgeSnapshot) bool { return s.StreakDays >= 7 },
	},
	{
		badge:    model.Badge{ID: "fitness-starter", Name: "Fitness Starter", Emoji: "💪", Description: "10 workouts completed"},
		unlocked: func(s badgeSnapshot) bool { return s.WorkoutCount >= 10 },
	},
	{
		badge:    model.Badge{ID: "fitness-champion", Name: "Fitness Champion", Emoji: "🏆", Description: "50 workouts completed"},
		unlocked: func(s badgeSnapshot) bool { return s.WorkoutCount >= 50 },
	},
	{
		badge:    model.Badge{ID: "consistency-king", Name: "Consistency King", Emoji: "👑", Description: "30-day streak"},
		unlocked: func(s badgeSnapshot) bool { return s.StreakDays >= 30 },
	},
}

// WorkoutTemplateCatalog returns the fixed quick-start workout templates.
func WorkoutTemplateCatalog() []model.WorkoutTemplate {
	return []model.WorkoutTemplate{
		{
			Name:        "Quick Cardio",
			DurationMin: 15,
			Exercises: []model.Exercise{
				{Name: "Jumping Jacks", DurationSec: 60, RestSec: 30},
				{Name: "High Knees", DurationSec: 45, RestSec: 30},
				{Name: "Mountain Climbers", DurationSec: 45, RestSec: 30},
				{Name: "Burpees", DurationSec: 60, RestSec: 30},
			},
		},
		{
			Name:        "Full Body",
			DurationMin: 30,
			Exercises: []model.Exercise{
				{Name: "Squats", DurationSec: 45, RestSec: 30},
				{Name: "Push-ups", DurationSec: 45, RestSec: 30},
				{Name: "Plank", DurationSec: 60, RestSec: 30},
				{Name: "Lunges", DurationSec: 45, RestSec: 30},
			},
		},
		{
			Name:        "Stretch & Mobility",
			DurationMin: 20,
			Exercises: []model.Exercise{
				{Name: "Neck Stretches", DurationSec: 60, RestSec: 15},
				{Name: "Shoulder Rolls", DurationSec: 45, RestSec: 15},
				{Name: "Hamstring Stretch", DurationSec: 60, RestSec: 15},
				{Name: "Quad Stretch", DurationSec: 45, RestSec: 15},
			},
		},
	}
}

// TemplateCalories estimates the calories for a template workout at the
// rough 8 kcal/minute rate the tracker uses.
func TemplateCalories(t model.WorkoutTemplate) int {
	return t.DurationMin * 8
}
