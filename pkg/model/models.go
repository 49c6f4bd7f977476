package model

import "time"

// DateLayout is the ISO date format used for all event and goal dates.
const DateLayout = "2006-01-02"

// Gender identifies the profile gender used by the BMR formula.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// PrimaryGoal is the profile's headline fitness goal.
type PrimaryGoal string

const (
	GoalWeightLoss     PrimaryGoal = "weight_loss"
	GoalMuscleGain     PrimaryGoal = "muscle_gain"
	GoalMaintenance    PrimaryGoal = "maintenance"
	GoalEndurance      PrimaryGoal = "endurance"
	GoalStrength       PrimaryGoal = "strength"
	GoalGeneralFitness PrimaryGoal = "general_fitness"
)

// FitnessLevel describes training experience.
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
	LevelAthlete      FitnessLevel = "athlete"
)

// ActivityLevel describes day-to-day activity outside workouts.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Personal holds body metrics and identity fields.
type Personal struct {
	Name     string  `json:"name"`
	Age      int     `json:"age"`
	Gender   Gender  `json:"gender"`
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
}

// FitnessGoals holds the profile's goal configuration.
type FitnessGoals struct {
	PrimaryGoal         PrimaryGoal  `json:"primary_goal"`
	TargetWeightKg      float64      `json:"target_weight_kg"`
	FitnessLevel        FitnessLevel `json:"fitness_level"`
	WeeklyWorkoutTarget int          `json:"weekly_workout_target"`
}

// NutritionPrefs holds nutrition preferences and overrides.
type NutritionPrefs struct {
	WaterTargetGlasses    int  `json:"water_target_glasses"`
	CalorieTargetOverride *int `json:"calorie_target_override,omitempty"`
}

// Lifestyle holds lifestyle attributes feeding the TDEE multiplier.
type Lifestyle struct {
	ActivityLevel ActivityLevel `json:"activity_level"`
}

// Profile is the single mutable user profile.
type Profile struct {
	Personal  Personal       `json:"personal"`
	Goals     FitnessGoals   `json:"goals"`
	Nutrition NutritionPrefs `json:"nutrition"`
	Lifestyle Lifestyle      `json:"lifestyle"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// EventType tags the event union variant.
type EventType string

const (
	EventWorkout EventType = "workout"
	EventMeal    EventType = "meal"
	EventWater   EventType = "water"
	EventSleep   EventType = "sleep"
	EventMood    EventType = "mood"
	EventStress  EventType = "stress"
	EventVital   EventType = "vital"
)

// MealType identifies which meal of the day a meal event belongs to.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Mood is a logged mood value.
type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodEnergized Mood = "energized"
	MoodNeutral   Mood = "neutral"
	MoodTired     Mood = "tired"
	MoodSad       Mood = "sad"
	MoodAngry     Mood = "angry"
)

// WorkoutDetails is the payload of a workout event.
type WorkoutDetails struct {
	DurationMin int    `json:"duration_min"`
	Calories    int    `json:"calories"`
	Intensity   int    `json:"intensity"` // 1-10
	Type        string `json:"type"`
	Notes       string `json:"notes,omitempty"`
}

// MealDetails is the payload of a meal event.
type MealDetails struct {
	MealType MealType `json:"meal_type"`
	FoodName string   `json:"food_name"`
	Calories float64  `json:"calories"`
	ProteinG float64  `json:"protein_g"`
	CarbsG   float64  `json:"carbs_g"`
	FatG     float64  `json:"fat_g"`
}

// WaterDetails is the payload of a water event.
type WaterDetails struct {
	GlassesAdded int `json:"glasses_added"`
}

// SleepDetails is the payload of a sleep event.
type SleepDetails struct {
	Hours   float64 `json:"hours"`   // 3-12
	Quality int     `json:"quality"` // 1-10
	WakeUps int     `json:"wake_ups"`
}

// MoodDetails is the payload of a mood event.
type MoodDetails struct {
	Mood   Mood   `json:"mood"`
	Reason string `json:"reason,omitempty"`
}

// StressDetails is the payload of a stress event.
type StressDetails struct {
	Level    int      `json:"level"` // 1-10
	Symptoms []string `json:"symptoms,omitempty"`
	Causes   string   `json:"causes,omitempty"`
}

// VitalDetails is the payload of a vital-sign event. Either a heart rate or a
// blood pressure pair is present.
type VitalDetails struct {
	HeartRateBpm *int `json:"heart_rate_bpm,omitempty"`
	Systolic     *int `json:"systolic,omitempty"`
	Diastolic    *int `json:"diastolic,omitempty"`
}

// Event is one append-only log entry. Exactly one payload pointer matching
// Type is set. Events are immutable once appended.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Date      string    `json:"date"` // ISO date, DateLayout
	Time      string    `json:"time,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Workout *WorkoutDetails `json:"workout,omitempty"`
	Meal    *MealDetails    `json:"meal,omitempty"`
	Water   *WaterDetails   `json:"water,omitempty"`
	Sleep   *SleepDetails   `json:"sleep,omitempty"`
	Mood    *MoodDetails    `json:"mood,omitempty"`
	Stress  *StressDetails  `json:"stress,omitempty"`
	Vital   *VitalDetails   `json:"vital,omitempty"`
}

// GoalPriority orders user-defined goals.
type GoalPriority string

const (
	PriorityLow    GoalPriority = "low"
	PriorityMedium GoalPriority = "medium"
	PriorityHigh   GoalPriority = "high"
)

// GoalStatus is the lifecycle state of a user-defined goal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
)

// Goal is a user-defined target distinct from the profile's primary goal.
// Once Status is GoalCompleted the goal is immutable except for display.
type Goal struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Category      string       `json:"category"`
	Target        float64      `json:"target"`
	Current       float64      `json:"current"`
	Unit          string       `json:"unit"`
	StartDate     string       `json:"start_date"`
	EndDate       string       `json:"end_date"`
	Priority      GoalPriority `json:"priority"`
	Status        GoalStatus   `json:"status"`
	CompletedDate *string      `json:"completed_date,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Badge is a permanent achievement marker. Earned badges are never removed,
// even if the condition that unlocked them later stops holding.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	EarnedDate  string `json:"earned_date,omitempty"`
}

// ChallengeStatus is the lifecycle state of a challenge instance.
type ChallengeStatus string

const (
	ChallengeAvailable ChallengeStatus = "available"
	ChallengeActive    ChallengeStatus = "active"
	ChallengeCompleted ChallengeStatus = "completed"
	ChallengeAbandoned ChallengeStatus = "abandoned"
)

// ChallengeRequirement names the predicate a challenge is scored against.
type ChallengeRequirement string

const (
	RequireStreakDays    ChallengeRequirement = "streak_days"
	RequireWaterDays     ChallengeRequirement = "water_days"
	RequireWorkoutsWeek  ChallengeRequirement = "workouts_week"
	RequireNutritionDays ChallengeRequirement = "nutrition_days"
	RequireSleepNights   ChallengeRequirement = "sleep_nights"
)

// Challenge is a time-boxed goal with a point reward on completion. The
// registry holds the definitions; starting one creates an instance with a
// start date and progress recomputed from the event log.
type Challenge struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Points      int                  `json:"points"`
	Duration    string               `json:"duration"`
	Type        string               `json:"type"`
	Requirement ChallengeRequirement `json:"requirement"`
	Threshold   int                  `json:"threshold"`
	Status      ChallengeStatus      `json:"status"`
	StartDate   string               `json:"start_date,omitempty"`
	Progress    float64              `json:"progress"` // percent, 0-100
}

// Reward is a redeemable catalog entry.
type Reward struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
	Type        string `json:"type"`
}

// Redemption records a spent reward.
type Redemption struct {
	ID           string    `json:"id"`
	RewardID     string    `json:"reward_id"`
	RewardName   string    `json:"reward_name"`
	Cost         int       `json:"cost"`
	RedeemedDate string    `json:"redeemed_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// GamificationState is the single per-user gamification record. Level is
// always derived from TotalPoints and never stored independently.
type GamificationState struct {
	TotalPoints         int          `json:"total_points"`
	EarnedBadges        []Badge      `json:"earned_badges"`
	Redemptions         []Redemption `json:"redemptions"`
	ActiveChallenges    []Challenge  `json:"active_challenges"`
	CompletedChallenges []string     `json:"completed_challenges"`
	AwardedDays         AwardLedger  `json:"awarded_days"`
	StreakBonusRuns     []string     `json:"streak_bonus_runs"`
	RestDayPasses       int          `json:"rest_day_passes"`
	CustomWorkout       bool         `json:"custom_workout_available"`
}

// AwardLedger tracks which point categories already fired for a given day so
// repeat actions on the same day cannot double-award.
type AwardLedger map[string]map[string]bool

// Awarded reports whether the category already fired on date.
func (l AwardLedger) Awarded(date, category string) bool {
	return l[date][category]
}

// Mark records that the category fired on date.
func (l AwardLedger) Mark(date, category string) {
	if l[date] == nil {
		l[date] = make(map[string]bool)
	}
	l[date][category] = true
}

// StreakBonusPaid reports whether a milestone bonus was already paid for the
// streak run spanning [runStart, date]. Backdated events can extend a run
// backwards; its recorded start then falls inside the span and still counts.
// ISO dates compare lexicographically.
func (s *GamificationState) StreakBonusPaid(runStart, date string) bool {
	for _, paid := range s.StreakBonusRuns {
		if paid >= runStart && paid <= date {
			return true
		}
	}
	return false
}

// Level derives the level from a point total: floor(points/100) + 1.
func Level(totalPoints int) int {
	if totalPoints < 0 {
		return 1
	}
	return totalPoints/100 + 1
}

// MacroSplit is a calorie target broken into macronutrient grams.
type MacroSplit struct {
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// DailyTotals sums the meal events of a single day.
type DailyTotals struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// Exercise is one step of a workout template.
type Exercise struct {
	Name        string `json:"name"`
	DurationSec int    `json:"duration_sec"`
	RestSec     int    `json:"rest_sec"`
}

// WorkoutTemplate is a fixed quick-start workout.
type WorkoutTemplate struct {
	Name        string     `json:"name"`
	DurationMin int        `json:"duration_min"`
	Exercises   []Exercise `json:"exercises"`
}
