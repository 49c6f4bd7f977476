// Package metrics implements the pure body-metrics and nutrition-target
// calculations. All functions are total: degenerate input (zero height,
// unknown enum values) yields documented sentinel defaults, never an error.
package metrics

import (
	"math"

	"github.com/fitpulse/backend/pkg/model"
)

// BMICategory buckets a BMI value.
type BMICategory string

const (
	Underweight BMICategory = "underweight"
	Normal      BMICategory = "normal"
	Overweight  BMICategory = "overweight"
	Obese       BMICategory = "obese"
)

// activityMultipliers maps activity levels to their TDEE multiplier. This is
// the single source of truth for valid activity levels.
var activityMultipliers = map[model.ActivityLevel]float64{
	model.ActivitySedentary:  1.2,
	model.ActivityLight:      1.375,
	model.ActivityModerate:   1.55,
	model.ActivityActive:     1.725,
	model.ActivityVeryActive: 1.9,
}

// defaultActivityMultiplier backs unknown activity levels (the moderate
// multiplier). An unrecognized level is not an error.
const defaultActivityMultiplier = 1.55

// calorieAdjustments maps the primary goal to the daily calorie delta applied
// on top of TDEE. Goals not listed get no adjustment.
var calorieAdjustments = map[model.PrimaryGoal]float64{
	model.GoalWeightLoss: -500,
	model.GoalMuscleGain: +300,
	model.GoalEndurance:  +200,
}

// proteinPerKg maps the primary goal to grams of protein per kg body weight.
var proteinPerKg = map[model.PrimaryGoal]float64{
	model.GoalWeightLoss: 2.0,
	model.GoalMuscleGain: 2.2,
	model.GoalEndurance:  1.6,
}

// defaultProteinPerKg backs goals without a specific protein multiplier.
const defaultProteinPerKg = 1.8

// calorieFloor is the minimum daily calorie target ever returned.
const calorieFloor = 1200

// BMI computes body mass index from height in cm and weight in kg.
// Returns 0 when height is non-positive; BMI is undefined there.
func BMI(heightCm, weightKg float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	heightM := heightCm / 100
	return weightKg / (heightM * heightM)
}

// CategoryOf buckets a BMI value into the standard WHO categories.
func CategoryOf(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return Normal
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}

// BMR computes the basal metabolic rate via Mifflin-St Jeor. Male uses the
// +5 constant; female and other use -161. Routing "other" through the female
// branch matches the formula's published two-branch form.
func BMR(weightKg, heightCm float64, age int, gender model.Gender) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == model.GenderMale {
		return base + 5
	}
	return base - 161
}

// TDEE scales a BMR by the activity multiplier. Unknown activity levels fall
// back to the moderate multiplier rather than failing.
func TDEE(bmr float64, activity model.ActivityLevel) float64 {
	mult, ok := activityMultipliers[activity]
	if !ok {
		mult = defaultActivityMultiplier
	}
	return bmr * mult
}

// CalorieTarget adjusts TDEE for the primary goal and floors the result at
// 1200 kcal.
func CalorieTarget(tdee float64, goal model.PrimaryGoal) int {
	target := tdee + calorieAdjustments[goal]
	if target < calorieFloor {
		return calorieFloor
	}
	return int(target)
}

// ProteinTarget computes the daily protein target in grams from body weight
// and primary goal.
func ProteinTarget(weightKg float64, goal model.PrimaryGoal) int {
	mult, ok := proteinPerKg[goal]
	if !ok {
		mult = defaultProteinPerKg
	}
	return int(weightKg * mult)
}

// Split breaks a calorie target into macro grams: protein at 2.2 g/kg, fat at
// 25% of calories, carbs from the remainder. Carbs are clamped at 0; very low
// calorie targets combined with high body weight would otherwise go negative.
func Split(calories int, weightKg float64) model.MacroSplit {
	protein := weightKg * 2.2
	fat := 0.25 * float64(calories) / 9
	carbs := (float64(calories) - protein*4 - fat*9) / 4
	if carbs < 0 {
		carbs = 0
	}
	return model.MacroSplit{
		ProteinG: math.Round(protein),
		CarbsG:   math.Round(carbs),
		FatG:     math.Round(fat),
	}
}

// Summary bundles every derived metric for a profile snapshot.
type Summary struct {
	BMI           float64           `json:"bmi"`
	BMICategory   BMICategory       `json:"bmi_category"`
	BMR           float64           `json:"bmr"`
	TDEE          float64           `json:"tdee"`
	CalorieTarget int               `json:"calorie_target"`
	ProteinTarget int               `json:"protein_target"`
	Macros        model.MacroSplit  `json:"macros"`
	WaterTarget   int               `json:"water_target_glasses"`
	PrimaryGoal   model.PrimaryGoal `json:"primary_goal"`
}

// Summarize computes the full metric set from a profile snapshot. The calorie
// override, when set, replaces the computed target before the macro split.
func Summarize(p *model.Profile) Summary {
	bmi := BMI(p.Personal.HeightCm, p.Personal.WeightKg)
	bmr := BMR(p.Personal.WeightKg, p.Personal.HeightCm, p.Personal.Age, p.Personal.Gender)
	tdee := TDEE(bmr, p.Lifestyle.ActivityLevel)
	calories := CalorieTarget(tdee, p.Goals.PrimaryGoal)
	if p.Nutrition.CalorieTargetOverride != nil && *p.Nutrition.CalorieTargetOverride > 0 {
		calories = *p.Nutrition.CalorieTargetOverride
	}

	return Summary{
		BMI:           bmi,
		BMICategory:   CategoryOf(bmi),
		BMR:           bmr,
		TDEE:          tdee,
		CalorieTarget: calories,
		ProteinTarget: ProteinTarget(p.Personal.WeightKg, p.Goals.PrimaryGoal),
		Macros:        Split(calories, p.Personal.WeightKg),
		WaterTarget:   p.Nutrition.WaterTargetGlasses,
		PrimaryGoal:   p.Goals.PrimaryGoal,
	}
}
