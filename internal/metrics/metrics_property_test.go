package metrics

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/fitpulse/backend/pkg/model"
)

// Property: for a fixed height, BMI is strictly monotonic in weight.
func TestProperty_BMIMonotonicInWeight(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("heavier means higher BMI at fixed height", prop.ForAll(
		func(heightCm, w1, delta float64) bool {
			w2 := w1 + delta
			return BMI(heightCm, w1) < BMI(heightCm, w2)
		},
		gen.Float64Range(100, 250),
		gen.Float64Range(30, 199),
		gen.Float64Range(0.1, 50),
	))

	properties.TestingRun(t)
}

// Property: the calorie target never drops below the 1200 kcal floor.
func TestProperty_CalorieFloor(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	goals := []model.PrimaryGoal{
		model.GoalWeightLoss, model.GoalMuscleGain, model.GoalMaintenance,
		model.GoalEndurance, model.GoalStrength, model.GoalGeneralFitness,
	}

	properties.Property("calorie target >= 1200 for any TDEE and goal", prop.ForAll(
		func(tdee float64, goalIdx int) bool {
			return CalorieTarget(tdee, goals[goalIdx]) >= 1200
		},
		gen.Float64Range(0, 5000),
		gen.IntRange(0, len(goals)-1),
	))

	properties.TestingRun(t)
}

// Property: the macro split never reports negative grams and fat is always
// 25% of calories.
func TestProperty_MacroSplitNonNegative(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("macros are non-negative", prop.ForAll(
		func(calories int, weightKg float64) bool {
			split := Split(calories, weightKg)
			return split.ProteinG >= 0 && split.CarbsG >= 0 && split.FatG >= 0
		},
		gen.IntRange(1200, 5000),
		gen.Float64Range(30, 200),
	))

	properties.TestingRun(t)
}

// Property: BMI category boundaries partition the whole range.
func TestProperty_CategoryTotal(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("every BMI lands in exactly one category", prop.ForAll(
		func(bmi float64) bool {
			switch CategoryOf(bmi) {
			case Underweight:
				return bmi < 18.5
			case Normal:
				return bmi >= 18.5 && bmi < 25
			case Overweight:
				return bmi >= 25 && bmi < 30
			case Obese:
				return bmi >= 30
			}
			return false
		},
		gen.Float64Range(0, 80),
	))

	properties.TestingRun(t)
}
