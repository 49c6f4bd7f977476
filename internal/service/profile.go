package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fitpulse/backend/internal/metrics"
	"github.com/fitpulse/backend/pkg/model"
)

// ProfileStore is the profile persistence surface.
type ProfileStore interface {
	Get(ctx context.Context) *model.Profile
	Save(ctx context.Context, p *model.Profile)
}

// ProfileService validates and persists the single user profile and produces
// the derived metric summary.
type ProfileService struct {
	repo   ProfileStore
	logger *zap.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(repo ProfileStore, logger *zap.Logger) *ProfileService {
	return &ProfileService{repo: repo, logger: logger}
}

// Get returns the current profile.
func (s *ProfileService) Get(ctx context.Context) *model.Profile {
	return s.repo.Get(ctx)
}

// Update validates and persists a full profile replacement.
func (s *ProfileService) Update(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	if err := validateProfile(p); err != nil {
		return nil, err
	}

	s.repo.Save(ctx, p)
	s.logger.Info("profile updated",
		zap.String("primary_goal", string(p.Goals.PrimaryGoal)),
		zap.Float64("weight_kg", p.Personal.WeightKg),
	)
	return s.repo.Get(ctx), nil
}

// Metrics returns the derived metric summary for the current profile.
func (s *ProfileService) Metrics(ctx context.Context) metrics.Summary {
	return metrics.Summarize(s.repo.Get(ctx))
}

func validateProfile(p *model.Profile) error {
	if p.Personal.Age < 13 || p.Personal.Age > 100 {
		return fmt.Errorf("age must be between 13 and 100")
	}
	if p.Personal.HeightCm < 100 || p.Personal.HeightCm > 250 {
		return fmt.Errorf("height must be between 100 and 250 cm")
	}
	if p.Personal.WeightKg < 30 || p.Personal.WeightKg > 300 {
		return fmt.Errorf("weight must be between 30 and 300 kg")
	}
	switch p.Personal.Gender {
	case model.GenderMale, model.GenderFemale, model.GenderOther:
	default:
		return fmt.Errorf("invalid gender %q", p.Personal.Gender)
	}
	switch p.Goals.PrimaryGoal {
	case model.GoalWeightLoss, model.GoalMuscleGain, model.GoalMaintenance,
		model.GoalEndurance, model.GoalStrength, model.GoalGeneralFitness:
	default:
		return fmt.Errorf("invalid primary goal %q", p.Goals.PrimaryGoal)
	}
	if p.Goals.TargetWeightKg != 0 && (p.Goals.TargetWeightKg < 30 || p.Goals.TargetWeightKg > 300) {
		return fmt.Errorf("target weight must be between 30 and 300 kg")
	}
	if p.Goals.WeeklyWorkoutTarget < 0 || p.Goals.WeeklyWorkoutTarget > 14 {
		return fmt.Errorf("weekly workout target must be between 0 and 14")
	}
	if p.Nutrition.WaterTargetGlasses < 1 || p.Nutrition.WaterTargetGlasses > 20 {
		return fmt.Errorf("water target must be between 1 and 20 glasses")
	}
	if p.Nutrition.CalorieTargetOverride != nil {
		if v := *p.Nutrition.CalorieTargetOverride; v < 800 || v > 6000 {
			return fmt.Errorf("calorie override must be between 800 and 6000")
		}
	}
	switch p.Lifestyle.ActivityLevel {
	case model.ActivitySedentary, model.ActivityLight, model.ActivityModerate,
		model.ActivityActive, model.ActivityVeryActive:
	default:
		return fmt.Errorf("invalid activity level %q", p.Lifestyle.ActivityLevel)
	}
	return nil
}
