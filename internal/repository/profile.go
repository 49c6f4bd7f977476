package repository

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fitpulse/backend/pkg/model"
)

// ProfileRepository manages the single mutable user profile.
type ProfileRepository struct {
	store  *Store
	logger *zap.Logger
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(store *Store, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		store:  store,
		logger: logger,
	}
}

// Get returns a snapshot copy of the profile.
func (r *ProfileRepository) Get(ctx context.Context) *model.Profile {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p := r.store.profile
	if p.Nutrition.CalorieTargetOverride != nil {
		v := *p.Nutrition.CalorieTargetOverride
		p.Nutrition.CalorieTargetOverride = &v
	}
	return &p
}

// Save replaces the profile with the given snapshot.
func (r *ProfileRepository) Save(ctx context.Context, p *model.Profile) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p.UpdatedAt = time.Now()
	r.store.profile = *p

	r.logger.Info("profile saved",
		zap.Float64("height_cm", p.Personal.HeightCm),
		zap.Float64("weight_kg", p.Personal.WeightKg),
		zap.String("primary_goal", string(p.Goals.PrimaryGoal)),
	)
}
