package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/fitpulse/backend/pkg/model"
)

// GamificationRepository manages the single GamificationState record. Reads
// hand out deep copies; Mutate applies a mutation atomically under the store
// lock so a failed mutation leaves the state untouched.
type GamificationRepository struct {
	store  *Store
	logger *zap.Logger
}

// NewGamificationRepository creates a new GamificationRepository.
func NewGamificationRepository(store *Store, logger *zap.Logger) *GamificationRepository {
	return &GamificationRepository{
		store:  store,
		logger: logger,
	}
}

// Get returns a deep copy of the gamification state.
func (r *GamificationRepository) Get(ctx context.Context) *model.GamificationState {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	cp := cloneState(&r.store.gamification)
	return &cp
}

// Mutate runs fn against a working copy of the state. If fn returns an error
// nothing is written back; otherwise the copy replaces the stored state as a
// single atomic update.
func (r *GamificationRepository) Mutate(ctx context.Context, fn func(*model.GamificationState) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	working := cloneState(&r.store.gamification)
	if err := fn(&working); err != nil {
		return err
	}
	r.store.gamification = working

	r.logger.Debug("gamification state updated",
		zap.Int("total_points", working.TotalPoints),
		zap.Int("level", model.Level(working.TotalPoints)),
	)

	return nil
}

func cloneState(s *model.GamificationState) model.GamificationState {
	cp := *s
	cp.EarnedBadges = append([]model.Badge(nil), s.EarnedBadges...)
	cp.Redemptions = append([]model.Redemption(nil), s.Redemptions...)
	cp.ActiveChallenges = append([]model.Challenge(nil), s.ActiveChallenges...)
	cp.CompletedChallenges = append([]string(nil), s.CompletedChallenges...)
	cp.StreakBonusRuns = append([]string(nil), s.StreakBonusRuns...)

	cp.AwardedDays = make(model.AwardLedger, len(s.AwardedDays))
	for date, cats := range s.AwardedDays {
		inner := make(map[string]bool, len(cats))
		for k, v := range cats {
			inner[k] = v
		}
		cp.AwardedDays[date] = inner
	}
	return cp
}
