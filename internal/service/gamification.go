package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fitpulse/backend/pkg/model"
)

var (
	// ErrInsufficientPoints is returned when a redemption costs more than
	// the current balance. Recoverable; callers surface the shortfall.
	ErrInsufficientPoints = errors.New("insufficient points")

	// ErrUnknownChallenge is returned for challenge IDs not in the catalog.
	ErrUnknownChallenge = errors.New("unknown challenge")

	// ErrChallengeAlreadyStarted is returned when starting a challenge that
	// is already active or completed.
	ErrChallengeAlreadyStarted = errors.New("challenge already started")

	// ErrUnknownReward is returned for reward IDs not in the catalog.
	ErrUnknownReward = errors.New("unknown reward")
)

// Point values for the daily award categories.
const (
	pointsWorkout     = 20
	pointsWaterFull   = 10
	pointsWaterHalf   = 5
	pointsNutrition   = 10
	pointsCheckIn     = 5
	pointsStreakBonus = 100
)

// Ledger category keys.
const (
	catWorkout   = "workout"
	catWaterFull = "water_full"
	catWaterHalf = "water_half"
	catNutrition = "nutrition"
	catCheckIn   = "checkin"
)

// GamificationStore is the persistence surface for the gamification state.
type GamificationStore interface {
	Get(ctx context.Context) *model.GamificationState
	Mutate(ctx context.Context, fn func(*model.GamificationState) error) error
}

// GamificationService converts progress-engine outputs into points, levels,
// badges, challenges, and reward redemptions. All awards are evaluated
// against the award ledger so repeat actions on the same day cannot
// double-award.
type GamificationService struct {
	state    GamificationStore
	progress *ProgressService
	events   EventSource
	profile  ProfileSource
	logger   *zap.Logger
}

// NewGamificationService creates a new GamificationService.
func NewGamificationService(state GamificationStore, progress *ProgressService, events EventSource, profile ProfileSource, logger *zap.Logger) *GamificationService {
	return &GamificationService{
		state:    state,
		progress: progress,
		events:   events,
		profile:  profile,
		logger:   logger,
	}
}

// EvaluateDay applies the point-award rules for the given ISO date and
// re-scores active challenges. It is called after every event append and is
// idempotent: categories already awarded for the date do not fire again.
func (s *GamificationService) EvaluateDay(ctx context.Context, date string) error {
	day, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}

	workouts, meals, checkIn := 0, 0, false
	for _, e := range s.events.ListByDate(ctx, date) {
		switch e.Type {
		case model.EventWorkout:
			workouts++
		case model.EventMeal:
			meals++
		case model.EventMood:
			checkIn = true
		}
	}
	glasses := s.progress.WaterGlasses(ctx, date)
	waterTarget := s.profile.Get(ctx).Nutrition.WaterTargetGlasses
	streak := s.progress.StreakDays(ctx, date)

	// Challenge progress reads the event log, so score it before taking the
	// state write lock.
	chProgress := make(map[string]float64)
	for _, ch := range s.state.Get(ctx).ActiveChallenges {
		if ch.Status == model.ChallengeActive {
			chProgress[ch.ID] = s.challengeProgress(ctx, ch, date)
		}
	}

	return s.state.Mutate(ctx, func(st *model.GamificationState) error {
		awarded := 0

		// Working out is boolean per day: one workout caps the category.
		if workouts >= 1 && !st.AwardedDays.Awarded(date, catWorkout) {
			awarded += pointsWorkout
			st.AwardedDays.Mark(date, catWorkout)
		}

		if waterTarget > 0 {
			switch {
			case glasses >= waterTarget && !st.AwardedDays.Awarded(date, catWaterFull):
				pts := pointsWaterFull
				if st.AwardedDays.Awarded(date, catWaterHalf) {
					pts -= pointsWaterHalf
				}
				awarded += pts
				st.AwardedDays.Mark(date, catWaterFull)
			case glasses*2 >= waterTarget && glasses < waterTarget &&
				!st.AwardedDays.Awarded(date, catWaterHalf) && !st.AwardedDays.Awarded(date, catWaterFull):
				awarded += pointsWaterHalf
				st.AwardedDays.Mark(date, catWaterHalf)
			}
		}

		if meals >= 2 && !st.AwardedDays.Awarded(date, catNutrition) {
			awarded += pointsNutrition
			st.AwardedDays.Mark(date, catNutrition)
		}

		if checkIn && !st.AwardedDays.Awarded(date, catCheckIn) {
			awarded += pointsCheckIn
			st.AwardedDays.Mark(date, catCheckIn)
		}

		// One-time bonus per streak run, keyed to the run's start date.
		// Evaluating a backdated day cannot disarm a live run, and a
		// fresh run after a break has a new start date and pays again.
		if streak >= 7 {
			runStart := day.AddDate(0, 0, -(streak - 1)).Format(model.DateLayout)
			if !st.StreakBonusPaid(runStart, date) {
				awarded += pointsStreakBonus
				st.StreakBonusRuns = append(st.StreakBonusRuns, runStart)
			}
		}

		st.TotalPoints += awarded

		awarded += s.settleChallenges(st, chProgress)

		if awarded > 0 {
			s.logger.Info("points awarded",
				zap.String("date", date),
				zap.Int("awarded", awarded),
				zap.Int("total_points", st.TotalPoints),
				zap.Int("level", model.Level(st.TotalPoints)),
			)
		}
		return nil
	})
}

// settleChallenges applies pre-scored progress to the active challenges and
// pays out completions. A completed challenge's award fires exactly once.
// Returns the points paid.
func (s *GamificationService) settleChallenges(st *model.GamificationState, chProgress map[string]float64) int {
	paid := 0
	for i := range st.ActiveChallenges {
		ch := &st.ActiveChallenges[i]
		if ch.Status != model.ChallengeActive {
			continue
		}
		ch.Progress = chProgress[ch.ID]
		if ch.Progress < 100 {
			continue
		}
		if containsString(st.CompletedChallenges, ch.ID) {
			ch.Status = model.ChallengeCompleted
			continue
		}
		ch.Status = model.ChallengeCompleted
		st.CompletedChallenges = append(st.CompletedChallenges, ch.ID)
		st.TotalPoints += ch.Points
		paid += ch.Points

		s.logger.Info("challenge completed",
			zap.String("challenge_id", ch.ID),
			zap.Int("points", ch.Points),
		)
	}
	return paid
}

// challengeProgress scores one challenge against the event log as a percent.
func (s *GamificationService) challengeProgress(ctx context.Context, ch model.Challenge, refDate string) float64 {
	if ch.Threshold <= 0 {
		return 0
	}

	var current int
	switch ch.Requirement {
	case model.RequireStreakDays:
		current = s.progress.StreakDays(ctx, refDate)
	case model.RequireWorkoutsWeek:
		current = s.progress.WeeklyCount(ctx, model.EventWorkout, refDate)
	case model.RequireWaterDays:
		current = s.countDaysSince(ctx, ch.StartDate, refDate, s.waterDayMet)
	case model.RequireNutritionDays:
		current = s.countDaysSince(ctx, ch.StartDate, refDate, s.nutritionDayMet)
	case model.RequireSleepNights:
		current = s.countDaysSince(ctx, ch.StartDate, refDate, s.sleepNightMet)
	default:
		return 0
	}

	return ProgressPercent(float64(current), float64(ch.Threshold))
}

// countDaysSince counts the days in [start, ref] where the predicate holds.
func (s *GamificationService) countDaysSince(ctx context.Context, startDate, refDate string, met func(context.Context, string) bool) int {
	start, err := time.Parse(model.DateLayout, startDate)
	if err != nil {
		return 0
	}
	ref, err := time.Parse(model.DateLayout, refDate)
	if err != nil || ref.Before(start) {
		return 0
	}

	count := 0
	for d := start; !d.After(ref); d = d.AddDate(0, 0, 1) {
		if met(ctx, d.Format(model.DateLayout)) {
			count++
		}
	}
	return count
}

func (s *GamificationService) waterDayMet(ctx context.Context, date string) bool {
	target := s.profile.Get(ctx).Nutrition.WaterTargetGlasses
	return target > 0 && s.progress.WaterGlasses(ctx, date) >= target
}

func (s *GamificationService) nutritionDayMet(ctx context.Context, date string) bool {
	meals := 0
	for _, e := range s.events.ListByDate(ctx, date) {
		if e.Type == model.EventMeal {
			meals++
		}
	}
	return meals >= s.progress.streak.MealsPerDay
}

func (s *GamificationService) sleepNightMet(ctx context.Context, date string) bool {
	for _, e := range s.events.ListByDate(ctx, date) {
		if e.Type == model.EventSleep && e.Sleep != nil && e.Sleep.Hours >= 7 {
			return true
		}
	}
	return false
}

// DailyBreakdown is the per-category points earned on a single day.
type DailyBreakdown struct {
	Water     int `json:"water"`
	Workout   int `json:"workout"`
	Nutrition int `json:"nutrition"`
	CheckIn   int `json:"check_in"`
}

// Overview is the gamification dashboard payload.
type Overview struct {
	TotalPoints      int            `json:"total_points"`
	Level            int            `json:"level"`
	PointsToNext     int            `json:"points_to_next_level"`
	StreakDays       int            `json:"streak_days"`
	Today            DailyBreakdown `json:"today"`
	RestDayPasses    int            `json:"rest_day_passes"`
	CustomWorkout    bool           `json:"custom_workout_available"`
	RedemptionsMade  int            `json:"redemptions_made"`
	ChallengesActive int            `json:"challenges_active"`
}

// OverviewFor assembles the dashboard for the given ISO date.
func (s *GamificationService) OverviewFor(ctx context.Context, date string) Overview {
	st := s.state.Get(ctx)

	var today DailyBreakdown
	if st.AwardedDays.Awarded(date, catWorkout) {
		today.Workout = pointsWorkout
	}
	if st.AwardedDays.Awarded(date, catWaterFull) {
		today.Water = pointsWaterFull
	} else if st.AwardedDays.Awarded(date, catWaterHalf) {
		today.Water = pointsWaterHalf
	}
	if st.AwardedDays.Awarded(date, catNutrition) {
		today.Nutrition = pointsNutrition
	}
	if st.AwardedDays.Awarded(date, catCheckIn) {
		today.CheckIn = pointsCheckIn
	}

	active := 0
	for _, ch := range st.ActiveChallenges {
		if ch.Status == model.ChallengeActive {
			active++
		}
	}

	level := model.Level(st.TotalPoints)
	return Overview{
		TotalPoints:      st.TotalPoints,
		Level:            level,
		PointsToNext:     level*100 - st.TotalPoints,
		StreakDays:       s.progress.StreakDays(ctx, date),
		Today:            today,
		RestDayPasses:    st.RestDayPasses,
		CustomWorkout:    st.CustomWorkout,
		RedemptionsMade:  len(st.Redemptions),
		ChallengesActive: active,
	}
}

// Badges evaluates the badge registry against the current log and state,
// persists newly unlocked badges, and returns the full earned set. Earned
// badges are permanent.
func (s *GamificationService) Badges(ctx context.Context, refDate string) ([]model.Badge, error) {
	snap := badgeSnapshot{
		StreakDays:   s.progress.StreakDays(ctx, refDate),
		WorkoutCount: s.events.CountByType(ctx, model.EventWorkout),
	}

	var earned []model.Badge
	err := s.state.Mutate(ctx, func(st *model.GamificationState) error {
		for _, def := range badgeRegistry {
			if hasBadge(st.EarnedBadges, def.badge.ID) {
				continue
			}
			if def.unlocked(snap) {
				b := def.badge
				b.EarnedDate = refDate
				st.EarnedBadges = append(st.EarnedBadges, b)
				s.logger.Info("badge unlocked",
					zap.String("badge_id", b.ID),
					zap.String("name", b.Name),
				)
			}
		}
		earned = append([]model.Badge(nil), st.EarnedBadges...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate badges: %w", err)
	}
	return earned, nil
}

// Challenges returns the catalog with per-challenge status and live progress.
func (s *GamificationService) Challenges(ctx context.Context, refDate string) []model.Challenge {
	st := s.state.Get(ctx)

	out := make([]model.Challenge, 0, len(ChallengeCatalog()))
	for _, def := range ChallengeCatalog() {
		ch := def
		if containsString(st.CompletedChallenges, def.ID) {
			ch.Status = model.ChallengeCompleted
			ch.Progress = 100
		} else if inst := findChallenge(st.ActiveChallenges, def.ID); inst != nil {
			ch = *inst
			ch.Progress = s.challengeProgress(ctx, ch, refDate)
		}
		out = append(out, ch)
	}
	return out
}

// StartChallenge copies a catalog definition into the active set with a
// start date and zero progress.
func (s *GamificationService) StartChallenge(ctx context.Context, challengeID, date string) (*model.Challenge, error) {
	var def *model.Challenge
	for _, c := range ChallengeCatalog() {
		if c.ID == challengeID {
			def = &c
			break
		}
	}
	if def == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChallenge, challengeID)
	}

	var started *model.Challenge
	err := s.state.Mutate(ctx, func(st *model.GamificationState) error {
		if containsString(st.CompletedChallenges, challengeID) || findChallenge(st.ActiveChallenges, challengeID) != nil {
			return fmt.Errorf("%w: %s", ErrChallengeAlreadyStarted, challengeID)
		}
		inst := *def
		inst.Status = model.ChallengeActive
		inst.StartDate = date
		inst.Progress = 0
		st.ActiveChallenges = append(st.ActiveChallenges, inst)
		started = &inst
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("challenge started",
		zap.String("challenge_id", challengeID),
		zap.String("start_date", date),
	)
	return started, nil
}

// AbandonChallenge drops an active challenge without payout.
func (s *GamificationService) AbandonChallenge(ctx context.Context, challengeID string) error {
	return s.state.Mutate(ctx, func(st *model.GamificationState) error {
		inst := findChallenge(st.ActiveChallenges, challengeID)
		if inst == nil || inst.Status != model.ChallengeActive {
			return fmt.Errorf("%w: %s", ErrUnknownChallenge, challengeID)
		}
		inst.Status = model.ChallengeAbandoned
		return nil
	})
}

// Redeem spends points on a catalog reward. The deduction, the redemption
// record, and the reward's side effect land in one atomic state update; an
// insufficient balance changes nothing.
func (s *GamificationService) Redeem(ctx context.Context, rewardID, date string) (*model.Redemption, error) {
	var reward *model.Reward
	for _, r := range RewardCatalog() {
		if r.ID == rewardID {
			reward = &r
			break
		}
	}
	if reward == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownReward, rewardID)
	}

	var redemption *model.Redemption
	err := s.state.Mutate(ctx, func(st *model.GamificationState) error {
		if st.TotalPoints < reward.Cost {
			return fmt.Errorf("%w: need %d more points", ErrInsufficientPoints, reward.Cost-st.TotalPoints)
		}

		st.TotalPoints -= reward.Cost
		rec := model.Redemption{
			ID:           uuid.New().String(),
			RewardID:     reward.ID,
			RewardName:   reward.Name,
			Cost:         reward.Cost,
			RedeemedDate: date,
			CreatedAt:    time.Now(),
		}
		st.Redemptions = append(st.Redemptions, rec)

		switch reward.ID {
		case "rest-day-pass":
			st.RestDayPasses++
		case "custom-workout":
			st.CustomWorkout = true
		}

		redemption = &rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("reward redeemed",
		zap.String("reward_id", reward.ID),
		zap.Int("cost", reward.Cost),
	)
	return redemption, nil
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func findChallenge(list []model.Challenge, id string) *model.Challenge {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}

func hasBadge(list []model.Badge, id string) bool {
	for _, b := range list {
		if b.ID == id {
			return true
		}
	}
	return false
}
