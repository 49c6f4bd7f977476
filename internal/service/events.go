package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fitpulse/backend/internal/repository"
	"github.com/fitpulse/backend/pkg/model"
)

// EventLog is the event-log write-and-read surface.
type EventLog interface {
	Append(ctx context.Context, event *model.Event) error
	List(ctx context.Context, filter repository.EventFilter) []model.Event
}

// EventService validates and appends log entries, then re-evaluates the
// day's point awards. It is the only write path into the event log.
type EventService struct {
	repo         EventLog
	gamification *GamificationService
	logger       *zap.Logger
}

// NewEventService creates a new EventService.
func NewEventService(repo EventLog, gamification *GamificationService, logger *zap.Logger) *EventService {
	return &EventService{
		repo:         repo,
		gamification: gamification,
		logger:       logger,
	}
}

// Log validates the event, appends it, and evaluates the day's awards.
func (s *EventService) Log(ctx context.Context, event *model.Event) error {
	if event.Date == "" {
		event.Date = time.Now().Format(model.DateLayout)
	}

	if err := validateEvent(event); err != nil {
		return err
	}

	if err := s.repo.Append(ctx, event); err != nil {
		s.logger.Error("failed to append event",
			zap.Error(err),
			zap.String("type", string(event.Type)),
		)
		return fmt.Errorf("failed to append event: %w", err)
	}

	if err := s.gamification.EvaluateDay(ctx, event.Date); err != nil {
		// The event is already in the log; award evaluation re-runs on
		// the next log action, so this is not fatal.
		s.logger.Warn("point evaluation failed",
			zap.Error(err),
			zap.String("date", event.Date),
		)
	}

	return nil
}

// History returns events matching the filter.
func (s *EventService) History(ctx context.Context, filter repository.EventFilter) []model.Event {
	return s.repo.List(ctx, filter)
}

// validateEvent checks that exactly the payload matching the variant is set
// and that its fields are in range.
func validateEvent(e *model.Event) error {
	switch e.Type {
	case model.EventWorkout:
		if e.Workout == nil {
			return fmt.Errorf("workout payload is required")
		}
		if e.Workout.DurationMin <= 0 {
			return fmt.Errorf("workout duration must be positive")
		}
		if e.Workout.Intensity < 1 || e.Workout.Intensity > 10 {
			return fmt.Errorf("workout intensity must be between 1 and 10")
		}
		if e.Workout.Calories < 0 {
			return fmt.Errorf("workout calories must not be negative")
		}
	case model.EventMeal:
		if e.Meal == nil {
			return fmt.Errorf("meal payload is required")
		}
		if e.Meal.Calories < 0 || e.Meal.ProteinG < 0 || e.Meal.CarbsG < 0 || e.Meal.FatG < 0 {
			return fmt.Errorf("meal macros must not be negative")
		}
	case model.EventWater:
		if e.Water == nil {
			return fmt.Errorf("water payload is required")
		}
		if e.Water.GlassesAdded <= 0 {
			return fmt.Errorf("glasses added must be positive")
		}
	case model.EventSleep:
		if e.Sleep == nil {
			return fmt.Errorf("sleep payload is required")
		}
		if e.Sleep.Hours < 3 || e.Sleep.Hours > 12 {
			return fmt.Errorf("sleep hours must be between 3 and 12")
		}
		if e.Sleep.Quality < 1 || e.Sleep.Quality > 10 {
			return fmt.Errorf("sleep quality must be between 1 and 10")
		}
	case model.EventMood:
		if e.Mood == nil {
			return fmt.Errorf("mood payload is required")
		}
		switch e.Mood.Mood {
		case model.MoodHappy, model.MoodEnergized, model.MoodNeutral, model.MoodTired, model.MoodSad, model.MoodAngry:
		default:
			return fmt.Errorf("invalid mood %q", e.Mood.Mood)
		}
	case model.EventStress:
		if e.Stress == nil {
			return fmt.Errorf("stress payload is required")
		}
		if e.Stress.Level < 1 || e.Stress.Level > 10 {
			return fmt.Errorf("stress level must be between 1 and 10")
		}
	case model.EventVital:
		if e.Vital == nil {
			return fmt.Errorf("vital payload is required")
		}
		hasHR := e.Vital.HeartRateBpm != nil
		hasBP := e.Vital.Systolic != nil && e.Vital.Diastolic != nil
		if !hasHR && !hasBP {
			return fmt.Errorf("vital requires a heart rate or a blood pressure pair")
		}
		if hasHR && (*e.Vital.HeartRateBpm < 30 || *e.Vital.HeartRateBpm > 220) {
			return fmt.Errorf("heart rate must be between 30 and 220")
		}
		if hasBP {
			if *e.Vital.Systolic < 70 || *e.Vital.Systolic > 250 {
				return fmt.Errorf("systolic must be between 70 and 250")
			}
			if *e.Vital.Diastolic < 40 || *e.Vital.Diastolic > 150 {
				return fmt.Errorf("diastolic must be between 40 and 150")
			}
		}
	default:
		return fmt.Errorf("unknown event type %q", e.Type)
	}
	return nil
}
