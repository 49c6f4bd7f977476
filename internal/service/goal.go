package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fitpulse/backend/pkg/model"
)

var (
	// ErrGoalCompleted is returned when a caller tries to move a completed
	// goal backwards. Completion is one-way.
	ErrGoalCompleted = errors.New("goal already completed")

	// ErrInvalidGoalUpdate is returned for malformed progress updates.
	ErrInvalidGoalUpdate = errors.New("invalid goal update")
)

// GoalStore is the goal persistence surface the service needs.
type GoalStore interface {
	Create(ctx context.Context, goal *model.Goal) *model.Goal
	FindByID(ctx context.Context, id string) (*model.Goal, error)
	Update(ctx context.Context, goal *model.Goal) error
	List(ctx context.Context) []model.Goal
}

// Milestone is emitted when a goal transitions to completed.
type Milestone struct {
	GoalID        string `json:"goal_id"`
	Title         string `json:"title"`
	CompletedDate string `json:"completed_date"`
}

// GoalService manages user-defined goals and their one-way completion
// lifecycle.
type GoalService struct {
	repo   GoalStore
	logger *zap.Logger
}

// NewGoalService creates a new GoalService.
func NewGoalService(repo GoalStore, logger *zap.Logger) *GoalService {
	return &GoalService{
		repo:   repo,
		logger: logger,
	}
}

// CreateGoal validates and stores a new goal.
func (s *GoalService) CreateGoal(ctx context.Context, goal *model.Goal) (*model.Goal, error) {
	if goal.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidGoalUpdate)
	}
	if goal.Target <= 0 {
		return nil, fmt.Errorf("%w: target must be positive", ErrInvalidGoalUpdate)
	}
	if goal.Current < 0 {
		return nil, fmt.Errorf("%w: current must not be negative", ErrInvalidGoalUpdate)
	}
	for _, d := range []string{goal.StartDate, goal.EndDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(model.DateLayout, d); err != nil {
			return nil, fmt.Errorf("%w: dates must be ISO dates", ErrInvalidGoalUpdate)
		}
	}
	if goal.Priority == "" {
		goal.Priority = model.PriorityMedium
	}
	goal.Status = model.GoalActive

	created := s.repo.Create(ctx, goal)
	s.logger.Info("goal created",
		zap.String("goal_id", created.ID),
		zap.String("title", created.Title),
	)
	return created, nil
}

// ListGoals returns every goal with derived progress attached.
func (s *GoalService) ListGoals(ctx context.Context) []GoalView {
	goals := s.repo.List(ctx)
	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, NewGoalView(g, time.Now()))
	}
	return views
}

// UpdateProgress sets a goal's current value. Crossing the target completes
// the goal, stamps the completion date, and emits a milestone; the transition
// is one-way and idempotent. Lowering a completed goal's value is rejected.
func (s *GoalService) UpdateProgress(ctx context.Context, goalID string, newCurrent float64, notes string) (*model.Goal, *Milestone, error) {
	if newCurrent < 0 {
		return nil, nil, fmt.Errorf("%w: current must not be negative", ErrInvalidGoalUpdate)
	}

	goal, err := s.repo.FindByID(ctx, goalID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find goal %s: %w", goalID, err)
	}

	if goal.Status == model.GoalCompleted {
		if newCurrent >= goal.Target {
			// Idempotent re-submission of a completing value.
			return goal, nil, nil
		}
		return nil, nil, ErrGoalCompleted
	}

	goal.Current = newCurrent
	if notes != "" {
		goal.Notes = notes
	}

	var milestone *Milestone
	if newCurrent >= goal.Target {
		now := time.Now().Format(model.DateLayout)
		goal.Status = model.GoalCompleted
		goal.CompletedDate = &now
		milestone = &Milestone{
			GoalID:        goal.ID,
			Title:         goal.Title,
			CompletedDate: now,
		}
	}

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, nil, fmt.Errorf("failed to update goal %s: %w", goalID, err)
	}

	if milestone != nil {
		s.logger.Info("goal completed",
			zap.String("goal_id", goal.ID),
			zap.String("title", goal.Title),
		)
	} else {
		s.logger.Info("goal progress updated",
			zap.String("goal_id", goal.ID),
			zap.Float64("current", goal.Current),
			zap.Float64("target", goal.Target),
		)
	}

	return goal, milestone, nil
}

// GoalView pairs a goal with its derived progress and pace status.
type GoalView struct {
	model.Goal
	Percent    float64 `json:"percent"`
	StatusText string  `json:"status_text"`
}

// NewGoalView derives progress percent and the ahead/behind pace status from
// a linear pace model over the goal's date range.
func NewGoalView(g model.Goal, now time.Time) GoalView {
	view := GoalView{
		Goal:    g,
		Percent: ProgressPercent(g.Current, g.Target),
	}

	if g.Status == model.GoalCompleted {
		view.StatusText = "completed"
		return view
	}

	start, errStart := time.Parse(model.DateLayout, g.StartDate)
	end, errEnd := time.Parse(model.DateLayout, g.EndDate)
	if errStart != nil || errEnd != nil || !end.After(start) {
		view.StatusText = "in progress"
		return view
	}

	totalDays := end.Sub(start).Hours() / 24
	elapsedDays := now.Sub(start).Hours() / 24
	if elapsedDays < 0 {
		elapsedDays = 0
	}
	if elapsedDays > totalDays {
		elapsedDays = totalDays
	}

	expected := elapsedDays / totalDays * 100
	if view.Percent >= expected {
		view.StatusText = "ahead"
	} else {
		view.StatusText = "behind"
	}
	return view
}
