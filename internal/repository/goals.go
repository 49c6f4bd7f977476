package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fitpulse/backend/pkg/model"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("not found")

// GoalRepository manages user-defined goals.
type GoalRepository struct {
	store  *Store
	logger *zap.Logger
}

// NewGoalRepository creates a new GoalRepository.
func NewGoalRepository(store *Store, logger *zap.Logger) *GoalRepository {
	return &GoalRepository{
		store:  store,
		logger: logger,
	}
}

// Create stores a new goal and returns it with ID and timestamps set.
func (r *GoalRepository) Create(ctx context.Context, goal *model.Goal) *model.Goal {
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	now := time.Now()
	goal.CreatedAt = now
	goal.UpdatedAt = now
	if goal.Status == "" {
		goal.Status = model.GoalActive
	}

	r.store.mu.Lock()
	g := *goal
	r.store.goals = append(r.store.goals, &g)
	r.store.mu.Unlock()

	r.logger.Info("goal created",
		zap.String("goal_id", goal.ID),
		zap.String("title", goal.Title),
		zap.Float64("target", goal.Target),
	)

	return goal
}

// FindByID returns a copy of the goal with the given ID.
func (r *GoalRepository) FindByID(ctx context.Context, id string) (*model.Goal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, g := range r.store.goals {
		if g.ID == id {
			cp := *g
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// Update replaces the stored goal with the given snapshot.
func (r *GoalRepository) Update(ctx context.Context, goal *model.Goal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, g := range r.store.goals {
		if g.ID == goal.ID {
			goal.UpdatedAt = time.Now()
			cp := *goal
			r.store.goals[i] = &cp
			return nil
		}
	}
	return ErrNotFound
}

// List returns copies of all goals in creation order.
func (r *GoalRepository) List(ctx context.Context) []model.Goal {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]model.Goal, 0, len(r.store.goals))
	for _, g := range r.store.goals {
		out = append(out, *g)
	}
	return out
}
