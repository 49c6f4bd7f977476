package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fitpulse/backend/internal/repository"
	"github.com/fitpulse/backend/pkg/model"
)

func newGoalService(t *testing.T) *GoalService {
	t.Helper()
	_, _, _, goals := newTestRepos(t)
	return NewGoalService(goals, zap.NewNop())
}

func TestCreateGoal_ValidationErrors(t *testing.T) {
	svc := newGoalService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		goal model.Goal
	}{
		{"missing title", model.Goal{Target: 10}},
		{"zero target", model.Goal{Title: "Run", Target: 0}},
		{"negative target", model.Goal{Title: "Run", Target: -5}},
		{"negative current", model.Goal{Title: "Run", Target: 10, Current: -1}},
		{"bad start date", model.Goal{Title: "Run", Target: 10, StartDate: "tomorrow"}},
		{"bad end date", model.Goal{Title: "Run", Target: 10, EndDate: "2026/05/01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateGoal(ctx, &tt.goal)
			assert.ErrorIs(t, err, ErrInvalidGoalUpdate)
		})
	}
}

func TestCreateGoal_DefaultsAndListing(t *testing.T) {
	svc := newGoalService(t)
	ctx := context.Background()

	created, err := svc.CreateGoal(ctx, &model.Goal{
		Title:     "Run 50 km",
		Category:  "cardio",
		Target:    50,
		Unit:      "km",
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.GoalActive, created.Status)
	assert.Equal(t, model.PriorityMedium, created.Priority)

	views := svc.ListGoals(ctx)
	require.Len(t, views, 1)
	assert.Equal(t, created.ID, views[0].ID)
	assert.Zero(t, views[0].Percent)
}

func TestUpdateProgress_CompletionIsOneWay(t *testing.T) {
	svc := newGoalService(t)
	ctx := context.Background()

	created, err := svc.CreateGoal(ctx, &model.Goal{
		Title:  "Lose 5 kg",
		Target: 5,
	})
	require.NoError(t, err)

	goal, milestone, err := svc.UpdateProgress(ctx, created.ID, 3, "")
	require.NoError(t, err)
	assert.Nil(t, milestone)
	assert.Equal(t, model.GoalActive, goal.Status)

	// Crossing the target completes the goal and emits a milestone.
	goal, milestone, err = svc.UpdateProgress(ctx, created.ID, 5, "done")
	require.NoError(t, err)
	require.NotNil(t, milestone)
	assert.Equal(t, created.ID, milestone.GoalID)
	assert.Equal(t, model.GoalCompleted, goal.Status)
	require.NotNil(t, goal.CompletedDate)

	// Re-submitting a completing value is a no-op, not an error.
	goal, milestone, err = svc.UpdateProgress(ctx, created.ID, 6, "")
	require.NoError(t, err)
	assert.Nil(t, milestone)
	assert.Equal(t, model.GoalCompleted, goal.Status)

	// Moving a completed goal backwards is rejected.
	_, _, err = svc.UpdateProgress(ctx, created.ID, 2, "")
	assert.ErrorIs(t, err, ErrGoalCompleted)

	// The stored goal is untouched by the rejected update.
	views := svc.ListGoals(ctx)
	require.Len(t, views, 1)
	assert.Equal(t, model.GoalCompleted, views[0].Status)
	assert.Equal(t, "completed", views[0].StatusText)
}

func TestUpdateProgress_Errors(t *testing.T) {
	svc := newGoalService(t)
	ctx := context.Background()

	_, _, err := svc.UpdateProgress(ctx, "missing", 1, "")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	created, err := svc.CreateGoal(ctx, &model.Goal{Title: "Swim", Target: 10})
	require.NoError(t, err)

	_, _, err = svc.UpdateProgress(ctx, created.ID, -1, "")
	assert.ErrorIs(t, err, ErrInvalidGoalUpdate)
}

func TestNewGoalView_PaceStatus(t *testing.T) {
	now, err := time.Parse(model.DateLayout, "2026-03-16")
	require.NoError(t, err)

	base := model.Goal{
		Title:     "Run 100 km",
		Target:    100,
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
		Status:    model.GoalActive,
	}

	// Halfway through the range, 50% expected.
	ahead := base
	ahead.Current = 60
	assert.Equal(t, "ahead", NewGoalView(ahead, now).StatusText)

	behind := base
	behind.Current = 20
	assert.Equal(t, "behind", NewGoalView(behind, now).StatusText)

	// No usable date range falls back to a neutral status.
	noDates := base
	noDates.StartDate = ""
	noDates.EndDate = ""
	noDates.Current = 20
	assert.Equal(t, "in progress", NewGoalView(noDates, now).StatusText)
}
