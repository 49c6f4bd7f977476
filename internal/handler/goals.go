package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fitpulse/backend/internal/repository"
	"github.com/fitpulse/backend/internal/service"
	"github.com/fitpulse/backend/pkg/model"
)

// GoalHandler implements the user-defined goal endpoints.
type GoalHandler struct {
	service *service.GoalService
	logger  *zap.Logger
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(service *service.GoalService, logger *zap.Logger) *GoalHandler {
	return &GoalHandler{
		service: service,
		logger:  logger,
	}
}

// PostGoal creates a user-defined goal.
func (h *GoalHandler) PostGoal(c *gin.Context) {
	var req model.Goal
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		badRequest(c, "Invalid request body", err)
		return
	}

	created, err := h.service.CreateGoal(c.Request.Context(), &req)
	if err != nil {
		badRequest(c, err.Error(), nil)
		return
	}

	h.logger.Info("goal created",
		zap.String("goal_id", created.ID),
		zap.String("title", created.Title),
	)

	c.JSON(http.StatusCreated, created)
}

// ListGoals returns all goals with pace annotations.
func (h *GoalHandler) ListGoals(c *gin.Context) {
	goals := h.service.ListGoals(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"goals": goals,
		"count": len(goals),
	})
}

type updateGoalRequest struct {
	Current float64 `json:"current"`
	Notes   string  `json:"notes"`
}

// PutGoalProgress updates a goal's current value, completing it when the
// target is reached.
func (h *GoalHandler) PutGoalProgress(c *gin.Context) {
	goalID := c.Param("id")

	var req updateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		badRequest(c, "Invalid request body", err)
		return
	}

	goal, milestone, err := h.service.UpdateProgress(c.Request.Context(), goalID, req.Current, req.Notes)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		notFound(c, "Goal not found")
		return
	case errors.Is(err, service.ErrGoalCompleted), errors.Is(err, service.ErrInvalidGoalUpdate):
		badRequest(c, err.Error(), nil)
		return
	case err != nil:
		internalError(c, "Failed to update goal", err)
		return
	}

	resp := gin.H{"goal": goal}
	if milestone != nil {
		resp["milestone"] = milestone
	}
	c.JSON(http.StatusOK, resp)
}
