package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fitpulse/backend/internal/service"
	"github.com/fitpulse/backend/pkg/model"
)

// WorkoutHandler serves the quick-start workout template catalog.
type WorkoutHandler struct {
	logger *zap.Logger
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(logger *zap.Logger) *WorkoutHandler {
	return &WorkoutHandler{logger: logger}
}

type templateView struct {
	model.WorkoutTemplate
	EstimatedCalories int `json:"estimated_calories"`
}

// GetTemplates returns the fixed workout templates with calorie estimates.
func (h *WorkoutHandler) GetTemplates(c *gin.Context) {
	catalog := service.WorkoutTemplateCatalog()
	views := make([]templateView, 0, len(catalog))
	for _, t := range catalog {
		views = append(views, templateView{
			WorkoutTemplate:   t,
			EstimatedCalories: service.TemplateCalories(t),
		})
	}
	c.JSON(http.StatusOK, gin.H{"templates": views})
}
