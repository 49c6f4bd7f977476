package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fitpulse/backend/internal/metrics"
	"github.com/fitpulse/backend/internal/service"
)

// ProgressHandler implements the daily and weekly progress endpoints.
type ProgressHandler struct {
	progress *service.ProgressService
	profile  *service.ProfileService
	logger   *zap.Logger
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progress *service.ProgressService, profile *service.ProfileService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		progress: progress,
		profile:  profile,
		logger:   logger,
	}
}

// GetDaily returns consumption versus targets for a day.
func (h *ProgressHandler) GetDaily(c *gin.Context) {
	date := dateQuery(c)
	if date == "" {
		return
	}
	c.JSON(http.StatusOK, h.progress.DailyProgressFor(c.Request.Context(), date))
}

// GetWeekly returns the four-week aggregate history ending at the reference
// date's week.
func (h *ProgressHandler) GetWeekly(c *gin.Context) {
	date := dateQuery(c)
	if date == "" {
		return
	}

	summary, err := h.progress.WeeklySummaryFor(c.Request.Context(), date)
	if err != nil {
		internalError(c, "Failed to build weekly summary", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetStreak returns the current consecutive-activity streak.
func (h *ProgressHandler) GetStreak(c *gin.Context) {
	date := dateQuery(c)
	if date == "" {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"streak_days": h.progress.StreakDays(c.Request.Context(), date),
		"date":        date,
	})
}

// GetRecommendations returns BMI-band and habit-based guidance.
func (h *ProgressHandler) GetRecommendations(c *gin.Context) {
	date := dateQuery(c)
	if date == "" {
		return
	}

	ctx := c.Request.Context()
	p := h.profile.Get(ctx)
	bmi := metrics.BMI(p.Personal.HeightCm, p.Personal.WeightKg)
	targetBMI := metrics.BMI(p.Personal.HeightCm, p.Goals.TargetWeightKg)

	c.JSON(http.StatusOK, gin.H{
		"bmi":          bmi,
		"bmi_category": metrics.CategoryOf(bmi),
		"bmi_tips":     service.BMIRecommendations(bmi, targetBMI),
		"health_tips":  h.progress.HealthRecommendations(ctx, date),
	})
}
