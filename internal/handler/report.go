package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fitpulse/backend/internal/report"
	"github.com/fitpulse/backend/internal/repository"
	"github.com/fitpulse/backend/internal/service"
	"github.com/fitpulse/backend/pkg/model"
)

// ReportHandler serves the downloadable weekly PDF report. It assembles the
// report data from the progress, gamification, and profile services.
type ReportHandler struct {
	generator    *report.Generator
	progress     *service.ProgressService
	gamification *service.GamificationService
	profile      *service.ProfileService
	events       *service.EventService
	logger       *zap.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(
	generator *report.Generator,
	progress *service.ProgressService,
	gamification *service.GamificationService,
	profile *service.ProfileService,
	events *service.EventService,
	logger *zap.Logger,
) *ReportHandler {
	return &ReportHandler{
		generator:    generator,
		progress:     progress,
		gamification: gamification,
		profile:      profile,
		events:       events,
		logger:       logger,
	}
}

// GetWeeklyReport renders the last seven days as a PDF.
func (h *ReportHandler) GetWeeklyReport(c *gin.Context) {
	refDate := dateQuery(c)
	if refDate == "" {
		return
	}

	ctx := c.Request.Context()
	end, err := time.Parse(model.DateLayout, refDate)
	if err != nil {
		badRequest(c, "Invalid date, expected YYYY-MM-DD", err)
		return
	}
	start := end.AddDate(0, 0, -6)

	days := make([]service.DailyProgress, 0, 7)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, h.progress.DailyProgressFor(ctx, d.Format(model.DateLayout)))
	}

	weekly, err := h.progress.WeeklySummaryFor(ctx, refDate)
	if err != nil {
		internalError(c, "Failed to build weekly summary", err)
		return
	}

	badges, err := h.gamification.Badges(ctx, refDate)
	if err != nil {
		internalError(c, "Failed to evaluate badges", err)
		return
	}

	workouts := h.events.History(ctx, repository.EventFilter{
		Type: model.EventWorkout,
		From: start.Format(model.DateLayout),
		To:   refDate,
	})

	p := h.profile.Get(ctx)
	data := &report.Data{
		UserName:  p.Personal.Name,
		DateRange: fmt.Sprintf("%s - %s", start.Format(model.DateLayout), refDate),
		Metrics:   h.profile.Metrics(ctx),
		Days:      days,
		Weekly:    weekly,
		Overview:  h.gamification.OverviewFor(ctx, refDate),
		Badges:    badges,
		Workouts:  workouts,
	}

	pdf, err := h.generator.Generate(data)
	if err != nil {
		h.logger.Error("failed to generate report", zap.Error(err))
		internalError(c, "Failed to generate report", err)
		return
	}

	h.logger.Info("weekly report generated",
		zap.String("date_range", data.DateRange),
		zap.Int("size_bytes", len(pdf)),
	)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=weekly-report-%s.pdf", refDate))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
