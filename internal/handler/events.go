package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fitpulse/backend/internal/repository"
	"github.com/fitpulse/backend/internal/service"
	"github.com/fitpulse/backend/pkg/model"
)

// EventHandler implements the activity-log endpoints.
type EventHandler struct {
	service *service.EventService
	logger  *zap.Logger
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service *service.EventService, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		logger:  logger,
	}
}

// PostEvent appends a log entry.
func (h *EventHandler) PostEvent(c *gin.Context) {
	var req model.Event
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		badRequest(c, "Invalid request body", err)
		return
	}

	if err := h.service.Log(c.Request.Context(), &req); err != nil {
		badRequest(c, err.Error(), nil)
		return
	}

	h.logger.Info("event logged",
		zap.String("event_id", req.ID),
		zap.String("type", string(req.Type)),
		zap.String("date", req.Date),
	)

	c.JSON(http.StatusCreated, req)
}

// ListEvents returns log entries matching the optional type/from/to filters.
func (h *EventHandler) ListEvents(c *gin.Context) {
	filter := repository.EventFilter{
		Type: model.EventType(c.Query("type")),
		From: c.Query("from"),
		To:   c.Query("to"),
	}

	for _, d := range []string{filter.From, filter.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(model.DateLayout, d); err != nil {
			badRequest(c, "Invalid date, expected YYYY-MM-DD", err)
			return
		}
	}

	events := h.service.History(c.Request.Context(), filter)
	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}
