package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fitpulse/backend/internal/service"
)

// CoachHandler implements the AI coach chat endpoint.
type CoachHandler struct {
	service *service.CoachService
	logger  *zap.Logger
}

// NewCoachHandler creates a new CoachHandler.
func NewCoachHandler(service *service.CoachService, logger *zap.Logger) *CoachHandler {
	return &CoachHandler{
		service: service,
		logger:  logger,
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

// PostChat answers a coaching question, falling back to canned guidance when
// generation is unavailable.
func (h *CoachHandler) PostChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		badRequest(c, "Invalid request body", err)
		return
	}

	reply := h.service.Chat(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, reply)
}
