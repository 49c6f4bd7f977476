package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fitpulse/backend/internal/service"
	"github.com/fitpulse/backend/pkg/model"
)

// ProfileHandler implements the profile and derived-metrics endpoints.
type ProfileHandler struct {
	service *service.ProfileService
	logger  *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger,
	}
}

// GetProfile returns the current profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Get(c.Request.Context()))
}

// PutProfile replaces the profile after validation.
func (h *ProfileHandler) PutProfile(c *gin.Context) {
	var req model.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		badRequest(c, "Invalid request body", err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		badRequest(c, err.Error(), nil)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// GetMetrics returns the derived metric summary for the current profile.
func (h *ProfileHandler) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Metrics(c.Request.Context()))
}
