package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fitpulse/backend/internal/service"
)

// GamificationHandler implements the points, badge, challenge, and reward
// endpoints.
type GamificationHandler struct {
	service *service.GamificationService
	logger  *zap.Logger
}

// NewGamificationHandler creates a new GamificationHandler.
func NewGamificationHandler(service *service.GamificationService, logger *zap.Logger) *GamificationHandler {
	return &GamificationHandler{
		service: service,
		logger:  logger,
	}
}

// GetOverview returns the point total, derived level, and today's breakdown.
func (h *GamificationHandler) GetOverview(c *gin.Context) {
	date := dateQuery(c)
	if date == "" {
		return
	}
	c.JSON(http.StatusOK, h.service.OverviewFor(c.Request.Context(), date))
}

// GetBadges returns earned and locked badges, persisting new unlocks.
func (h *GamificationHandler) GetBadges(c *gin.Context) {
	date := dateQuery(c)
	if date == "" {
		return
	}

	badges, err := h.service.Badges(c.Request.Context(), date)
	if err != nil {
		internalError(c, "Failed to evaluate badges", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

// GetChallenges returns the challenge catalog with instance state merged in.
func (h *GamificationHandler) GetChallenges(c *gin.Context) {
	date := dateQuery(c)
	if date == "" {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"challenges": h.service.Challenges(c.Request.Context(), date),
	})
}

// PostChallengeStart activates a challenge from the catalog.
func (h *GamificationHandler) PostChallengeStart(c *gin.Context) {
	challengeID := c.Param("id")
	date := dateQuery(c)
	if date == "" {
		return
	}

	ch, err := h.service.StartChallenge(c.Request.Context(), challengeID, date)
	switch {
	case errors.Is(err, service.ErrUnknownChallenge):
		notFound(c, "Challenge not found")
		return
	case errors.Is(err, service.ErrChallengeAlreadyStarted):
		badRequest(c, err.Error(), nil)
		return
	case err != nil:
		internalError(c, "Failed to start challenge", err)
		return
	}

	h.logger.Info("challenge started",
		zap.String("challenge_id", ch.ID),
		zap.String("start_date", ch.StartDate),
	)

	c.JSON(http.StatusOK, ch)
}

// PostChallengeAbandon abandons an active challenge.
func (h *GamificationHandler) PostChallengeAbandon(c *gin.Context) {
	challengeID := c.Param("id")

	err := h.service.AbandonChallenge(c.Request.Context(), challengeID)
	switch {
	case errors.Is(err, service.ErrUnknownChallenge):
		notFound(c, "Challenge is not active")
		return
	case err != nil:
		internalError(c, "Failed to abandon challenge", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "abandoned"})
}

// GetRewards returns the reward catalog.
func (h *GamificationHandler) GetRewards(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rewards": service.RewardCatalog()})
}

type redeemRequest struct {
	RewardID string `json:"reward_id"`
}

// PostRedeem spends points on a catalog reward.
func (h *GamificationHandler) PostRedeem(c *gin.Context) {
	var req redeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		badRequest(c, "Invalid request body", err)
		return
	}
	if req.RewardID == "" {
		badRequest(c, "reward_id is required", nil)
		return
	}

	date := dateQuery(c)
	if date == "" {
		return
	}

	redemption, err := h.service.Redeem(c.Request.Context(), req.RewardID, date)
	switch {
	case errors.Is(err, service.ErrUnknownReward):
		notFound(c, "Reward not found")
		return
	case errors.Is(err, service.ErrInsufficientPoints):
		badRequest(c, err.Error(), nil)
		return
	case err != nil:
		internalError(c, "Failed to redeem reward", err)
		return
	}

	h.logger.Info("reward redeemed",
		zap.String("reward_id", redemption.RewardID),
		zap.Int("cost", redemption.Cost),
	)

	c.JSON(http.StatusOK, redemption)
}
