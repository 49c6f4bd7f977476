package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fitpulse/backend/internal/ai"
	"github.com/fitpulse/backend/internal/config"
	"github.com/fitpulse/backend/internal/handler"
	"github.com/fitpulse/backend/internal/middleware"
	"github.com/fitpulse/backend/internal/report"
	"github.com/fitpulse/backend/internal/repository"
	"github.com/fitpulse/backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize Zap logger
	var logger *zap.Logger
	if cfg.Server.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Initialize the in-memory store and repositories
	store := repository.NewStore()
	profileRepo := repository.NewProfileRepository(store, logger)
	eventRepo := repository.NewEventRepository(store, logger)
	goalRepo := repository.NewGoalRepository(store, logger)
	gamificationRepo := repository.NewGamificationRepository(store, logger)

	// Initialize the OpenAI client when a key is configured; the coach falls
	// back to canned guidance without one.
	var generator ai.Generator
	if cfg.OpenAI.APIKey != "" {
		client, err := ai.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)
		if err != nil {
			logger.Fatal("Failed to initialize OpenAI client", zap.Error(err))
		}
		generator = client
	} else {
		logger.Warn("No OpenAI API key configured, coach runs in fallback mode")
	}

	// Initialize services
	streakCfg := service.StreakConfig{
		MealsPerDay: cfg.Tracker.MealsPerDay,
		MaxLookback: cfg.Tracker.StreakLookbackDays,
	}
	profileService := service.NewProfileService(profileRepo, logger)
	progressService := service.NewProgressService(eventRepo, profileRepo, streakCfg, logger)
	gamificationService := service.NewGamificationService(gamificationRepo, progressService, eventRepo, profileRepo, logger)
	eventService := service.NewEventService(eventRepo, gamificationService, logger)
	goalService := service.NewGoalService(goalRepo, logger)
	coachService := service.NewCoachService(generator, progressService, profileRepo, logger)

	// Initialize PDF generator
	reportGenerator := report.NewGenerator(logger)

	// Initialize handlers
	profileHandler := handler.NewProfileHandler(profileService, logger)
	eventHandler := handler.NewEventHandler(eventService, logger)
	progressHandler := handler.NewProgressHandler(progressService, profileService, logger)
	goalHandler := handler.NewGoalHandler(goalService, logger)
	gamificationHandler := handler.NewGamificationHandler(gamificationService, logger)
	coachHandler := handler.NewCoachHandler(coachService, logger)
	workoutHandler := handler.NewWorkoutHandler(logger)
	reportHandler := handler.NewReportHandler(
		reportGenerator,
		progressService,
		gamificationService,
		profileService,
		eventService,
		logger,
	)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	r := gin.New()

	// Add recovery middleware (must be first)
	r.Use(middleware.RecoveryMiddleware(logger))

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Configure appropriately for production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add request ID middleware
	r.Use(middleware.RequestIDMiddleware())

	// Add request logging middleware
	r.Use(middleware.RequestLoggingMiddleware(logger))

	// Add error logging middleware
	r.Use(middleware.ErrorLoggingMiddleware(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/profile", profileHandler.GetProfile)
		v1.PUT("/profile", profileHandler.PutProfile)
		v1.GET("/profile/metrics", profileHandler.GetMetrics)

		v1.POST("/events", eventHandler.PostEvent)
		v1.GET("/events", eventHandler.ListEvents)

		v1.GET("/progress/daily", progressHandler.GetDaily)
		v1.GET("/progress/weekly", progressHandler.GetWeekly)
		v1.GET("/progress/streak", progressHandler.GetStreak)
		v1.GET("/progress/recommendations", progressHandler.GetRecommendations)

		v1.POST("/goals", goalHandler.PostGoal)
		v1.GET("/goals", goalHandler.ListGoals)
		v1.PUT("/goals/:id/progress", goalHandler.PutGoalProgress)

		v1.GET("/gamification/overview", gamificationHandler.GetOverview)
		v1.GET("/gamification/badges", gamificationHandler.GetBadges)
		v1.GET("/gamification/challenges", gamificationHandler.GetChallenges)
		v1.POST("/gamification/challenges/:id/start", gamificationHandler.PostChallengeStart)
		v1.POST("/gamification/challenges/:id/abandon", gamificationHandler.PostChallengeAbandon)
		v1.GET("/gamification/rewards", gamificationHandler.GetRewards)
		v1.POST("/gamification/redeem", gamificationHandler.PostRedeem)

		v1.POST("/coach/chat", coachHandler.PostChat)

		v1.GET("/workouts/templates", workoutHandler.GetTemplates)

		v1.GET("/reports/weekly", reportHandler.GetWeeklyReport)
	}

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
