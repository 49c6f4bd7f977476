package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fitpulse/backend/internal/report"
	"github.com/fitpulse/backend/internal/repository"
	"github.com/fitpulse/backend/internal/service"
	"github.com/fitpulse/backend/pkg/model"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	store := repository.NewStore()
	profileRepo := repository.NewProfileRepository(store, logger)
	eventRepo := repository.NewEventRepository(store, logger)
	goalRepo := repository.NewGoalRepository(store, logger)
	gamificationRepo := repository.NewGamificationRepository(store, logger)

	profileService := service.NewProfileService(profileRepo, logger)
	progressService := service.NewProgressService(eventRepo, profileRepo, service.DefaultStreakConfig(), logger)
	gamificationService := service.NewGamificationService(gamificationRepo, progressService, eventRepo, profileRepo, logger)
	eventService := service.NewEventService(eventRepo, gamificationService, logger)
	goalService := service.NewGoalService(goalRepo, logger)
	coachService := service.NewCoachService(nil, progressService, profileRepo, logger)

	profileHandler := NewProfileHandler(profileService, logger)
	eventHandler := NewEventHandler(eventService, logger)
	progressHandler := NewProgressHandler(progressService, profileService, logger)
	goalHandler := NewGoalHandler(goalService, logger)
	gamificationHandler := NewGamificationHandler(gamificationService, logger)
	coachHandler := NewCoachHandler(coachService, logger)
	workoutHandler := NewWorkoutHandler(logger)
	reportHandler := NewReportHandler(
		report.NewGenerator(logger),
		progressService,
		gamificationService,
		profileService,
		eventService,
		logger,
	)

	r := gin.New()
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
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProfileEndpoints(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var p model.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	p.Personal.Name = "Sam"
	p.Personal.WeightKg = 75

	w = doJSON(t, r, http.MethodPut, "/api/v1/profile", p)
	require.Equal(t, http.StatusOK, w.Code)

	// Metrics reflect the new weight.
	w = doJSON(t, r, http.MethodGet, "/api/v1/profile/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		BMI           float64 `json:"bmi"`
		CalorieTarget int     `json:"calorie_target"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.InDelta(t, 25.95, summary.BMI, 0.01)
	assert.GreaterOrEqual(t, summary.CalorieTarget, 1200)
}

func TestProfileValidationErrorShape(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var p model.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	p.Personal.Age = 7

	w = doJSON(t, r, http.MethodPut, "/api/v1/profile", p)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	assert.NotEmpty(t, resp.Message)
}

func TestEventAndProgressFlow(t *testing.T) {
	r := setupRouter(t)
	today := time.Now().Format(model.DateLayout)

	w := doJSON(t, r, http.MethodPost, "/api/v1/events", model.Event{
		Type:    model.EventWorkout,
		Date:    today,
		Workout: &model.WorkoutDetails{DurationMin: 45, Calories: 300, Intensity: 7, Type: "strength"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/events", model.Event{
		Type:  model.EventWater,
		Date:  today,
		Water: &model.WaterDetails{GlassesAdded: 8},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/progress/daily?date="+today, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var daily service.DailyProgress
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &daily))
	assert.Equal(t, 1, daily.WorkoutsLogged)
	assert.Equal(t, 8, daily.WaterGlasses)
	assert.Equal(t, 100.0, daily.WaterPercent)

	// Logging triggered the award evaluation: 20 workout + 10 water.
	w = doJSON(t, r, http.MethodGet, "/api/v1/gamification/overview?date="+today, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var overview service.Overview
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overview))
	assert.Equal(t, 30, overview.TotalPoints)
	assert.Equal(t, 1, overview.StreakDays)

	w = doJSON(t, r, http.MethodGet, "/api/v1/events?type=workout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, 1, listing.Count)
}

func TestEventValidationRejected(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/events", model.Event{
		Type: model.EventWorkout,
		Date: "2026-03-08",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
}

func TestGoalEndpoints(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/goals", model.Goal{
		Title:  "Lose 4 kg",
		Target: 4,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Goal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	path := fmt.Sprintf("/api/v1/goals/%s/progress", created.ID)
	w = doJSON(t, r, http.MethodPut, path, map[string]any{"current": 4})
	require.Equal(t, http.StatusOK, w.Code)
	var result struct {
		Goal      model.Goal         `json:"goal"`
		Milestone *service.Milestone `json:"milestone"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, model.GoalCompleted, result.Goal.Status)
	require.NotNil(t, result.Milestone)

	// Moving the completed goal backwards is rejected.
	w = doJSON(t, r, http.MethodPut, path, map[string]any{"current": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/v1/goals/nope/progress", map[string]any{"current": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChallengeAndRedeemEndpoints(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/gamification/challenges/water-warrior/start", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/gamification/challenges/water-warrior/start", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/gamification/challenges/unknown/start", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// No points yet, so redemption fails without side effects.
	w = doJSON(t, r, http.MethodPost, "/api/v1/gamification/redeem", map[string]string{"reward_id": "rest-day-pass"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/gamification/rewards", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCoachChatEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/coach/chat", map[string]string{"message": "how much protein do I need?"})
	require.Equal(t, http.StatusOK, w.Code)

	var reply service.CoachReply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.False(t, reply.Generated, "no generator configured in tests")
	assert.NotEmpty(t, reply.Message)
}

func TestWorkoutTemplatesEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/workouts/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Templates []struct {
			Name              string `json:"name"`
			DurationMin       int    `json:"duration_min"`
			EstimatedCalories int    `json:"estimated_calories"`
		} `json:"templates"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Templates)
	for _, tpl := range resp.Templates {
		assert.Equal(t, tpl.DurationMin*8, tpl.EstimatedCalories)
	}
}

func TestWeeklyReportEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/reports/weekly?date=2026-03-08", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")), "response is a PDF document")
}

func TestInvalidDateQueryRejected(t *testing.T) {
	r := setupRouter(t)

	for _, path := range []string{
		"/api/v1/progress/daily?date=March-8",
		"/api/v1/progress/weekly?date=2026-3-8",
		"/api/v1/gamification/overview?date=yesterday",
		"/api/v1/reports/weekly?date=08-03-2026",
	} {
		w := doJSON(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}
