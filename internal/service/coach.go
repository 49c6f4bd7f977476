package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fitpulse/backend/internal/ai"
	"github.com/fitpulse/backend/internal/metrics"
	"github.com/fitpulse/backend/pkg/model"
)

// coachSystemPrompt frames the generation request.
const coachSystemPrompt = `You are a supportive fitness coach inside a personal
fitness tracker. Answer briefly and practically using the user's profile and
recent progress provided in the context. Never give medical diagnoses.`

// fallbackTips is the deterministic advice pool used when generation is
// unavailable. Selection is keyed off the question so the same question gets
// the same answer.
var fallbackTips = []string{
	"Consistency is key. Even 20 minutes daily beats 2 hours once a week.",
	"Eat protein with every meal. It helps with muscle repair and keeps you full.",
	"Stay hydrated. Aim for at least 8 glasses of water daily.",
	"Prioritize sleep. 7-9 hours supports recovery and appetite control.",
	"Track your progress. What gets measured gets improved.",
	"Include rest days. Muscles grow during recovery, not workouts.",
	"Eat whole foods: vegetables, lean proteins, and complex carbs.",
	"Mix up your workouts. Combine strength, cardio, and flexibility.",
}

// CoachService answers user questions with AI-generated text when a
// generator is configured, and with deterministic advice otherwise. A
// generation failure never propagates; the caller always gets text.
type CoachService struct {
	generator ai.Generator
	progress  *ProgressService
	profile   ProfileSource
	logger    *zap.Logger
}

// NewCoachService creates a new CoachService. generator may be nil, in which
// case every answer comes from the deterministic fallback.
func NewCoachService(generator ai.Generator, progress *ProgressService, profile ProfileSource, logger *zap.Logger) *CoachService {
	return &CoachService{
		generator: generator,
		progress:  progress,
		profile:   profile,
		logger:    logger,
	}
}

// CoachReply is a chat answer plus its provenance.
type CoachReply struct {
	Message   string `json:"message"`
	Generated bool   `json:"generated"`
}

// Chat answers a free-form question. The prompt carries the user's profile
// metrics and today's progress; on any generation failure the reply degrades
// to the deterministic fallback.
func (s *CoachService) Chat(ctx context.Context, question string) CoachReply {
	if strings.TrimSpace(question) == "" {
		return CoachReply{Message: "Ask me anything about your training, nutrition, or recovery.", Generated: false}
	}

	if s.generator == nil {
		return CoachReply{Message: s.fallback(question), Generated: false}
	}

	answer, err := s.generator.Generate(ctx, coachSystemPrompt, s.buildContext(ctx)+"\n\nQuestion: "+question)
	if err != nil {
		s.logger.Warn("coach generation failed, using fallback", zap.Error(err))
		return CoachReply{Message: s.fallback(question), Generated: false}
	}

	return CoachReply{Message: answer, Generated: true}
}

// buildContext summarizes the profile and today's progress for the prompt.
func (s *CoachService) buildContext(ctx context.Context) string {
	p := s.profile.Get(ctx)
	summary := metrics.Summarize(p)
	today := time.Now().Format(model.DateLayout)
	daily := s.progress.DailyProgressFor(ctx, today)

	var b strings.Builder
	fmt.Fprintf(&b, "Profile: age %d, %s, %.0f cm, %.1f kg, goal %s, activity %s.\n",
		p.Personal.Age, p.Personal.Gender, p.Personal.HeightCm, p.Personal.WeightKg,
		p.Goals.PrimaryGoal, p.Lifestyle.ActivityLevel)
	fmt.Fprintf(&b, "Metrics: BMI %.1f (%s), calorie target %d kcal, protein target %d g.\n",
		summary.BMI, summary.BMICategory, summary.CalorieTarget, summary.ProteinTarget)
	fmt.Fprintf(&b, "Today: %.0f kcal eaten (%.0f%% of target), %d/%d glasses of water, %d workouts, streak %d days.",
		daily.Totals.Calories, daily.CaloriePercent, daily.WaterGlasses, summary.WaterTarget,
		daily.WorkoutsLogged, s.progress.StreakDays(ctx, today))
	return b.String()
}

// fallback picks a deterministic tip keyed off the question text.
func (s *CoachService) fallback(question string) string {
	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "protein") || strings.Contains(q, "eat") || strings.Contains(q, "food") || strings.Contains(q, "meal"):
		return fallbackTips[1]
	case strings.Contains(q, "water") || strings.Contains(q, "drink") || strings.Contains(q, "hydrat"):
		return fallbackTips[2]
	case strings.Contains(q, "sleep") || strings.Contains(q, "tired") || strings.Contains(q, "recover"):
		return fallbackTips[3]
	case strings.Contains(q, "rest"):
		return fallbackTips[5]
	case strings.Contains(q, "workout") || strings.Contains(q, "train") || strings.Contains(q, "exercise"):
		return fallbackTips[7]
	}

	// Stable hash so repeated questions get repeated answers.
	h := 0
	for _, r := range q {
		h = (h*31 + int(r)) % len(fallbackTips)
	}
	if h < 0 {
		h = -h
	}
	return fallbackTips[h]
}
