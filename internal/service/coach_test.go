package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// stubGenerator returns a fixed answer or error.
type stubGenerator struct {
	answer string
	err    error
	calls  int
	prompt string
}

func (g *stubGenerator) Generate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	g.calls++
	g.prompt = userMessage
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}

func newCoachService(t *testing.T, generator *stubGenerator) *CoachService {
	t.Helper()
	events, profile, _, _ := newTestRepos(t)
	progress := NewProgressService(events, profile, DefaultStreakConfig(), zap.NewNop())
	if generator == nil {
		return NewCoachService(nil, progress, profile, zap.NewNop())
	}
	return NewCoachService(generator, progress, profile, zap.NewNop())
}

func TestCoachChat_GeneratedAnswer(t *testing.T) {
	gen := &stubGenerator{answer: "Do more squats."}
	svc := newCoachService(t, gen)

	reply := svc.Chat(context.Background(), "How do I get stronger legs?")
	assert.True(t, reply.Generated)
	assert.Equal(t, "Do more squats.", reply.Message)
	assert.Equal(t, 1, gen.calls)

	// The prompt carries profile context plus the question.
	assert.Contains(t, gen.prompt, "Profile:")
	assert.Contains(t, gen.prompt, "Question: How do I get stronger legs?")
}

func TestCoachChat_FallsBackOnGenerationError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("rate limited")}
	svc := newCoachService(t, gen)

	reply := svc.Chat(context.Background(), "What should I eat after a workout?")
	assert.False(t, reply.Generated)
	assert.NotEmpty(t, reply.Message)
}

func TestCoachChat_NoGeneratorUsesFallback(t *testing.T) {
	svc := newCoachService(t, nil)

	reply := svc.Chat(context.Background(), "How much water should I drink?")
	assert.False(t, reply.Generated)
	assert.Contains(t, strings.ToLower(reply.Message), "hydrated")
}

func TestCoachChat_EmptyQuestion(t *testing.T) {
	gen := &stubGenerator{answer: "unused"}
	svc := newCoachService(t, gen)

	reply := svc.Chat(context.Background(), "   ")
	assert.False(t, reply.Generated)
	assert.NotEmpty(t, reply.Message)
	assert.Zero(t, gen.calls)
}

func TestCoachChat_FallbackIsDeterministic(t *testing.T) {
	svc := newCoachService(t, nil)
	ctx := context.Background()

	question := "Any ideas for staying motivated this winter?"
	first := svc.Chat(ctx, question)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first.Message, svc.Chat(ctx, question).Message)
	}
}
