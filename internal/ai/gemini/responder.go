package gemini

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const systemPrompt = `You are an intelligent job assistant that helps users find jobs,
answer job-related questions, and provides personalized recommendations.
Always be helpful, professional, and provide actionable advice.
When recommending jobs, explain why they match the user's criteria.`

// Responder answers career-advice and general questions with the model.
type Responder struct {
	generator contentGenerator
	logger    *zap.Logger
}

func NewResponder(generator contentGenerator, logger *zap.Logger) *Responder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Responder{generator: generator, logger: logger}
}

func (r *Responder) Respond(ctx context.Context, message, topic string) (string, error) {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")
	if topic = strings.TrimSpace(topic); topic != "" {
		fmt.Fprintf(&b, "Provide helpful career advice about %s.\n", topic)
	}
	fmt.Fprintf(&b, "Answer this question: %s", message)

	answer, err := r.generator.GenerateContent(ctx, b.String())
	if err != nil {
		return "", fmt.Errorf("gemini respond: %w", err)
	}

	r.logger.Debug("gemini respond",
		zap.String("model", r.generator.Model()),
		zap.Int("answer_length", len(answer)),
	)

	return answer, nil
}
