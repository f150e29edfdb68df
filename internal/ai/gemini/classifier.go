package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"jobscout/internal/ai"
	"jobscout/internal/utils"

	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	defaultConfidence   = 0.8
)

// Classifier asks the model to classify a message and falls back to keyword
// classification when the model is unreachable or returns unusable output.
type Classifier struct {
	generator contentGenerator
	fallback  ai.Classifier
	logger    *zap.Logger
	maxLogLen int
}

func NewClassifier(generator contentGenerator, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Classifier{
		generator: generator,
		fallback:  ai.NewFallbackClassifier(),
		logger:    logger,
		maxLogLen: defaultMaxLogLength,
	}
}

func (c *Classifier) Classify(ctx context.Context, message string) (*ai.Intent, error) {
	prompt := buildPrompt(message)

	c.logger.Debug("gemini classify request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, c.maxLogLen)),
	)

	raw, err := c.generator.GenerateContent(ctx, prompt)
	if err != nil {
		c.logger.Warn("gemini classification failed, using keyword fallback", zap.Error(err))
		return c.fallback.Classify(ctx, message)
	}

	c.logger.Debug("gemini classify response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, c.maxLogLen)),
	)

	intent, err := parseIntent(raw)
	if err != nil {
		c.logger.Warn("unparsable gemini response, using keyword fallback", zap.Error(err))
		return c.fallback.Classify(ctx, message)
	}

	return intent, nil
}

func buildPrompt(message string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "User message: {{USER_MESSAGE}}\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, "{{USER_MESSAGE}}", message)
}

func parseIntent(raw string) (*ai.Intent, error) {
	cleaned := extractJSON(strings.TrimSpace(raw))

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	name := coerceString(data["intent"])
	if !ai.KnownIntent(name) {
		name = ai.IntentGeneralQuestion
	}

	confidence := coerceFloat(data["confidence"])
	if math.IsNaN(confidence) {
		confidence = defaultConfidence
	}

	intent := &ai.Intent{
		Name:       name,
		Confidence: confidence,
		Params:     map[string]string{},
	}

	params, _ := data["parameters"].(map[string]any)
	for key, value := range params {
		if key == "skills" {
			intent.Skills = coerceStrings(value)
			continue
		}
		if s := coerceString(value); s != "" {
			intent.Params[key] = s
		}
	}

	return intent, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

func coerceStrings(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
	}
	return nil
}
