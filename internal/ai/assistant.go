// Package ai defines the intent model and the interfaces the chat layer
// uses to talk to language-model backends.
package ai

import "context"

const (
	IntentJobSearch       = "job_search"
	IntentResumeAnalysis  = "resume_analysis"
	IntentCareerAdvice    = "career_advice"
	IntentJobDetails      = "job_details"
	IntentSimilarJobs     = "similar_jobs"
	IntentGeneralQuestion = "general_question"
)

// Intent is the classified meaning of a user message.
type Intent struct {
	Name       string
	Confidence float64
	Params     map[string]string
	Skills     []string
}

// Param returns a named parameter or the empty string.
func (i *Intent) Param(key string) string {
	if i == nil || i.Params == nil {
		return ""
	}
	return i.Params[key]
}

// KnownIntent reports whether name is one of the supported intents.
func KnownIntent(name string) bool {
	switch name {
	case IntentJobSearch, IntentResumeAnalysis, IntentCareerAdvice,
		IntentJobDetails, IntentSimilarJobs, IntentGeneralQuestion:
		return true
	}
	return false
}

// Classifier turns a user message into an Intent.
type Classifier interface {
	Classify(ctx context.Context, message string) (*Intent, error)
}

// Responder answers free-form questions that need a language model.
type Responder interface {
	Respond(ctx context.Context, message, topic string) (string, error)
}
