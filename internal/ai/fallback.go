package ai

import (
	"context"
	"regexp"
	"strings"
)

// intentKeywords maps keyword groups to intents, checked in order. The first
// group with a keyword present in the message wins.
var intentKeywords = []struct {
	intent     string
	confidence float64
	words      []string
}{
	{IntentJobSearch, 0.7, []string{"job", "position", "opening", "vacancy", "hire", "recruit"}},
	{IntentResumeAnalysis, 0.7, []string{"resume", "cv", "profile", "skills", "experience"}},
	{IntentCareerAdvice, 0.7, []string{"advice", "tip", "help", "guide", "how to"}},
	{IntentJobDetails, 0.6, []string{"detail", "information", "about", "company"}},
	{IntentSimilarJobs, 0.6, []string{"similar", "like", "same", "related"}},
}

var locationParamPatterns = []*regexp.Regexp{
	regexp.MustCompile(`in\s+([a-z\s,]+)`),
	regexp.MustCompile(`at\s+([a-z\s,]+)`),
	regexp.MustCompile(`([a-z\s,]+)\s+area`),
	regexp.MustCompile(`remote`),
	regexp.MustCompile(`hybrid`),
}

var experienceParamPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+[-+]\d+)\s+years?`),
	regexp.MustCompile(`(\d+)\s+years?`),
	regexp.MustCompile(`entry\s+level`),
	regexp.MustCompile(`senior`),
	regexp.MustCompile(`junior`),
	regexp.MustCompile(`lead`),
}

// skillKeywords pairs a lowercase keyword with its canonical form.
var skillKeywords = []struct{ keyword, canonical string }{
	{"python", "Python"},
	{"javascript", "Javascript"},
	{"java", "Java"},
	{"react", "React"},
	{"angular", "Angular"},
	{"vue", "Vue"},
	{"node.js", "Node.Js"},
	{"sql", "Sql"},
	{"mongodb", "Mongodb"},
	{"aws", "Aws"},
	{"azure", "Azure"},
	{"docker", "Docker"},
	{"kubernetes", "Kubernetes"},
	{"git", "Git"},
	{"machine learning", "Machine Learning"},
	{"data science", "Data Science"},
	{"devops", "Devops"},
	{"agile", "Agile"},
}

var queryStopWords = map[string]bool{
	"show": true, "find": true, "get": true, "me": true, "jobs": true,
	"for": true, "in": true, "at": true, "with": true, "experience": true,
}

// FallbackClassifier classifies messages by keyword matching. It is used
// when no language model is configured or the model's output is unusable.
type FallbackClassifier struct{}

func NewFallbackClassifier() *FallbackClassifier {
	return &FallbackClassifier{}
}

// Classify never fails; an unrecognized message becomes a general question.
func (c *FallbackClassifier) Classify(_ context.Context, message string) (*Intent, error) {
	lower := strings.ToLower(message)

	intent := &Intent{
		Name:       IntentGeneralQuestion,
		Confidence: 0.5,
		Params:     map[string]string{},
	}

	for _, group := range intentKeywords {
		if containsAny(lower, group.words) {
			intent.Name = group.intent
			intent.Confidence = group.confidence
			break
		}
	}

	if location := firstMatch(locationParamPatterns, lower); location != "" {
		intent.Params["location"] = location
	}
	if experience := firstMatch(experienceParamPatterns, lower); experience != "" {
		intent.Params["experience"] = experience
	}
	for _, skill := range skillKeywords {
		if strings.Contains(lower, skill.keyword) {
			intent.Skills = append(intent.Skills, skill.canonical)
		}
	}
	if query := extractQuery(message); query != "" {
		intent.Params["query"] = query
	}

	return intent, nil
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

// firstMatch returns the first capture group of the first matching pattern,
// falling back to the whole match for patterns without groups.
func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, pattern := range patterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) > 1 && m[1] != "" {
			return strings.TrimSpace(m[1])
		}
		return strings.TrimSpace(m[0])
	}
	return ""
}

// extractQuery drops filler words and keeps the first five remaining words.
func extractQuery(message string) string {
	var kept []string
	for _, word := range strings.Fields(message) {
		if queryStopWords[strings.ToLower(word)] {
			continue
		}
		kept = append(kept, word)
		if len(kept) == 5 {
			break
		}
	}
	return strings.Join(kept, " ")
}
