package chat

import (
	"context"
	"fmt"
	"strings"

	"jobscout/internal/ai"
	"jobscout/internal/job"
	"jobscout/internal/match"
	"jobscout/internal/utils"

	"go.uber.org/zap"
)

const (
	apologyReply = "I apologize, but I encountered an error processing your request. Please try again."

	resumeInvite  = "I'd be happy to analyze your resume! Please share your resume text and I'll help you find matching job opportunities."
	adviceInvite  = "I'd be happy to provide career advice! Please let me know what specific career guidance you're looking for."
	detailsInvite = "I'd be happy to provide job details! Please specify which job you'd like to know more about."
	similarInvite = "I'd be happy to find similar jobs! Please specify which job you'd like me to find matches for."
	generalInvite = "I'd be happy to help! Please let me know what job-related questions you have."

	searchResultLimit  = 5
	similarResultLimit = 3
	descriptionPreview = 300
)

// JobSource supplies the posting collection a conversation works against.
type JobSource interface {
	Load() (*job.Jobs, error)
}

// Agent classifies each message and routes it to the matching core or the
// responder. Internal failures never reach the user as errors.
type Agent struct {
	classifier ai.Classifier
	responder  ai.Responder
	source     JobSource
	engine     *match.Engine
	sessions   *SessionStore
	logger     *zap.Logger
}

type Response struct {
	Reply      string  `json:"response"`
	SessionID  string  `json:"session_id"`
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// NewAgent wires the agent. The responder may be nil; model-backed intents
// then answer with canned invitations instead.
func NewAgent(classifier ai.Classifier, responder ai.Responder, source JobSource, engine *match.Engine, sessions *SessionStore, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sessions == nil {
		sessions = NewSessionStore(0)
	}

	return &Agent{
		classifier: classifier,
		responder:  responder,
		source:     source,
		engine:     engine,
		sessions:   sessions,
		logger:     logger,
	}
}

func (a *Agent) Sessions() *SessionStore { return a.sessions }

// HandleMessage processes one user message in the given session. An empty
// session id starts a new session; the id in the response identifies it.
func (a *Agent) HandleMessage(ctx context.Context, sessionID, message string) *Response {
	session := a.sessions.Get(sessionID)
	a.sessions.Append(session.ID, RoleUser, message)

	intent, err := a.classifier.Classify(ctx, message)
	if err != nil {
		a.logger.Error("intent classification failed", zap.Error(err))
		a.sessions.Append(session.ID, RoleAssistant, apologyReply)
		return &Response{Reply: apologyReply, SessionID: session.ID, Confidence: 0}
	}

	a.logger.Debug("classified message",
		zap.String("session_id", session.ID),
		zap.String("intent", intent.Name),
		zap.Float64("confidence", intent.Confidence),
	)

	reply, err := a.respond(ctx, message, intent)
	confidence := intent.Confidence
	if err != nil {
		a.logger.Error("response generation failed",
			zap.String("intent", intent.Name),
			zap.Error(err),
		)
		reply = apologyReply
		confidence = 0
	}

	a.sessions.Append(session.ID, RoleAssistant, reply)

	return &Response{
		Reply:      reply,
		SessionID:  session.ID,
		Intent:     intent.Name,
		Confidence: confidence,
	}
}

func (a *Agent) respond(ctx context.Context, message string, intent *ai.Intent) (string, error) {
	switch intent.Name {
	case ai.IntentJobSearch:
		return a.handleJobSearch(intent)
	case ai.IntentResumeAnalysis:
		return a.handleResumeAnalysis(intent)
	case ai.IntentCareerAdvice:
		return a.handleModelAnswer(ctx, message, intent.Param("topic"), adviceInvite)
	case ai.IntentJobDetails:
		return a.handleJobDetails(intent)
	case ai.IntentSimilarJobs:
		return a.handleSimilarJobs(intent)
	default:
		return a.handleModelAnswer(ctx, message, "", generalInvite)
	}
}

func (a *Agent) handleJobSearch(intent *ai.Intent) (string, error) {
	jobs, err := a.source.Load()
	if err != nil {
		return "", fmt.Errorf("loading postings: %w", err)
	}

	query := intent.Param("query")
	location := intent.Param("location")

	results := jobs.Search(query, location, searchResultLimit)
	if results.Len() == 0 {
		return fmt.Sprintf("I couldn't find any jobs matching %q. Try a broader search or different keywords.", query), nil
	}

	var b strings.Builder
	b.WriteString("Here are some matching job opportunities:\n")
	for i, posting := range results.Items {
		fmt.Fprintf(&b, "%d. %s at %s (%s)\n", i+1, posting.Title, posting.Company, posting.Location)
	}
	b.WriteString("\nWould you like me to show more details about any specific position or refine your search?")

	return b.String(), nil
}

func (a *Agent) handleResumeAnalysis(intent *ai.Intent) (string, error) {
	resumeText := intent.Param("resume_text")
	if resumeText == "" {
		return resumeInvite, nil
	}

	jobs, err := a.source.Load()
	if err != nil {
		return "", fmt.Errorf("loading postings: %w", err)
	}

	profile := match.ExtractProfile(resumeText)
	recommendations := a.engine.Recommend(profile, jobs, match.Options{})

	var b strings.Builder
	b.WriteString("Based on your resume analysis, here are my findings:\n\n")

	skills := profile.Skills
	if len(skills) > 5 {
		skills = skills[:5]
	}
	fmt.Fprintf(&b, "Skills identified: %s\n", strings.Join(skills, ", "))
	if profile.ExperienceYears != nil {
		fmt.Fprintf(&b, "Experience level: %g years\n", *profile.ExperienceYears)
	}
	if len(profile.PreferredLocations) > 0 {
		fmt.Fprintf(&b, "Preferred locations: %s\n", strings.Join(profile.PreferredLocations, ", "))
	}

	if len(recommendations) == 0 {
		b.WriteString("\nI couldn't find strong matches in the current postings. Try scraping more jobs or broadening your profile.")
		return b.String(), nil
	}

	b.WriteString("\nTop job recommendations:\n")
	top := recommendations
	if len(top) > similarResultLimit {
		top = top[:similarResultLimit]
	}
	for i, rec := range top {
		fmt.Fprintf(&b, "%d. %s at %s\n   Score: %.2f - %s\n", i+1, rec.Job.Title, rec.Job.Company, rec.Score, rec.Rationale)
	}
	b.WriteString("\nWould you like me to show more recommendations or help you refine your job search?")

	return b.String(), nil
}

func (a *Agent) handleJobDetails(intent *ai.Intent) (string, error) {
	jobID := intent.Param("job_id")
	if jobID == "" {
		return detailsInvite, nil
	}

	jobs, err := a.source.Load()
	if err != nil {
		return "", fmt.Errorf("loading postings: %w", err)
	}

	posting := jobs.FindByID(jobID)
	if posting == nil {
		return fmt.Sprintf("I couldn't find a job with id %q. It may have expired or been removed.", jobID), nil
	}

	var b strings.Builder
	b.WriteString("Here are the details for the job you requested:\n\n")
	fmt.Fprintf(&b, "Job title: %s\n", posting.Title)
	fmt.Fprintf(&b, "Company: %s\n", posting.Company)
	fmt.Fprintf(&b, "Location: %s\n", posting.Location)
	if posting.Experience != "" {
		fmt.Fprintf(&b, "Experience: %s\n", posting.Experience)
	}
	if len(posting.Skills) > 0 {
		fmt.Fprintf(&b, "Skills required: %s\n", strings.Join(posting.Skills, ", "))
	}
	if posting.JobType != "" {
		fmt.Fprintf(&b, "Job type: %s\n", posting.JobType)
	}
	if posting.Description != "" {
		fmt.Fprintf(&b, "\nDescription: %s\n", utils.TruncateForLog(posting.Description, descriptionPreview))
	}
	b.WriteString("\nWould you like me to show similar jobs?")

	return b.String(), nil
}

func (a *Agent) handleSimilarJobs(intent *ai.Intent) (string, error) {
	jobID := intent.Param("job_id")
	if jobID == "" {
		return similarInvite, nil
	}

	jobs, err := a.source.Load()
	if err != nil {
		return "", fmt.Errorf("loading postings: %w", err)
	}

	similar := a.engine.SimilarByOverlap(jobID, jobs, similarResultLimit)
	if len(similar) == 0 {
		return "I couldn't find jobs similar to that one in the current postings.", nil
	}

	var b strings.Builder
	b.WriteString("Here are some similar jobs that might interest you:\n\n")
	for i, rec := range similar {
		fmt.Fprintf(&b, "%d. %s at %s\n   %s\n   Location: %s\n\n",
			i+1, rec.Job.Title, rec.Job.Company, rec.Rationale, rec.Job.Location)
	}
	b.WriteString("These jobs have similar skill requirements. Would you like more details about any of them?")

	return b.String(), nil
}

// handleModelAnswer delegates to the responder when one is configured.
func (a *Agent) handleModelAnswer(ctx context.Context, message, topic, canned string) (string, error) {
	if a.responder == nil {
		return canned, nil
	}

	answer, err := a.responder.Respond(ctx, message, topic)
	if err != nil {
		a.logger.Warn("responder failed, using canned reply", zap.Error(err))
		return canned, nil
	}

	return answer, nil
}
