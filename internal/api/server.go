// Package api exposes the assistant over HTTP.
package api

import (
	"strconv"

	"jobscout/internal/chat"
	"jobscout/internal/match"
	"jobscout/internal/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Server struct {
	app    *fiber.App
	agent  *chat.Agent
	store  *store.Store
	engine *match.Engine
	logger *zap.Logger
}

func NewServer(agent *chat.Agent, st *store.Store, engine *match.Engine, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		app:    fiber.New(fiber.Config{DisableStartupMessage: true}),
		agent:  agent,
		store:  st,
		engine: engine,
		logger: logger,
	}
	s.routes()

	return s
}

func (s *Server) routes() {
	s.app.Get("/healthz", s.handleHealth)

	api := s.app.Group("/api")
	api.Post("/chat", s.handleChat)
	api.Get("/jobs/search", s.handleSearch)
	api.Post("/recommendations", s.handleRecommendations)
	api.Get("/jobs/:id/similar", s.handleSimilar)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error {
	s.logger.Info("http server listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	jobs, err := s.store.Load()
	if err != nil {
		s.logger.Error("health check store read failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"jobs":   jobs.Len(),
	})
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message is required"})
	}

	return c.JSON(s.agent.HandleMessage(c.Context(), req.SessionID, req.Message))
}

func (s *Server) handleSearch(c *fiber.Ctx) error {
	jobs, err := s.store.Load()
	if err != nil {
		s.logger.Error("loading postings failed", zap.Error(err))
		return internalError(c)
	}

	limit := parseLimit(c.Query("limit"), 10)
	results := jobs.Search(c.Query("q"), c.Query("location"), limit)

	return c.JSON(fiber.Map{
		"jobs":  results.Items,
		"count": results.Len(),
	})
}

type recommendationsRequest struct {
	ResumeText string  `json:"resume_text"`
	MinScore   float64 `json:"min_score"`
	Limit      int     `json:"limit"`
}

func (s *Server) handleRecommendations(c *fiber.Ctx) error {
	var req recommendationsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if req.ResumeText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "resume_text is required"})
	}

	jobs, err := s.store.Load()
	if err != nil {
		s.logger.Error("loading postings failed", zap.Error(err))
		return internalError(c)
	}

	profile := match.ExtractProfile(req.ResumeText)
	recommendations := s.engine.Recommend(profile, jobs, match.Options{
		MinScore: req.MinScore,
		Limit:    req.Limit,
	})

	return c.JSON(fiber.Map{
		"skills":              profile.Skills,
		"experience_years":    profile.ExperienceYears,
		"preferred_locations": profile.PreferredLocations,
		"recommendations":     recommendations,
		"count":               len(recommendations),
	})
}

func (s *Server) handleSimilar(c *fiber.Ctx) error {
	jobs, err := s.store.Load()
	if err != nil {
		s.logger.Error("loading postings failed", zap.Error(err))
		return internalError(c)
	}

	id := c.Params("id")
	if jobs.FindByID(id) == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}

	limit := parseLimit(c.Query("limit"), match.DefaultLimit)
	similar := s.engine.SimilarJobs(id, jobs, match.Options{Limit: limit})

	return c.JSON(fiber.Map{
		"job_id":  id,
		"similar": similar,
		"count":   len(similar),
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func parseLimit(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
