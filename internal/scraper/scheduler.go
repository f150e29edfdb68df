package scraper

import (
	"context"
	"fmt"

	"jobscout/internal/store"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler drives periodic scrape rounds for a fixed set of queries.
type Scheduler struct {
	cron    *cron.Cron
	client  *Client
	store   *store.Store
	queries []string
	limit   int
	spec    string
	logger  *zap.Logger
}

// NewScheduler creates a scheduler that fires every intervalHours hours.
func NewScheduler(client *Client, st *store.Store, queries []string, limit, intervalHours int, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:    cron.New(),
		client:  client,
		store:   st,
		queries: queries,
		limit:   limit,
		spec:    fmt.Sprintf("@every %dh", intervalHours),
		logger:  logger,
	}
}

// Start registers the cron entry and runs one round immediately so the store
// is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runRound(ctx)
	})
	if err != nil {
		return fmt.Errorf("registering scrape round: %w", err)
	}

	s.cron.Start()
	s.logger.Info("scrape scheduler started", zap.String("spec", s.spec))

	go s.runRound(ctx)

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("scrape scheduler stopped")
}

func (s *Scheduler) runRound(ctx context.Context) {
	if len(s.queries) == 0 {
		s.logger.Warn("no scrape queries configured")
		return
	}

	for _, query := range s.queries {
		postings, err := s.client.Fetch(ctx, query, s.limit)
		if err != nil {
			s.logger.Error("scrape failed", zap.String("query", query), zap.Error(err))
			continue
		}

		if _, err := s.store.Add(postings); err != nil {
			s.logger.Error("storing postings failed", zap.String("query", query), zap.Error(err))
		}
	}

	s.logger.Info("scrape round complete", zap.Int("queries", len(s.queries)))
}
