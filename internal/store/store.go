// Package store persists the scraped job collection as a flat JSON file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"jobscout/internal/job"

	"go.uber.org/zap"
)

const DefaultPath = "jobs_data.json"

type Store struct {
	path   string
	logger *zap.Logger
}

func New(path string, logger *zap.Logger) *Store {
	if path == "" {
		path = DefaultPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

func (s *Store) Path() string { return s.path }

// Load reads the stored collection. A missing or empty file yields an empty
// collection, not an error.
func (s *Store) Load() (*job.Jobs, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &job.Jobs{}, nil
		}
		return nil, fmt.Errorf("opening job store: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat job store: %w", err)
	}
	if stat.Size() == 0 {
		return &job.Jobs{}, nil
	}

	var postings []*job.Posting
	if err := json.NewDecoder(file).Decode(&postings); err != nil {
		return nil, fmt.Errorf("decoding job store: %w", err)
	}

	return &job.Jobs{Items: postings}, nil
}

// Save writes the whole collection, replacing the previous contents.
func (s *Store) Save(jobs *job.Jobs) error {
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("opening job store for write: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jobs.Items); err != nil {
		return fmt.Errorf("encoding job store: %w", err)
	}

	return nil
}

// Add merges postings into the stored collection, skipping ids already
// present, and reports how many were actually added.
func (s *Store) Add(postings []*job.Posting) (int, error) {
	jobs, err := s.Load()
	if err != nil {
		return 0, err
	}

	added := 0
	for _, posting := range postings {
		if jobs.Add(posting) {
			added++
		}
	}

	if added > 0 {
		if err := s.Save(jobs); err != nil {
			return 0, err
		}
	}

	s.logger.Info("job store updated",
		zap.Int("received", len(postings)),
		zap.Int("added", added),
		zap.Int("total", jobs.Len()),
	)

	return added, nil
}
