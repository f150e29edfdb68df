package match

import (
	"fmt"
	"sort"

	"jobscout/internal/job"

	"go.uber.org/zap"
)

const (
	// DefaultMinScore is the threshold below which postings are dropped
	// from recommendations.
	DefaultMinScore = 0.3
	// DefaultLimit caps the number of returned recommendations.
	DefaultLimit = 10
)

// Options tune a single ranking call. Zero values fall back to the defaults.
type Options struct {
	MinScore float64
	Limit    int
}

func (o Options) withDefaults() Options {
	if o.MinScore == 0 {
		o.MinScore = DefaultMinScore
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	return o
}

// Engine ranks postings for a profile or a reference posting. It is
// stateless: every call reads only its inputs, so concurrent use needs no
// synchronization.
type Engine struct {
	logger *zap.Logger
}

func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Recommend scores every posting against the profile, keeps those strictly
// above the minimum score, and returns them sorted by score descending
// (stable, collection order breaks ties), truncated to the limit. A posting
// whose scoring fails is logged and skipped; a nil collection yields an
// empty list.
func (e *Engine) Recommend(p Profile, jobs *job.Jobs, opts Options) []MatchResult {
	opts = opts.withDefaults()
	results := make([]MatchResult, 0)
	if jobs == nil {
		return results
	}

	for _, posting := range jobs.Items {
		result, err := e.scoreOne(p, posting)
		if err != nil {
			e.logger.Warn("skipping posting after scoring failure", zap.Error(err))
			continue
		}
		if result.Score > opts.MinScore {
			results = append(results, result)
		}
	}

	sortByScore(results)
	return truncate(results, opts.Limit)
}

// SimilarJobs ranks the collection against the posting with the given id
// using the additive similarity scorer. The reference posting itself is
// excluded. An unknown id yields an empty list.
func (e *Engine) SimilarJobs(refID string, jobs *job.Jobs, opts Options) []MatchResult {
	opts = opts.withDefaults()
	results := make([]MatchResult, 0)

	ref := jobs.FindByID(refID)
	if ref == nil {
		e.logger.Debug("reference posting not found", zap.String("job_id", refID))
		return results
	}

	for _, posting := range jobs.Items {
		if posting == nil || posting.ID == ref.ID {
			continue
		}
		score := SimilarityScore(ref, posting)
		if score > opts.MinScore {
			results = append(results, MatchResult{
				Job:           posting,
				Score:         score,
				Rationale:     fmt.Sprintf("Similar to %s position", ref.Title),
				MatchedSkills: []string{},
			})
		}
	}

	sortByScore(results)
	return truncate(results, opts.Limit)
}

// SimilarByOverlap is the coarse reference-job pathway: postings are kept
// when they share at least one skill with the reference or match its
// location exactly, ordered by overlap count then location match. It is a
// separate heuristic from SimilarJobs and callers depend on its different
// filtering behavior.
func (e *Engine) SimilarByOverlap(refID string, jobs *job.Jobs, limit int) []MatchResult {
	if limit <= 0 {
		limit = DefaultLimit
	}
	results := make([]MatchResult, 0)

	ref := jobs.FindByID(refID)
	if ref == nil {
		return results
	}

	type ranked struct {
		result  MatchResult
		overlap int
		locHit  bool
	}
	var candidates []ranked

	for _, posting := range jobs.Items {
		if posting == nil || posting.ID == ref.ID {
			continue
		}
		overlap, locHit := CoarseSimilarity(ref, posting)
		if overlap == 0 && !locHit {
			continue
		}
		candidates = append(candidates, ranked{
			result: MatchResult{
				Job:           posting,
				Score:         0,
				Rationale:     fmt.Sprintf("Shares %d skills with %s", overlap, ref.Title),
				MatchedSkills: []string{},
				LocationMatch: locHit,
			},
			overlap: overlap,
			locHit:  locHit,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].overlap != candidates[j].overlap {
			return candidates[i].overlap > candidates[j].overlap
		}
		return candidates[i].locHit && !candidates[j].locHit
	})

	for _, c := range candidates {
		results = append(results, c.result)
	}
	return truncate(results, limit)
}

// scoreOne wraps ScoreJob so a malformed posting cannot abort a whole
// ranking call.
func (e *Engine) scoreOne(p Profile, posting *job.Posting) (result MatchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scoring posting: %v", r)
		}
	}()

	if posting == nil {
		return result, fmt.Errorf("nil posting in collection")
	}

	return ScoreJob(p, posting), nil
}

func sortByScore(results []MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}

func truncate(results []MatchResult, limit int) []MatchResult {
	if len(results) > limit {
		return results[:limit]
	}
	return results
}
