// Package retrieval is the temporal-aware query-expansion, fusion, and
// re-ranking engine between the calling agent and the vector backend.
//
// Every public entry point follows the same pipeline: normalize the query,
// pick a recipe, fan out expansion queries, tag and boost the hits, merge
// into one pool, deduplicate, sort ascending by distance, truncate to k.
// The engine never returns an error to the caller; a degraded or empty list
// is always preferable to aborting response generation.
package retrieval

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/oy-619/teamrecall/internal/domain/candidate"
	"github.com/oy-619/teamrecall/internal/domain/document"
	"github.com/oy-619/teamrecall/internal/metrics"
	"github.com/oy-619/teamrecall/internal/normalize"
)

// Default parameters of the public entry points.
const (
	DefaultK                      = 5
	DefaultContextualK            = 3
	DefaultScoreThreshold         = 0.5
	DefaultScheduleScoreThreshold = 0.7
)

// Service is the retrieval facade.
type Service struct {
	backend           Backend
	heur              Heuristics
	log               *zap.Logger
	stats             *Stats
	now               func() time.Time
	defaultK          int
	scoreThreshold    float64
	scheduleThreshold float64
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the reference-time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithDefaults overrides the zero-value fallbacks for k and the score
// thresholds. Non-positive values keep the built-in defaults.
func WithDefaults(k int, score, schedule float64) Option {
	return func(s *Service) {
		if k > 0 {
			s.defaultK = k
		}
		if score > 0 {
			s.scoreThreshold = score
		}
		if schedule > 0 {
			s.scheduleThreshold = schedule
		}
	}
}

// New creates the retrieval service.
func New(backend Backend, heur Heuristics, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		backend:           backend,
		heur:              heur,
		log:               log,
		stats:             NewStats(),
		now:               time.Now,
		defaultK:          DefaultK,
		scoreThreshold:    DefaultScoreThreshold,
		scheduleThreshold: DefaultScheduleScoreThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats exposes the advisory counters.
func (s *Service) Stats() *Stats { return s.stats }

// SearchOptions tunes Search. Zero-valued K and ScoreThreshold fall back to
// the defaults; start from DefaultSearchOptions to get BoostRecent=true.
type SearchOptions struct {
	K              int
	UserID         string
	BoostRecent    bool
	ScoreThreshold float64
}

// DefaultSearchOptions returns the documented Search defaults.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{K: DefaultK, BoostRecent: true, ScoreThreshold: DefaultScoreThreshold}
}

// Search is the plain recipe: one over-fetched query, score-threshold
// filter with fallback, optional author/recency rerank, dedupe, truncate.
func (s *Service) Search(ctx context.Context, query string, opts SearchOptions) []document.Document {
	if opts.K <= 0 {
		opts.K = s.defaultK
	}
	if opts.ScoreThreshold <= 0 {
		opts.ScoreThreshold = s.scoreThreshold
	}

	q := normalize.Normalize(query)
	if q == "" {
		return []document.Document{}
	}

	s.stats.recordSearch(IntentPlain)
	metrics.RetrievalRequestsTotal.WithLabelValues(string(IntentPlain), "ok").Inc()

	docs, scores, err := s.backend.SimilaritySearchWithScore(ctx, q, opts.K*3)
	if err != nil {
		s.log.Warn("similarity search failed", zap.String("query", q), zap.Error(err))
		return []document.Document{}
	}

	pool := make([]candidate.Candidate, 0, len(docs))
	for i := range docs {
		if i >= len(scores) {
			break
		}
		pool = append(pool, candidate.New(docs[i], candidate.Score(scores[i]), q))
	}

	filtered := make([]candidate.Candidate, 0, len(pool))
	for _, c := range pool {
		if float64(c.Score()) <= opts.ScoreThreshold {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		filtered = candidate.Truncate(pool, opts.K)
		if len(pool) > 0 {
			s.stats.recordFilterFallback()
			metrics.RetrievalFilterFallbacksTotal.WithLabelValues("score_threshold").Inc()
			s.log.Warn("score threshold emptied pool, using unfiltered top-k",
				zap.String("query", q),
				zap.Float64("threshold", opts.ScoreThreshold))
		}
	}

	if opts.UserID != "" {
		filtered = boostAuthor(filtered, opts.UserID)
	}
	if opts.BoostRecent {
		filtered = boostRecency(filtered, s.now())
	}

	return s.finish(IntentPlain, filtered, opts.K)
}

// ContextualSearch favors the asking user's own messages: an author-scoped
// branch (when the backend supports filtering) merged with a general one.
func (s *Service) ContextualSearch(ctx context.Context, query, userID string, k int) []document.Document {
	if k <= 0 {
		k = DefaultContextualK
	}

	q := normalize.Normalize(query)
	if q == "" {
		return []document.Document{}
	}

	s.stats.recordSearch(intentContextual)
	metrics.RetrievalRequestsTotal.WithLabelValues(string(intentContextual), "ok").Inc()

	var pool []candidate.Candidate

	if by, ok := s.backend.(AuthorSearcher); ok && userID != "" {
		docs, scores, err := by.SimilaritySearchWithScoreByAuthor(ctx, q, userID, k*2)
		if err != nil {
			s.log.Debug("author-scoped search skipped", zap.Error(err))
		} else {
			for i := range docs {
				if i >= len(scores) {
					break
				}
				c := candidate.New(docs[i], candidate.Score(scores[i]), q)
				pool = append(pool, c.Boost(candidate.SignalAuthorScope))
			}
		}
	}

	docs, scores, err := s.backend.SimilaritySearchWithScore(ctx, q, k*2)
	if err != nil {
		s.log.Warn("similarity search failed", zap.String("query", q), zap.Error(err))
	} else {
		for i := range docs {
			if i >= len(scores) {
				break
			}
			pool = append(pool, candidate.New(docs[i], candidate.Score(scores[i]), q))
		}
	}

	return s.finish(intentContextual, pool, k)
}

// finish is the shared pipeline tail: sort ascending, dedupe, truncate,
// strip scores.
func (s *Service) finish(intent Intent, pool []candidate.Candidate, k int) []document.Document {
	metrics.RetrievalCandidates.WithLabelValues(string(intent)).Observe(float64(len(pool)))
	candidate.SortAscending(pool)
	pool = Dedupe(pool)
	pool = candidate.Truncate(pool, k)
	return candidate.Documents(pool)
}
