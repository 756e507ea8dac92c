package retrieval

import (
	"context"

	"go.uber.org/zap"

	"github.com/oy-619/teamrecall/internal/domain/candidate"
	"github.com/oy-619/teamrecall/internal/domain/document"
	"github.com/oy-619/teamrecall/internal/metrics"
	"github.com/oy-619/teamrecall/internal/normalize"
	"github.com/oy-619/teamrecall/internal/temporal"
)

// ScheduleOptions tunes ScheduleSearch. Zero-valued K and ScoreThreshold
// fall back to the defaults; start from DefaultScheduleOptions to get
// FutureOnly=true.
type ScheduleOptions struct {
	K              int
	ScoreThreshold float64
	FutureOnly     bool
}

// DefaultScheduleOptions returns the documented ScheduleSearch defaults.
func DefaultScheduleOptions() ScheduleOptions {
	return ScheduleOptions{K: DefaultK, ScoreThreshold: DefaultScheduleScoreThreshold, FutureOnly: true}
}

// ScheduleSearch classifies the query's intent and dispatches to the
// matching recipe. Explicit future-cue wording forces future-only
// filtering regardless of the caller's setting.
func (s *Service) ScheduleSearch(ctx context.Context, query string, opts ScheduleOptions) []document.Document {
	if opts.K <= 0 {
		opts.K = s.defaultK
	}
	if opts.ScoreThreshold <= 0 {
		opts.ScoreThreshold = s.scheduleThreshold
	}

	q := normalize.Normalize(query)
	if q == "" {
		return []document.Document{}
	}

	if containsAny(q, futureCues) {
		opts.FutureOnly = true
	}

	intent := Classify(q)
	if intent != IntentPlain {
		s.stats.recordSearch(intent)
		metrics.RetrievalRequestsTotal.WithLabelValues(string(intent), "ok").Inc()
	}

	switch intent {
	case IntentTomorrow:
		return s.searchTomorrow(ctx, opts.K)
	case IntentCompound:
		return s.searchCompound(ctx, q, opts.K)
	case IntentVenue:
		return s.searchVenue(ctx, q, opts.K)
	case IntentSmart:
		return s.searchSmart(ctx, q, opts.K)
	case IntentSchedule:
		return s.searchSchedule(ctx, q, opts)
	default:
		return s.Search(ctx, q, SearchOptions{
			K:              opts.K,
			BoostRecent:    true,
			ScoreThreshold: opts.ScoreThreshold,
		})
	}
}

// searchSchedule is the generic schedule recipe: a fixed expansion battery
// plus direct searches for the configured target events, future-only
// filtering with its documented fallbacks, and a structured-note
// preference over the final slots.
func (s *Service) searchSchedule(ctx context.Context, q string, opts ScheduleOptions) []document.Document {
	noteBoost := func(c candidate.Candidate) candidate.Candidate {
		if s.heur.isNote(c.Document().Content()) {
			return c.Boost(candidate.SignalStructuredNote)
		}
		return c
	}

	exps := []expansion{{query: q, k: 15, boost: noteBoost}}
	for _, e := range s.heur.GenericExpansions {
		exps = append(exps, expansion{query: e, k: 15, boost: noteBoost})
	}
	for _, e := range s.heur.NoteExpansions {
		exps = append(exps, expansion{query: e, k: 15, boost: noteBoost})
	}
	for _, target := range s.heur.TargetEvents {
		exps = append(exps, expansion{
			query:    target,
			k:        10,
			noteOnly: true,
			boost: func(c candidate.Candidate) candidate.Candidate {
				return c.Boost(candidate.SignalTargetLiteral)
			},
		})
	}

	pool := s.fuse(ctx, exps)
	candidate.SortAscending(pool)
	pool = Dedupe(pool)

	if opts.FutureOnly {
		pool = s.filterFuture(pool, q)
	}

	// Prefer curated notes; top up from chat only when notes fill less
	// than half the requested slots.
	notes := make([]candidate.Candidate, 0, len(pool))
	general := make([]candidate.Candidate, 0, len(pool))
	for _, c := range pool {
		if s.heur.isNote(c.Document().Content()) {
			notes = append(notes, c)
		} else {
			general = append(general, c)
		}
	}

	var final []candidate.Candidate
	if len(notes) >= opts.K/2 {
		final = candidate.Truncate(notes, opts.K)
	} else {
		final = notes
		final = append(final, candidate.Truncate(general, opts.K-len(notes))...)
	}

	metrics.RetrievalCandidates.WithLabelValues(string(IntentSchedule)).Observe(float64(len(pool)))
	return candidate.Documents(candidate.Truncate(final, opts.K))
}

// filterFuture keeps candidates whose content refers to an upcoming date;
// curated notes get a second chance through the stricter literal date check.
// Attendance wording earns no exemption either way: a stale 参加予定 message
// survives exactly when it names a future date on its own. An emptied pool
// falls back to the unfiltered one.
func (s *Service) filterFuture(pool []candidate.Candidate, q string) []candidate.Candidate {
	now := s.now()
	kept := make([]candidate.Candidate, 0, len(pool))
	for _, c := range pool {
		content := c.Document().Content()

		switch {
		case temporal.RefersToFuture(content, now):
			kept = append(kept, c)
		case s.heur.isNote(content) && temporal.HasFutureScheduleDate(content, now):
			kept = append(kept, c)
		}
	}

	if len(kept) == 0 && len(pool) > 0 {
		s.stats.recordFilterFallback()
		metrics.RetrievalFilterFallbacksTotal.WithLabelValues("future_only").Inc()
		s.log.Warn("no future schedules found, returning unfiltered results",
			zap.String("query", q))
		return pool
	}
	return kept
}
