package retrieval

import (
	"context"
	"fmt"

	"github.com/oy-619/teamrecall/internal/domain/candidate"
	"github.com/oy-619/teamrecall/internal/domain/document"
	"github.com/oy-619/teamrecall/internal/metrics"
)

// searchTomorrow is the tomorrow recipe: a battery of literal date strings
// for the day after the reference plus the configured named events, with
// hits carrying tomorrow's date partitioned ahead of everything else.
func (s *Service) searchTomorrow(ctx context.Context, k int) []document.Document {
	tomorrow := s.now().AddDate(0, 0, 1)
	dateKanji := fmt.Sprintf("%d月%d日", int(tomorrow.Month()), tomorrow.Day())
	dateSlash := fmt.Sprintf("%d/%d", int(tomorrow.Month()), tomorrow.Day())
	dateLiterals := []string{dateKanji, dateSlash}

	boost := func(c candidate.Candidate) candidate.Candidate {
		content := c.Document().Content()
		if containsAny(content, dateLiterals) {
			c = c.Boost(candidate.SignalTomorrowDate)
		}
		if s.heur.isNote(content) {
			c = c.Boost(candidate.SignalStructuredNote)
		}
		if containsAny(content, s.heur.TomorrowEventKeywords) {
			c = c.Boost(candidate.SignalEventKeyword)
		}
		return c
	}

	exps := []expansion{
		{query: dateKanji, k: 10, boost: boost},
		{query: dateSlash, k: 10, boost: boost},
	}
	for _, target := range s.heur.TomorrowTargets {
		exps = append(exps,
			expansion{query: target + " " + dateKanji, k: 10, boost: boost},
			expansion{query: target, k: 8, boost: func(c candidate.Candidate) candidate.Candidate {
				return c.Boost(candidate.SignalDirectTarget)
			}},
		)
	}

	pool := s.fuse(ctx, exps)
	candidate.SortAscending(pool)
	pool = Dedupe(pool)

	// Hits naming tomorrow's date outrank everything, whatever their score.
	specific := make([]candidate.Candidate, 0, len(pool))
	rest := make([]candidate.Candidate, 0, len(pool))
	for _, c := range pool {
		if containsAny(c.Document().Content(), dateLiterals) {
			specific = append(specific, c)
		} else {
			rest = append(rest, c)
		}
	}

	metrics.RetrievalCandidates.WithLabelValues(string(IntentTomorrow)).Observe(float64(len(pool)))
	final := append(specific, rest...)
	return candidate.Documents(candidate.Truncate(final, k))
}
