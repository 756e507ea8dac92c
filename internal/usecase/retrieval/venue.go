package retrieval

import (
	"context"
	"fmt"

	"github.com/oy-619/teamrecall/internal/domain/candidate"
	"github.com/oy-619/teamrecall/internal/domain/document"
	"github.com/oy-619/teamrecall/internal/metrics"
)

var (
	gatherWords = []string{"集合", "@", "時間", "開始"}
	accessWords = []string{"住所", "駐車場", "最寄り", "行き方"}
)

// searchVenue is the venue-only recipe: where is the ground, where do we
// gather. Curated notes and literal venue names dominate; meeting-time and
// access wording earn softer bonuses.
func (s *Service) searchVenue(ctx context.Context, q string, k int) []document.Document {
	queries := []string{q}
	if containsAny(q, []string{"明日", "今度", "次"}) {
		tomorrow := s.now().AddDate(0, 0, 1)
		dateKanji := fmt.Sprintf("%d月%d日", int(tomorrow.Month()), tomorrow.Day())
		for _, venue := range s.heur.Venues {
			queries = append(queries, dateKanji+" "+venue, venue+" 集合")
		}
	}
	queries = append(queries, s.heur.VenueExpansions...)
	queries = append(queries, s.heur.VenueNoteExpansions...)

	boost := func(c candidate.Candidate) candidate.Candidate {
		content := c.Document().Content()
		if s.heur.isNote(content) {
			c = c.Boost(candidate.SignalVenueNote)
		}
		if s.heur.mentionsVenue(content) {
			c = c.Boost(candidate.SignalVenueName)
		}
		if containsAny(content, gatherWords) {
			c = c.Boost(candidate.SignalTimeBearing)
		}
		if containsAny(content, accessWords) {
			c = c.Boost(candidate.SignalAccessInfo)
		}
		return c
	}

	exps := make([]expansion, 0, len(queries))
	for _, query := range queries {
		exps = append(exps, expansion{query: query, k: 10, boost: boost})
	}

	pool := s.fuse(ctx, exps)
	candidate.SortAscending(pool)
	pool = Dedupe(pool)

	// A hit with at least two quality cues beats any number of vague ones.
	high := make([]candidate.Candidate, 0, len(pool))
	general := make([]candidate.Candidate, 0, len(pool))
	for _, c := range pool {
		content := c.Document().Content()
		quality := 0
		if s.heur.mentionsVenue(content) {
			quality++
		}
		if containsAny(content, []string{"時", ":", "開始"}) {
			quality++
		}
		if containsAny(content, []string{"@", "住所", "集合"}) {
			quality++
		}
		if s.heur.isNote(content) {
			quality++
		}
		if quality >= 2 {
			high = append(high, c)
		} else {
			general = append(general, c)
		}
	}

	metrics.RetrievalCandidates.WithLabelValues(string(IntentVenue)).Observe(float64(len(pool)))
	final := append(high, general...)
	return candidate.Documents(candidate.Truncate(final, k))
}
