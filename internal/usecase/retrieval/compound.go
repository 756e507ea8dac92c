package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/oy-619/teamrecall/internal/domain/candidate"
	"github.com/oy-619/teamrecall/internal/domain/document"
	"github.com/oy-619/teamrecall/internal/metrics"
)

var (
	addressWords  = []string{"住所", "場所", "集合", "会場"}
	timeWords     = []string{":", "時", "開始", "集合"}
	locationWords = []string{"@", "住所", "場所"}
)

// searchCompound is the venue+time recipe for queries asking where and when
// at once. Each hit is scored by weighted boolean signals (venue name,
// location marker, address wording, time wording, known time literal,
// curated note) and the pool is partitioned so that hits carrying both
// place and time come first.
func (s *Service) searchCompound(ctx context.Context, q string, k int) []document.Document {
	queries := []string{q}
	if strings.Contains(q, "明日") {
		tomorrow := s.now().AddDate(0, 0, 1)
		dateKanji := fmt.Sprintf("%d月%d日", int(tomorrow.Month()), tomorrow.Day())
		dateSlash := fmt.Sprintf("%d/%d", int(tomorrow.Month()), tomorrow.Day())
		queries = append(queries,
			dateKanji+" 集合 時間 場所",
			dateSlash+" 会場 開始",
			dateKanji+" 集合場所 集合時間",
		)
	}
	queries = append(queries, s.heur.CompoundExpansions...)

	exps := make([]expansion, 0, len(queries))
	for _, query := range queries {
		exps = append(exps, expansion{query: query, k: 15, boost: s.compoundBoost})
	}

	pool := s.fuse(ctx, exps)
	candidate.SortAscending(pool)
	pool = Dedupe(pool)

	high := make([]candidate.Candidate, 0, len(pool))
	medium := make([]candidate.Candidate, 0, len(pool))
	general := make([]candidate.Candidate, 0, len(pool))
	for _, c := range pool {
		content := c.Document().Content()
		hasLocation := containsAny(content, locationWords) || s.heur.mentionsVenue(content)
		hasTime := containsAny(content, timeWords) || containsAny(content, s.heur.TimeLiterals)
		switch {
		case hasLocation && hasTime:
			high = append(high, c)
		case hasLocation || hasTime:
			medium = append(medium, c)
		default:
			general = append(general, c)
		}
	}

	metrics.RetrievalCandidates.WithLabelValues(string(IntentCompound)).Observe(float64(len(pool)))
	final := append(high, append(medium, general...)...)
	return candidate.Documents(candidate.Truncate(final, k))
}

// compoundBoost grades a hit by how much place and time information it
// carries. The composite thresholds decide between the strong and the
// moderate multiplier; curated notes never fall below the note floor.
func (s *Service) compoundBoost(c candidate.Candidate) candidate.Candidate {
	content := c.Document().Content()

	composite := 0
	if s.heur.mentionsVenue(content) {
		composite += 3
	}
	if strings.Contains(content, "@") {
		composite += 2
	}
	if containsAny(content, addressWords) {
		composite++
	}
	if containsAny(content, timeWords) {
		composite += 2
	}
	if containsAny(content, s.heur.TimeLiterals) {
		composite += 3
	}
	isNote := s.heur.isNote(content)
	if isNote {
		composite += 4
	}

	switch {
	case composite >= 6:
		return c.Boost(candidate.SignalCompoundHigh)
	case composite >= 3:
		return c.Boost(candidate.SignalCompoundMedium)
	case isNote:
		return c.Boost(candidate.SignalStructuredNote)
	}
	return c
}
