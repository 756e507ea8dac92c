package retrieval

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oy-619/teamrecall/internal/domain/candidate"
	"github.com/oy-619/teamrecall/internal/domain/document"
	"github.com/oy-619/teamrecall/internal/metrics"
)

// Caps on the dynamic cross-product so a wordy query cannot explode the
// battery.
const (
	maxSmartDates    = 3
	maxSmartKeywords = 2
)

// searchSmart is the relative-schedule recipe: "this weekend", "next
// month". The relative phrase resolves to literal target dates, detected
// activity types contribute their synonym sets, and the battery is the
// capped cross-product of the two plus per-activity expansions.
func (s *Service) searchSmart(ctx context.Context, q string, k int) []document.Document {
	now := s.now()
	targetDates := resolveRelativeDates(q, now)

	var activities []string
	var searchKeywords []string
	for _, activity := range []string{"practice", "game", "tournament", "meeting"} {
		keywords := s.heur.ActivityKeywords[activity]
		if containsAny(q, keywords) {
			activities = append(activities, activity)
			if len(keywords) > maxSmartKeywords {
				keywords = keywords[:maxSmartKeywords]
			}
			searchKeywords = append(searchKeywords, keywords...)
		}
	}

	queries := []string{q}
	dates := targetDates
	if len(dates) > maxSmartDates {
		dates = dates[:maxSmartDates]
	}
	kws := searchKeywords
	if len(kws) > maxSmartKeywords {
		kws = kws[:maxSmartKeywords]
	}
	for _, date := range dates {
		queries = append(queries, date)
		for _, kw := range kws {
			queries = append(queries, date+" "+kw)
		}
	}
	for _, activity := range activities {
		queries = append(queries, s.heur.ActivityExpansions[activity]...)
	}
	queries = append(queries, s.heur.SmartNoteExpansions...)

	boost := func(c candidate.Candidate) candidate.Candidate {
		content := c.Document().Content()

		composite := 0
		for _, date := range targetDates {
			if strings.Contains(content, date) {
				composite += 3
			}
		}
		for _, activity := range activities {
			for _, kw := range s.heur.ActivityKeywords[activity] {
				if strings.Contains(content, kw) {
					composite++
				}
			}
		}
		isNote := s.heur.isNote(content)
		if isNote {
			composite += 4
		}

		switch {
		case composite >= 5:
			return c.Boost(candidate.SignalSmartHigh)
		case composite >= 2:
			return c.Boost(candidate.SignalSmartMedium)
		case isNote:
			return c.Boost(candidate.SignalStructuredNote)
		}
		return c
	}

	exps := make([]expansion, 0, len(queries))
	for _, query := range queries {
		exps = append(exps, expansion{query: query, k: 12, boost: boost})
	}

	pool := s.fuse(ctx, exps)
	candidate.SortAscending(pool)
	pool = Dedupe(pool)

	metrics.RetrievalCandidates.WithLabelValues(string(IntentSmart)).Observe(float64(len(pool)))
	return candidate.Documents(candidate.Truncate(pool, k))
}

// resolveRelativeDates turns a relative phrase into literal date strings as
// they appear in the corpus. Weekend queries yield both weekend days in
// both kanji and slash form; month queries yield month prefixes.
func resolveRelativeDates(q string, now time.Time) []string {
	var dates []string
	switch {
	case containsAny(q, []string{"今週末", "週末"}):
		daysUntilSat := (int(time.Saturday) - int(now.Weekday()) + 7) % 7
		saturday := now.AddDate(0, 0, daysUntilSat)
		sunday := saturday.AddDate(0, 0, 1)
		for _, day := range []time.Time{saturday, sunday} {
			dates = append(dates,
				fmt.Sprintf("%d月%d日", int(day.Month()), day.Day()),
				fmt.Sprintf("%d/%d", int(day.Month()), day.Day()),
			)
		}
	case containsAny(q, []string{"来月", "次の月"}):
		next := int(now.Month())%12 + 1
		dates = append(dates, fmt.Sprintf("%d月", next), fmt.Sprintf("%d/", next))
	case containsAny(q, []string{"今月", "この月"}):
		dates = append(dates, fmt.Sprintf("%d月", int(now.Month())), fmt.Sprintf("%d/", int(now.Month())))
	}
	return dates
}
