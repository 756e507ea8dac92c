package retrieval

import (
	"context"

	"go.uber.org/zap"

	"github.com/oy-619/teamrecall/internal/domain/era"
	"github.com/oy-619/teamrecall/internal/normalize"
)

// analyticsSampleK is the fixed sample size behind a diagnostics report.
const analyticsSampleK = 10

// Report is the diagnostic view of one query's raw result distribution.
type Report struct {
	TotalResults       int            `json:"total_results"`
	ScoreRange         ScoreRange     `json:"score_range"`
	AuthorDistribution map[string]int `json:"author_distribution"`
	EraDistribution    map[string]int `json:"era_distribution"`
}

// ScoreRange is the min/max raw distance over the sample.
type ScoreRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Analytics samples the backend's raw response for a query and summarizes
// its score range and author/era spread. Diagnostic only; failures yield an
// empty report.
func (s *Service) Analytics(ctx context.Context, query string) Report {
	report := Report{
		AuthorDistribution: make(map[string]int),
		EraDistribution:    make(map[string]int),
	}

	q := normalize.Normalize(query)
	if q == "" {
		return report
	}

	docs, scores, err := s.backend.SimilaritySearchWithScore(ctx, q, analyticsSampleK)
	if err != nil {
		s.log.Warn("analytics search failed", zap.String("query", q), zap.Error(err))
		return report
	}

	report.TotalResults = len(docs)
	for i, score := range scores {
		if i == 0 || score < report.ScoreRange.Min {
			report.ScoreRange.Min = score
		}
		if i == 0 || score > report.ScoreRange.Max {
			report.ScoreRange.Max = score
		}
	}

	for _, doc := range docs {
		author := doc.Author()
		if author == "" {
			author = "unknown"
		}
		report.AuthorDistribution[author]++

		if label := era.Label(doc.Timestamp()); label != "" {
			report.EraDistribution[label]++
		}
	}
	return report
}
