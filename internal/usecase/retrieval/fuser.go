package retrieval

import (
	"context"

	"go.uber.org/zap"

	"github.com/oy-619/teamrecall/internal/domain/candidate"
	"github.com/oy-619/teamrecall/internal/metrics"
)

// expansion is one fan-out query in a recipe's battery. boost tags and
// re-scores each hit; noteOnly drops anything that is not a curated note.
type expansion struct {
	query    string
	k        int
	noteOnly bool
	boost    func(c candidate.Candidate) candidate.Candidate
}

// fuse runs the battery sequentially against the backend and concatenates
// every tagged hit into one pool. A failing expansion contributes nothing
// and never aborts the batch.
func (s *Service) fuse(ctx context.Context, exps []expansion) []candidate.Candidate {
	var pool []candidate.Candidate
	for _, exp := range exps {
		docs, scores, err := s.backend.SimilaritySearchWithScore(ctx, exp.query, exp.k)
		if err != nil {
			s.stats.recordExpansionFailure()
			metrics.RetrievalExpansionFailuresTotal.Inc()
			s.log.Warn("expansion query failed",
				zap.String("query", exp.query),
				zap.Error(err))
			continue
		}
		for i := range docs {
			if i >= len(scores) {
				break
			}
			if exp.noteOnly && !s.heur.isNote(docs[i].Content()) {
				continue
			}
			c := candidate.New(docs[i], candidate.Score(scores[i]), exp.query)
			if exp.boost != nil {
				c = exp.boost(c)
			}
			pool = append(pool, c)
		}
	}
	return pool
}
