package retrieval

import (
	"context"

	"github.com/oy-619/teamrecall/internal/domain/document"
)

// Backend is the vector-similarity store consumed by the engine. Scores are
// distances: ascending, lower is better.
type Backend interface {
	SimilaritySearchWithScore(ctx context.Context, query string, k int) ([]document.Document, []float64, error)
	GetAll(ctx context.Context) ([]document.Document, error)
	Count(ctx context.Context) (int, error)
}

// AuthorSearcher is the optional author-prefilter capability. The contextual
// recipe probes for it with a type assertion and silently skips the
// author-scoped branch when the backend cannot filter.
type AuthorSearcher interface {
	SimilaritySearchWithScoreByAuthor(ctx context.Context, query, author string, k int) ([]document.Document, []float64, error)
}
