// Package corpus stores chat messages as vector-indexed Redis hashes and
// serves similarity search over them.
package corpus

import (
	"context"
	"fmt"

	"github.com/oy-619/teamrecall/internal/db"
	"github.com/oy-619/teamrecall/internal/domain"
	"github.com/oy-619/teamrecall/internal/domain/document"
)

// store is the consumer interface for corpus storage (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// HNSWConfig holds index build parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo implements the retrieval backend over a Redis FT index. Queries are
// embedded here so consumers deal in text only.
type Repo struct {
	store     store
	embedder  domain.Embedder
	keyPrefix string
	vectorDim int
}

// New creates a corpus repository. keyPrefix namespaces all keys and the index.
func New(s store, embedder domain.Embedder, keyPrefix string, vectorDim int) *Repo {
	return &Repo{
		store:     s,
		embedder:  embedder,
		keyPrefix: keyPrefix,
		vectorDim: vectorDim,
	}
}

func (r *Repo) indexName() string { return r.keyPrefix + "idx" }
func (r *Repo) docPrefix() string { return r.keyPrefix + "doc:" }

// EnsureIndex creates the FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context, hnsw HNSWConfig) error {
	exists, err := r.store.IndexExists(ctx, r.indexName())
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}

	def := &db.IndexDefinition{
		Name:        r.indexName(),
		StorageType: db.StorageHash,
		Prefixes:    []string{r.docPrefix()},
		Fields: []db.IndexField{
			{Name: fieldAuthor, Type: db.IndexFieldTag},
			{Name: fieldTimestamp, Type: db.IndexFieldTag},
			{
				Name:              fieldVector,
				Alias:             "vector",
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         r.vectorDim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           hnsw.M,
				VectorEFConstruct: hnsw.EFConstruct,
			},
		},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Add embeds and stores documents in one pipelined write.
func (r *Repo) Add(ctx context.Context, docs []document.Document) error {
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content()
	}

	batch, err := r.batchEmbed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed documents: %w", err)
	}
	if len(batch.Embeddings) != len(docs) {
		return fmt.Errorf("embedder returned %d vectors for %d documents", len(batch.Embeddings), len(docs))
	}

	items := make([]db.HashSetItem, len(docs))
	for i, doc := range docs {
		if r.vectorDim > 0 && len(batch.Embeddings[i]) != r.vectorDim {
			return fmt.Errorf("document %d: %w: got %d, want %d",
				i, domain.ErrVectorDimMismatch, len(batch.Embeddings[i]), r.vectorDim)
		}
		items[i] = db.HashSetItem{
			Key:    r.docPrefix() + docID(doc),
			Fields: docFields(doc, batch.Embeddings[i]),
		}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("store documents: %w", err)
	}
	return nil
}

// SimilaritySearchWithScore embeds the query and returns up to k documents
// with their vector distances, ascending (closest first).
func (r *Repo) SimilaritySearchWithScore(
	ctx context.Context, query string, k int,
) ([]document.Document, []float64, error) {
	return r.search(ctx, query, "", k)
}

// SimilaritySearchWithScoreByAuthor restricts the search to one author.
func (r *Repo) SimilaritySearchWithScoreByAuthor(
	ctx context.Context, query, author string, k int,
) ([]document.Document, []float64, error) {
	return r.search(ctx, query, db.TagFilter(fieldAuthor, author), k)
}

func (r *Repo) search(
	ctx context.Context, query, filter string, k int,
) ([]document.Document, []float64, error) {
	res, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("embed query: %w", err)
	}

	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    r.indexName(),
		Filter:       filter,
		Vector:       res.Embedding,
		K:            k,
		ReturnFields: []string{fieldContent, fieldAuthor, fieldTimestamp, "__vector_score"},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("search knn: %w", err)
	}

	docs := make([]document.Document, 0, len(sr.Entries))
	scores := make([]float64, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		docs = append(docs, docFromFields(entry.Fields))
		scores = append(scores, entry.Score)
	}
	return docs, scores, nil
}

// GetAll scans the full corpus. Intended for analytics, not the query path.
func (r *Repo) GetAll(ctx context.Context) ([]document.Document, error) {
	keys, err := r.store.Scan(ctx, r.docPrefix()+"*")
	if err != nil {
		return nil, fmt.Errorf("scan corpus: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	fields, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch corpus: %w", err)
	}

	docs := make([]document.Document, 0, len(fields))
	for _, f := range fields {
		if len(f) == 0 {
			continue
		}
		docs = append(docs, docFromFields(f))
	}
	return docs, nil
}

// Count returns the number of indexed documents.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, r.indexName(), "*")
	if err != nil {
		return 0, fmt.Errorf("count corpus: %w", err)
	}
	return n, nil
}

func (r *Repo) batchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if be, ok := r.embedder.(domain.BatchEmbedder); ok {
		return be.BatchEmbed(ctx, texts)
	}
	return domain.BatchFallback(ctx, r.embedder, texts)
}
