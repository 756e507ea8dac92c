package corpus

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/oy-619/teamrecall/internal/db"
	"github.com/oy-619/teamrecall/internal/domain/document"
)

func TestEnsureIndex_CreatesWhenMissing(t *testing.T) {
	repo, ms, _ := newTestRepo(t)

	var created *db.IndexDefinition
	ms.indexExistsFn = func(_ context.Context, _ string) (bool, error) { return false, nil }
	ms.createIndexFn = func(_ context.Context, def *db.IndexDefinition) error {
		created = def
		return nil
	}

	if err := repo.EnsureIndex(context.Background(), HNSWConfig{M: 32, EFConstruct: 400}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected CreateIndex call")
	}
	if created.Name != "teamrecall:idx" {
		t.Errorf("unexpected index name %q", created.Name)
	}
	if len(created.Prefixes) != 1 || created.Prefixes[0] != "teamrecall:doc:" {
		t.Errorf("unexpected prefixes %v", created.Prefixes)
	}

	var hasVector bool
	for _, f := range created.Fields {
		if f.Type == db.IndexFieldVector {
			hasVector = true
			if f.VectorDim != 4 || f.VectorM != 32 {
				t.Errorf("unexpected vector field %+v", f)
			}
		}
	}
	if !hasVector {
		t.Error("expected vector field in index definition")
	}
}

func TestEnsureIndex_SkipsWhenPresent(t *testing.T) {
	repo, ms, _ := newTestRepo(t)

	ms.indexExistsFn = func(_ context.Context, _ string) (bool, error) { return true, nil }
	ms.createIndexFn = func(_ context.Context, _ *db.IndexDefinition) error {
		t.Fatal("CreateIndex must not be called")
		return nil
	}

	if err := repo.EnsureIndex(context.Background(), HNSWConfig{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAdd_StoresEmbeddedDocs(t *testing.T) {
	repo, ms, emb := newTestRepo(t)

	var items []db.HashSetItem
	ms.hsetMultiFn = func(_ context.Context, got []db.HashSetItem) error {
		items = got
		return nil
	}

	docs := []document.Document{
		document.New("明日は練習です", "田中", "E7/10/22(水) 14:30"),
		document.New("集合は9:00", "佐藤", "E7/10/23(木) 08:00"),
	}
	if err := repo.Add(context.Background(), docs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if emb.calls != 2 {
		t.Errorf("expected 2 embed calls (fallback), got %d", emb.calls)
	}
	if !strings.HasPrefix(items[0].Key, "teamrecall:doc:") {
		t.Errorf("unexpected key %q", items[0].Key)
	}
	if items[0].Fields[fieldContent] != "明日は練習です" {
		t.Errorf("unexpected content %q", items[0].Fields[fieldContent])
	}
	if items[0].Fields[fieldAuthor] != "田中" {
		t.Errorf("unexpected author %q", items[0].Fields[fieldAuthor])
	}
	if len(items[0].Fields[fieldVector]) != 16 {
		t.Errorf("expected 16 vector bytes, got %d", len(items[0].Fields[fieldVector]))
	}
}

func TestAdd_StableIDs(t *testing.T) {
	doc := document.New("同じ内容", "田中", "E7/10/22(水) 14:30")
	if docID(doc) != docID(doc) {
		t.Error("expected deterministic doc id")
	}
	other := document.New("同じ内容", "佐藤", "E7/10/22(水) 14:30")
	if docID(doc) == docID(other) {
		t.Error("expected distinct ids for distinct authors")
	}
}

func TestAdd_DimensionMismatch(t *testing.T) {
	repo, _, emb := newTestRepo(t)
	emb.vec = []float32{0.1, 0.2} // repo expects dim 4

	err := repo.Add(context.Background(), []document.Document{
		document.New("内容", "田中", ""),
	})
	if err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestSimilaritySearchWithScore(t *testing.T) {
	repo, ms, _ := newTestRepo(t)

	ms.searchKNNFn = func(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
		if q.IndexName != "teamrecall:idx" {
			t.Errorf("unexpected index %q", q.IndexName)
		}
		if q.Filter != "" {
			t.Errorf("unexpected filter %q", q.Filter)
		}
		if q.K != 5 {
			t.Errorf("unexpected k %d", q.K)
		}
		return &db.SearchResult{
			Total: 2,
			Entries: []db.SearchEntry{
				{Key: "teamrecall:doc:a", Score: 0.1, Fields: map[string]string{
					fieldContent: "練習の連絡", fieldAuthor: "田中", fieldTimestamp: "E7/10/22(水) 14:30",
				}},
				{Key: "teamrecall:doc:b", Score: 0.4, Fields: map[string]string{
					fieldContent: "試合の連絡", fieldAuthor: "佐藤", fieldTimestamp: "E7/10/23(木) 08:00",
				}},
			},
		}, nil
	}

	docs, scores, err := repo.SimilaritySearchWithScore(context.Background(), "練習", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 || len(scores) != 2 {
		t.Fatalf("expected 2 hits, got %d/%d", len(docs), len(scores))
	}
	if docs[0].Content() != "練習の連絡" || scores[0] != 0.1 {
		t.Errorf("unexpected first hit: %q %g", docs[0].Content(), scores[0])
	}
	if docs[1].Author() != "佐藤" {
		t.Errorf("unexpected second author %q", docs[1].Author())
	}
}

func TestSimilaritySearchWithScoreByAuthor(t *testing.T) {
	repo, ms, _ := newTestRepo(t)

	ms.searchKNNFn = func(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
		if q.Filter != "@author:{田中}" {
			t.Errorf("unexpected filter %q", q.Filter)
		}
		return &db.SearchResult{}, nil
	}

	_, _, err := repo.SimilaritySearchWithScoreByAuthor(context.Background(), "練習", "田中", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSimilaritySearch_EmbedError(t *testing.T) {
	repo, _, emb := newTestRepo(t)
	emb.err = errors.New("provider down")

	_, _, err := repo.SimilaritySearchWithScore(context.Background(), "練習", 5)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGetAll(t *testing.T) {
	repo, ms, _ := newTestRepo(t)

	ms.scanFn = func(_ context.Context, pattern string) ([]string, error) {
		if pattern != "teamrecall:doc:*" {
			t.Errorf("unexpected pattern %q", pattern)
		}
		return []string{"teamrecall:doc:a", "teamrecall:doc:b"}, nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, keys []string) ([]map[string]string, error) {
		return []map[string]string{
			{fieldContent: "一件目", fieldAuthor: "田中"},
			{}, // deleted between scan and fetch
		}, nil
	}

	docs, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 doc, got %d", len(docs))
	}
	if docs[0].Content() != "一件目" {
		t.Errorf("unexpected content %q", docs[0].Content())
	}
}

func TestCount(t *testing.T) {
	repo, ms, _ := newTestRepo(t)

	ms.searchCountFn = func(_ context.Context, index, query string) (int, error) {
		if index != "teamrecall:idx" || query != "*" {
			t.Errorf("unexpected args %q %q", index, query)
		}
		return 7, nil
	}

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 7 {
		t.Errorf("expected 7, got %d", n)
	}
}
