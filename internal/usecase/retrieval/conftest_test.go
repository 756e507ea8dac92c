package retrieval

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/oy-619/teamrecall/internal/domain/candidate"
	"github.com/oy-619/teamrecall/internal/domain/document"
)

// testRef is the fixed reference time for every test: 2025-10-24 (Friday,
// era E7), so "tomorrow" is Saturday 10月25日.
var testRef = time.Date(2025, 10, 24, 12, 0, 0, 0, time.Local)

// --- Mocks ---

type searchCall struct {
	query string
	k     int
}

type searchResult struct {
	docs   []document.Document
	scores []float64
}

type mockBackend struct {
	def     searchResult
	results map[string]searchResult
	errFor  map[string]error
	err     error
	calls   []searchCall

	allDocs []document.Document
	allErr  error
	count   int
}

func (m *mockBackend) SimilaritySearchWithScore(
	_ context.Context, query string, k int,
) ([]document.Document, []float64, error) {
	m.calls = append(m.calls, searchCall{query: query, k: k})
	if err, ok := m.errFor[query]; ok {
		return nil, nil, err
	}
	if m.err != nil {
		return nil, nil, m.err
	}
	if r, ok := m.results[query]; ok {
		return r.docs, r.scores, nil
	}
	return m.def.docs, m.def.scores, nil
}

func (m *mockBackend) GetAll(_ context.Context) ([]document.Document, error) {
	return m.allDocs, m.allErr
}

func (m *mockBackend) Count(_ context.Context) (int, error) {
	return m.count, nil
}

func (m *mockBackend) queried(query string) bool {
	for _, c := range m.calls {
		if c.query == query {
			return true
		}
	}
	return false
}

// mockAuthorBackend adds the author-prefilter capability.
type mockAuthorBackend struct {
	mockBackend
	byAuthor    searchResult
	byAuthorErr error
	authorCalls []string
}

func (m *mockAuthorBackend) SimilaritySearchWithScoreByAuthor(
	_ context.Context, _ string, author string, _ int,
) ([]document.Document, []float64, error) {
	m.authorCalls = append(m.authorCalls, author)
	if m.byAuthorErr != nil {
		return nil, nil, m.byAuthorErr
	}
	return m.byAuthor.docs, m.byAuthor.scores, nil
}

func newTestService(b Backend) *Service {
	return New(b, DefaultHeuristics(), zap.NewNop(), WithClock(func() time.Time { return testRef }))
}

func doc(content, author, timestamp string) document.Document {
	return document.New(content, author, timestamp)
}

func candidateWithScore(content string, score float64) candidate.Candidate {
	return candidate.New(doc(content, "", ""), candidate.Score(score), "q")
}

// plainDocs builds metadata-free documents from content strings.
func plainDocs(texts ...string) []document.Document {
	out := make([]document.Document, len(texts))
	for i, t := range texts {
		out[i] = document.New(t, "", "")
	}
	return out
}

func contents(docs []document.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Content()
	}
	return out
}
