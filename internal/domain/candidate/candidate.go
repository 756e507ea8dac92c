// Package candidate holds the scored-candidate value type flowing through
// fusion, deduplication, and re-ranking.
package candidate

import (
	"sort"

	"github.com/oy-619/teamrecall/internal/domain/document"
)

// Score is a similarity distance: lower is better. The only composition is
// multiplicative; factors below 1.0 improve rank, above 1.0 demote.
type Score float64

// Boost multiplies the score by a factor, clamping at zero so a chain of
// boosts can never flip the ordering convention.
func (s Score) Boost(factor float64) Score {
	out := Score(float64(s) * factor)
	if out < 0 {
		return 0
	}
	return out
}

// Candidate is one (document, score) pair under consideration in a single
// retrieval call, tagged with the expansion queries that produced it.
type Candidate struct {
	doc     document.Document
	score   Score
	origins []string
}

// New creates a candidate with the given origin tag.
func New(doc document.Document, score Score, origin string) Candidate {
	c := Candidate{doc: doc, score: score}
	if origin != "" {
		c.origins = []string{origin}
	}
	return c
}

// Document returns the underlying document.
func (c Candidate) Document() document.Document { return c.doc }

// Score returns the current (possibly boosted) distance.
func (c Candidate) Score() Score { return c.score }

// Origins returns the expansion queries that produced this candidate.
func (c Candidate) Origins() []string { return c.origins }

// Boost returns a copy with the multiplier for the given signal applied.
// Unknown signals are a no-op, so a missing table entry can never corrupt
// the score.
func (c Candidate) Boost(sig Signal) Candidate {
	factor, ok := multipliers[sig]
	if !ok {
		return c
	}
	c.score = c.score.Boost(factor)
	return c
}

// WithOrigin returns a copy with an extra origin tag appended.
func (c Candidate) WithOrigin(origin string) Candidate {
	origins := make([]string, 0, len(c.origins)+1)
	origins = append(origins, c.origins...)
	c.origins = append(origins, origin)
	return c
}

// SortAscending orders candidates best-first (lowest distance first). The
// sort is stable so earlier pool positions win ties, which the deduplicator
// relies on.
func SortAscending(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].score < cands[j].score
	})
}

// Truncate caps the slice at k. Non-positive k returns the slice unchanged.
func Truncate(cands []Candidate, k int) []Candidate {
	if k <= 0 || len(cands) <= k {
		return cands
	}
	return cands[:k]
}

// Documents extracts the documents, dropping scores and origins.
func Documents(cands []Candidate) []document.Document {
	docs := make([]document.Document, len(cands))
	for i, c := range cands {
		docs[i] = c.doc
	}
	return docs
}
