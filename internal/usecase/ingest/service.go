// Package ingest loads chat-export transcripts and caller-supplied
// documents into the corpus.
package ingest

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/oy-619/teamrecall/internal/domain/document"
)

// DefaultBatchSize caps one backend write.
const DefaultBatchSize = 256

// Adder is the corpus write contract.
type Adder interface {
	Add(ctx context.Context, docs []document.Document) error
}

// Service ingests transcripts and documents in batches. Document identity
// in the store is content-derived, so re-ingesting the same transcript is
// idempotent.
type Service struct {
	repo      Adder
	batchSize int
	log       *zap.Logger
}

// New creates the ingest service. batchSize <= 0 selects the default.
func New(repo Adder, batchSize int, log *zap.Logger) *Service {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Service{repo: repo, batchSize: batchSize, log: log}
}

// Result summarizes one ingest call.
type Result struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// IngestTranscript parses a chat export and writes the documents it yields.
func (s *Service) IngestTranscript(ctx context.Context, r io.Reader) (Result, error) {
	docs, skipped, err := ParseTranscript(r)
	if err != nil {
		return Result{}, fmt.Errorf("parse transcript: %w", err)
	}
	if skipped > 0 {
		s.log.Warn("skipped malformed transcript lines", zap.Int("lines", skipped))
	}

	res, err := s.IngestDocuments(ctx, docs)
	res.Skipped += skipped
	return res, err
}

// IngestDocuments writes documents in batches. Empty content is skipped.
func (s *Service) IngestDocuments(ctx context.Context, docs []document.Document) (Result, error) {
	kept := make([]document.Document, 0, len(docs))
	skipped := 0
	for _, d := range docs {
		if d.Content() == "" {
			skipped++
			continue
		}
		kept = append(kept, d)
	}

	for start := 0; start < len(kept); start += s.batchSize {
		end := start + s.batchSize
		if end > len(kept) {
			end = len(kept)
		}
		if err := s.repo.Add(ctx, kept[start:end]); err != nil {
			return Result{Added: start, Skipped: skipped},
				fmt.Errorf("add documents %d-%d: %w", start, end, err)
		}
	}

	s.log.Info("ingested documents",
		zap.Int("added", len(kept)),
		zap.Int("skipped", skipped))
	return Result{Added: len(kept), Skipped: skipped}, nil
}
