package retrieval

import (
	"time"

	"github.com/oy-619/teamrecall/internal/domain/candidate"
	"github.com/oy-619/teamrecall/internal/domain/era"
)

// boostAuthor favors candidates written by the asking user.
func boostAuthor(cands []candidate.Candidate, userID string) []candidate.Candidate {
	if userID == "" {
		return cands
	}
	for i, c := range cands {
		if c.Document().Author() == userID {
			cands[i] = c.Boost(candidate.SignalAuthorMatch)
		}
	}
	return cands
}

// boostRecency weights candidates by era relative to the reference date:
// the current era and the one before it rank ahead of older material.
// Unparsable timestamps are left alone.
func boostRecency(cands []candidate.Candidate, ref time.Time) []candidate.Candidate {
	refIdx := era.IndexOf(ref)
	for i, c := range cands {
		idx, ok := era.Index(c.Document().Timestamp())
		if !ok {
			continue
		}
		switch idx {
		case refIdx:
			cands[i] = c.Boost(candidate.SignalEraCurrent)
		case refIdx - 1:
			cands[i] = c.Boost(candidate.SignalEraPrior)
		}
	}
	return cands
}
