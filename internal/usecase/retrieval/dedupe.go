package retrieval

import (
	"strings"

	"github.com/oy-619/teamrecall/internal/domain/candidate"
)

// dedupeKeyLen is the content-prefix length (in runes) that defines a
// duplicate.
const dedupeKeyLen = 50

// Dedupe collapses candidates sharing a content-prefix key, keeping the
// first occurrence. Callers sort ascending first, so the best-scored
// instance of each duplicate group survives.
func Dedupe(cands []candidate.Candidate) []candidate.Candidate {
	seen := make(map[string]struct{}, len(cands))
	out := make([]candidate.Candidate, 0, len(cands))
	for _, c := range cands {
		key := dedupeKey(c.Document().Content())
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

func dedupeKey(content string) string {
	runes := []rune(content)
	if len(runes) > dedupeKeyLen {
		runes = runes[:dedupeKeyLen]
	}
	return strings.TrimSpace(string(runes))
}
