package retrieval

import "sync"

// Stats is the advisory per-instance counter set exposed for diagnostics.
// It is never consulted for ranking and is safe to reset at any time.
type Stats struct {
	mu                sync.Mutex
	total             int64
	byIntent          map[Intent]int64
	expansionFailures int64
	filterFallbacks   int64
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	TotalSearches     int64            `json:"total_searches"`
	ByIntent          map[Intent]int64 `json:"by_intent"`
	ExpansionFailures int64            `json:"expansion_failures"`
	FilterFallbacks   int64            `json:"filter_fallbacks"`
}

// NewStats creates an empty counter set.
func NewStats() *Stats {
	return &Stats{byIntent: make(map[Intent]int64)}
}

func (s *Stats) recordSearch(intent Intent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total++
	s.byIntent[intent]++
}

func (s *Stats) recordExpansionFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expansionFailures++
}

func (s *Stats) recordFilterFallback() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filterFallbacks++
}

// Snapshot returns a copy of the current counters.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	byIntent := make(map[Intent]int64, len(s.byIntent))
	for k, v := range s.byIntent {
		byIntent[k] = v
	}
	return StatsSnapshot{
		TotalSearches:     s.total,
		ByIntent:          byIntent,
		ExpansionFailures: s.expansionFailures,
		FilterFallbacks:   s.filterFallbacks,
	}
}

// Reset zeroes every counter.
func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = 0
	s.byIntent = make(map[Intent]int64)
	s.expansionFailures = 0
	s.filterFallbacks = 0
}
