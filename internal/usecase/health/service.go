package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates a non-critical component is failing; queries may
	// still be answered from cache or with reduced quality.
	Degraded Status = "degraded"
	// Unhealthy indicates the store is unreachable and no request can be served.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks over the store, the vector index, and
// the embedding provider.
type Service struct {
	db        DBPinger
	corpus    CorpusCounter
	embedding EmbeddingChecker
}

// New creates a Service. corpus and embedding can be nil.
func New(db DBPinger, corpus CorpusCounter, embedding EmbeddingChecker) *Service {
	return &Service{db: db, corpus: corpus, embedding: embedding}
}

// Check runs health checks against all components. A failing store makes
// the whole service unhealthy; index and embedding failures only degrade it.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		status = Unhealthy
	} else {
		checks["database"] = CheckOK
	}

	if s.corpus != nil {
		if _, err := s.corpus.Count(ctx); err != nil {
			checks["index"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["index"] = CheckOK
		}
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["embedding"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
