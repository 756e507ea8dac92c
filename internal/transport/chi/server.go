package chi

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/oy-619/teamrecall/internal/domain"
	"github.com/oy-619/teamrecall/internal/domain/document"
	healthuc "github.com/oy-619/teamrecall/internal/usecase/health"
	ingestuc "github.com/oy-619/teamrecall/internal/usecase/ingest"
	retrievaluc "github.com/oy-619/teamrecall/internal/usecase/retrieval"
)

const (
	maxK            = 100
	maxIngestBatch  = 5000
	maxIngestBodyMB = 32
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the retrieval engine over HTTP.
type Server struct {
	retrieval     *retrievaluc.Service
	ingest        *ingestuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	retrieval *retrievaluc.Service,
	ingest *ingestuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		retrieval: retrieval,
		ingest:    ingest,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrBackendUnavailable, http.StatusBadGateway, CodeBackendUnavailable),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, CodeEmbeddingProviderError),
	}
	return s
}

// Routes registers all API routes on the given router. Middleware is the
// caller's responsibility so the composition root owns the full chain.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.Search)
		r.Post("/schedule-search", s.ScheduleSearch)
		r.Post("/contextual-search", s.ContextualSearch)
		r.Post("/documents", s.IngestDocuments)
		r.Get("/analytics", s.Analytics)
		r.Get("/stats", s.GetStats)
		r.Post("/stats/reset", s.ResetStats)
	})
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if !validateQuery(w, req.Query, req.K) {
		return
	}

	opts := retrievaluc.DefaultSearchOptions()
	opts.K = req.K
	opts.UserID = req.UserID
	opts.ScoreThreshold = req.ScoreThreshold
	if req.BoostRecent != nil {
		opts.BoostRecent = *req.BoostRecent
	}

	docs := s.retrieval.Search(r.Context(), req.Query, opts)
	writeJSON(w, http.StatusOK, searchResponseFrom(docs))
}

// ScheduleSearch handles POST /api/v1/schedule-search.
func (s *Server) ScheduleSearch(w http.ResponseWriter, r *http.Request) {
	var req ScheduleSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if !validateQuery(w, req.Query, req.K) {
		return
	}

	opts := retrievaluc.DefaultScheduleOptions()
	opts.K = req.K
	opts.ScoreThreshold = req.ScoreThreshold
	if req.FutureOnly != nil {
		opts.FutureOnly = *req.FutureOnly
	}

	docs := s.retrieval.ScheduleSearch(r.Context(), req.Query, opts)
	writeJSON(w, http.StatusOK, searchResponseFrom(docs))
}

// ContextualSearch handles POST /api/v1/contextual-search.
func (s *Server) ContextualSearch(w http.ResponseWriter, r *http.Request) {
	var req ContextualSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if !validateQuery(w, req.Query, req.K) {
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "user_id is required")
		return
	}

	docs := s.retrieval.ContextualSearch(r.Context(), req.Query, req.UserID, req.K)
	writeJSON(w, http.StatusOK, searchResponseFrom(docs))
}

// IngestDocuments handles POST /api/v1/documents. A JSON body carries
// pre-parsed documents; a text/plain body is parsed as a chat transcript.
func (s *Server) IngestDocuments(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxIngestBodyMB<<20)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "text/plain" {
		res, err := s.ingest.IngestTranscript(r.Context(), body)
		if err != nil {
			s.handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
		return
	}

	var req IngestRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Documents) == 0 || len(req.Documents) > maxIngestBatch {
		writeError(w, http.StatusBadRequest, CodeValidationFailed,
			"documents count must be between 1 and 5000")
		return
	}

	docs := make([]document.Document, len(req.Documents))
	for i, item := range req.Documents {
		docs[i] = document.New(item.Content, item.Author, item.Timestamp)
	}

	res, err := s.ingest.IngestDocuments(r.Context(), docs)
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Analytics handles GET /api/v1/analytics.
func (s *Server) Analytics(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "query parameter is required")
		return
	}

	report := s.retrieval.Analytics(r.Context(), query)
	writeJSON(w, http.StatusOK, report)
}

// GetStats handles GET /api/v1/stats.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.retrieval.Stats().Snapshot())
}

// ResetStats handles POST /api/v1/stats/reset.
func (s *Server) ResetStats(w http.ResponseWriter, r *http.Request) {
	s.retrieval.Stats().Reset()
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func validateQuery(w http.ResponseWriter, query string, k int) bool {
	if query == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "query is required")
		return false
	}
	if k < 0 || k > maxK {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "k must be between 0 and 100")
		return false
	}
	return true
}

func searchResponseFrom(docs []document.Document) SearchResponse {
	items := make([]DocumentItem, len(docs))
	for i, d := range docs {
		items[i] = DocumentItem{
			Content:   d.Content(),
			Author:    d.Author(),
			Timestamp: d.Timestamp(),
		}
	}
	return SearchResponse{Items: items, Total: len(items)}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeErrorMessage returns a sentinel error message for the client without exposing internals.
func safeErrorMessage(err error) string {
	sentinels := []error{
		domain.ErrBackendUnavailable,
		domain.ErrEmbeddingProviderError,
		domain.ErrVectorDimMismatch,
		domain.ErrNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleError(w http.ResponseWriter, err error) {
	s.logger.Warn("request failed", zap.Error(err))
	msg := safeErrorMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
