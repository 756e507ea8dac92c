package chi

// ErrorCode identifies a machine-readable error category in API responses.
type ErrorCode string

const (
	// CodeBadRequest signals a malformed request body or parameters.
	CodeBadRequest ErrorCode = "bad_request"
	// CodeValidationFailed signals a well-formed but semantically invalid request.
	CodeValidationFailed ErrorCode = "validation_failed"
	// CodeBackendUnavailable signals that the vector backend could not be reached.
	CodeBackendUnavailable ErrorCode = "backend_unavailable"
	// CodeEmbeddingProviderError signals an upstream embedding provider failure.
	CodeEmbeddingProviderError ErrorCode = "embedding_provider_error"
	// CodeInternalError signals an unexpected server-side failure.
	CodeInternalError ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// DocumentItem is the wire form of a corpus document.
type DocumentItem struct {
	Content   string `json:"content"`
	Author    string `json:"author,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// SearchRequest is the body of POST /api/v1/search.
type SearchRequest struct {
	Query          string  `json:"query"`
	K              int     `json:"k,omitempty"`
	UserID         string  `json:"user_id,omitempty"`
	BoostRecent    *bool   `json:"boost_recent,omitempty"`
	ScoreThreshold float64 `json:"score_threshold,omitempty"`
}

// ScheduleSearchRequest is the body of POST /api/v1/schedule-search.
type ScheduleSearchRequest struct {
	Query          string  `json:"query"`
	K              int     `json:"k,omitempty"`
	ScoreThreshold float64 `json:"score_threshold,omitempty"`
	FutureOnly     *bool   `json:"future_only,omitempty"`
}

// ContextualSearchRequest is the body of POST /api/v1/contextual-search.
type ContextualSearchRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id"`
	K      int    `json:"k,omitempty"`
}

// SearchResponse is the body of every search endpoint's 200 response.
type SearchResponse struct {
	Items []DocumentItem `json:"items"`
	Total int            `json:"total"`
}

// IngestRequest is the JSON body of POST /api/v1/documents.
type IngestRequest struct {
	Documents []DocumentItem `json:"documents"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
