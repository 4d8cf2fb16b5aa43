package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fuzzdex/internal/domain"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/candidate"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/request"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/result"
	"github.com/kailas-cloud/fuzzdex/internal/logger"
	healthuc "github.com/kailas-cloud/fuzzdex/internal/usecase/health"
	matchuc "github.com/kailas-cloud/fuzzdex/internal/usecase/match"
	searchuc "github.com/kailas-cloud/fuzzdex/internal/usecase/search"
)

// ErrorCode identifies an error category in HTTP error bodies.
type ErrorCode string

// Error body codes.
const (
	CodeBadRequest                  ErrorCode = "bad_request"
	CodeUnauthorized                ErrorCode = "unauthorized"
	CodeInvalidArgument             ErrorCode = "invalid_argument"
	CodeUnsupportedSource           ErrorCode = "unsupported_source"
	CodeDownstreamUnavailable       ErrorCode = "downstream_unavailable"
	CodeDownstreamContractViolation ErrorCode = "downstream_contract_violation"
	CodeInternalError               ErrorCode = "internal_error"
)

// ErrorResponse is the structured error body returned on any non-2xx status.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the search operations over HTTP.
type Server struct {
	search            *searchuc.Service
	matcher           *matchuc.Service
	health            *healthuc.Service
	logger            *zap.Logger
	defaultMatchField string
	errorHandlers     []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	matcher *matchuc.Service,
	health *healthuc.Service,
	defaultMatchField string,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:            search,
		matcher:           matcher,
		health:            health,
		defaultMatchField: defaultMatchField,
		logger:            logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidArgument, http.StatusBadRequest, CodeInvalidArgument),
		sentinelHandler(domain.ErrUnsupportedSource, http.StatusBadRequest, CodeUnsupportedSource),
		sentinelHandler(domain.ErrDownstreamUnavailable, http.StatusBadGateway, CodeDownstreamUnavailable),
		sentinelHandler(domain.ErrDownstreamContractViolation,
			http.StatusBadGateway, CodeDownstreamContractViolation),
	}
	return s
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/search_external", s.SearchExternal)
	// Candidate records travel in the request body; POST is accepted for
	// clients that refuse to attach a body to GET.
	r.Get("/search_local", s.SearchLocal)
	r.Post("/search_local", s.SearchLocal)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// externalResult is one /search_external response item, in provider order.
type externalResult struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ID     string `json:"id,omitempty"`
	Source string `json:"source"`
}

// SearchExternal handles GET /search_external.
func (s *Server) SearchExternal(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var source, query string
	var limit *int
	if err := runtime.BindQueryParameter("form", true, true, "source", q, &source); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, "source: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, true, "query", q, &query); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, "query: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, "limit: "+err.Error())
		return
	}

	req, err := request.NewExternal(source, query, derefInt(limit))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	hits, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]externalResult, len(hits))
	for i := range hits {
		items[i] = externalResult{
			Title:  hits[i].Title(),
			Author: hits[i].Author(),
			ID:     hits[i].ID(),
			Source: req.Source(),
		}
	}
	writeJSON(w, http.StatusOK, items)
}

// searchLocalPayload carries the caller-supplied candidate records. The
// service holds no data of its own.
type searchLocalPayload struct {
	Candidates []map[string]string `json:"candidates"`
	MatchField string              `json:"match_field"`
}

// localResult is one /search_local response item, ordered by descending score.
type localResult struct {
	Record map[string]string `json:"record"`
	Score  int               `json:"score"`
	Rank   int               `json:"rank"`
}

// SearchLocal handles GET|POST /search_local.
func (s *Server) SearchLocal(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var query string
	var threshold, limit *int
	var sourceLabel *string
	if err := runtime.BindQueryParameter("form", true, true, "query", q, &query); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, "query: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "source", q, &sourceLabel); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, "source: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "fuzz_threshold", q, &threshold); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, "fuzz_threshold: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, "limit: "+err.Error())
		return
	}

	payload, err := decodeLocalPayload(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	matchField := payload.MatchField
	if matchField == "" {
		matchField = s.defaultMatchField
	}

	thresholdVal := request.DefaultThreshold
	if threshold != nil {
		thresholdVal = *threshold
	}

	req, err := request.NewLocal(query, thresholdVal, derefInt(limit), matchField)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	candidates := make([]candidate.Candidate, 0, len(payload.Candidates))
	for _, fields := range payload.Candidates {
		c, err := candidate.New(fields)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		candidates = append(candidates, c)
	}

	matches := s.matcher.Match(&req, candidates)

	// The source selector carries no data here (candidates arrive in the
	// payload); it only labels the log line.
	logger.FromContext(r.Context()).Debug("local search",
		zap.String("source", derefStr(sourceLabel)),
		zap.Int("candidates", len(candidates)),
		zap.Int("matches", len(matches)),
	)

	writeJSON(w, http.StatusOK, matchesToResponse(matches))
}

// decodeLocalPayload reads the candidate payload. A missing or empty body is
// a valid empty candidate set, not an error.
func decodeLocalPayload(body io.Reader) (searchLocalPayload, error) {
	var payload searchLocalPayload
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return searchLocalPayload{}, nil
		}
		return searchLocalPayload{}, err
	}
	return payload, nil
}

func matchesToResponse(matches []result.Match) []localResult {
	items := make([]localResult, len(matches))
	for i := range matches {
		c := matches[i].Candidate()
		items[i] = localResult{
			Record: c.Fields(),
			Score:  matches[i].Score(),
			Rank:   matches[i].Rank(),
		}
	}
	return items
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
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

// safeMessage returns a sentinel error message for the client without
// exposing internals.
func safeMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidArgument,
		domain.ErrUnsupportedSource,
		domain.ErrDownstreamUnavailable,
		domain.ErrDownstreamContractViolation,
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

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
