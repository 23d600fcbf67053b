// Package httpapi is the chi HTTP transport. It translates requests into
// usecase calls and domain sentinel errors into status codes; it holds no
// business rules of its own.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/biblespeak/versefinder/internal/domain"
	"github.com/biblespeak/versefinder/internal/repository/bookmarks"
	"github.com/biblespeak/versefinder/internal/repository/topics"
	healthuc "github.com/biblespeak/versefinder/internal/usecase/health"
	searchuc "github.com/biblespeak/versefinder/internal/usecase/search"
	trendinguc "github.com/biblespeak/versefinder/internal/usecase/trending"
)

// Error response codes.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeInternalError    = "internal_error"
)

// Server implements the HTTP API.
type Server struct {
	sessions  *searchuc.Registry
	trending  *trendinguc.Service
	topics    *topics.Store
	bookmarks *bookmarks.Store
	health    *healthuc.Service
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	sessions *searchuc.Registry,
	trending *trendinguc.Service,
	topics *topics.Store,
	bookmarks *bookmarks.Store,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		sessions:  sessions,
		trending:  trending,
		topics:    topics,
		bookmarks: bookmarks,
		health:    health,
		logger:    logger,
	}
}

// RegisterRoutes mounts all API routes on the router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Post("/search", s.StartSearch)
			r.Post("/search/cancel", s.CancelSearch)
			r.Get("/state", s.SearchState)
			r.Put("/language", s.SetLanguage)
		})
		r.Get("/trending", s.Trending)
		r.Get("/topics", s.ListTopics)
		r.Delete("/topics", s.DeleteTopic)
		r.Get("/bookmarks", s.ListBookmarks)
		r.Post("/bookmarks/toggle", s.ToggleBookmark)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type searchRequest struct {
	Query    string `json:"query"`
	Language string `json:"language"`
}

// StartSearch handles POST /api/v1/sessions/{sessionID}/search. The search
// runs asynchronously; the response carries the immediate loading state and
// clients poll /state for the outcome.
func (s *Server) StartSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	lang, err := domain.ParseLanguage(req.Language)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	session := s.sessions.Get(sessionID(r))
	if err := session.StartSearch(req.Query, lang); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, stateToResponse(session.Snapshot()))
}

// CancelSearch handles POST /api/v1/sessions/{sessionID}/search/cancel.
func (s *Server) CancelSearch(w http.ResponseWriter, r *http.Request) {
	s.sessions.Get(sessionID(r)).Cancel()
	w.WriteHeader(http.StatusNoContent)
}

// SearchState handles GET /api/v1/sessions/{sessionID}/state.
func (s *Server) SearchState(w http.ResponseWriter, r *http.Request) {
	snap := s.sessions.Get(sessionID(r)).Snapshot()
	writeJSON(w, http.StatusOK, stateToResponse(snap))
}

type languageRequest struct {
	Language string `json:"language"`
}

type languageResponse struct {
	Language string `json:"language"`
	Replayed bool   `json:"replayed"`
}

// SetLanguage handles PUT /api/v1/sessions/{sessionID}/language.
func (s *Server) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	lang, err := domain.ParseLanguage(req.Language)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	replayed, err := s.sessions.Get(sessionID(r)).SetLanguage(lang)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, languageResponse{Language: string(lang), Replayed: replayed})
}

// Trending handles GET /api/v1/trending.
func (s *Server) Trending(w http.ResponseWriter, r *http.Request) {
	lang, err := langParam(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	prompts := s.trending.Prompts(r.Context(), lang)
	if prompts == nil {
		prompts = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"prompts": prompts})
}

// ListTopics handles GET /api/v1/topics.
func (s *Server) ListTopics(w http.ResponseWriter, r *http.Request) {
	lang, err := langParam(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	list := s.topics.List(r.Context(), lang)
	if list == nil {
		list = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"topics": list})
}

// DeleteTopic handles DELETE /api/v1/topics.
func (s *Server) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	lang, err := langParam(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	topic := r.URL.Query().Get("topic")
	if topic == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "topic is required")
		return
	}

	s.topics.Remove(r.Context(), lang, topic)
	w.WriteHeader(http.StatusNoContent)
}

// ListBookmarks handles GET /api/v1/bookmarks.
func (s *Server) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	lang, err := langParam(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	list := s.bookmarks.List(r.Context(), lang)
	writeJSON(w, http.StatusOK, map[string]any{"bookmarks": resultsToResponse(list)})
}

type toggleResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

// ToggleBookmark handles POST /api/v1/bookmarks/toggle. The body is the full
// verse result so a bookmark stays readable after the search that produced
// it is gone.
func (s *Server) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	lang, err := langParam(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	var result domain.GroupedVerseResult
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if result.Reference == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "reference is required")
		return
	}
	if result.ID == "" {
		result.ID = domain.DeriveID(result.Reference)
	}

	bookmarked := s.bookmarks.Toggle(r.Context(), lang, result)
	writeJSON(w, http.StatusOK, toggleResponse{Bookmarked: bookmarked})
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

func sessionID(r *http.Request) string {
	return chi.URLParam(r, "sessionID")
}

func langParam(r *http.Request) (domain.Language, error) {
	return domain.ParseLanguage(r.URL.Query().Get("lang"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuery,
		domain.ErrUnknownLanguage,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, codeValidationFailed, msg)
	case errors.Is(err, domain.ErrUnknownLanguage):
		writeError(w, http.StatusBadRequest, codeValidationFailed, msg)
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
