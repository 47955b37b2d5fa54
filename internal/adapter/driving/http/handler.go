// Package httphandler is the HTTP driving adapter serving the REST API.
// Every resource kind gets the identical route set; the per-kind
// differences (filter params, service) are wired at registration.
package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ericfisherdev/corehub/internal/application"
	"github.com/ericfisherdev/corehub/internal/domain/model"
	"github.com/ericfisherdev/corehub/internal/domain/query"
)

// Services bundles the four resource services for route registration.
type Services struct {
	ConfigRules  *application.ResourceService[model.ConfigRule]
	Integrations *application.ResourceService[model.Integration]
	Recommenders *application.ResourceService[model.Recommender]
	Feedback     *application.ResourceService[model.Feedback]
}

// NewServeMux creates an http.Handler with all routes registered and
// wrapped with metrics, logging, and recovery middleware.
func NewServeMux(svcs Services, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	registerResource(mux, "/api/v1/config-rules", svcs.ConfigRules, parseCommonFilter, logger)
	registerResource(mux, "/api/v1/integrations", svcs.Integrations, parseIntegrationFilter, logger)
	registerResource(mux, "/api/v1/recommenders", svcs.Recommenders, parseCommonFilter, logger)
	registerResource(mux, "/api/v1/feedback", svcs.Feedback, parseFeedbackFilter, logger)

	mux.HandleFunc("GET /api/v1/health", handleHealth)
	mux.Handle("GET /metrics", metricsHandler())

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)
	wrapped = metricsMiddleware(wrapped)

	return wrapped
}

// filterParser builds a kind's list filter from its query parameters.
type filterParser func(url.Values) (query.Filter, error)

// resourceHandler serves one resource kind's routes.
type resourceHandler[T any] struct {
	svc    *application.ResourceService[T]
	filter filterParser
	logger *slog.Logger
}

func registerResource[T any](mux *http.ServeMux, base string, svc *application.ResourceService[T], filter filterParser, logger *slog.Logger) {
	h := &resourceHandler[T]{svc: svc, filter: filter, logger: logger}

	mux.HandleFunc("POST "+base, h.Create)
	mux.HandleFunc("GET "+base, h.List)
	mux.HandleFunc("GET "+base+"/search", h.Search)
	mux.HandleFunc("GET "+base+"/{id}", h.Get)
	mux.HandleFunc("PUT "+base+"/{id}", h.Update)
	mux.HandleFunc("DELETE "+base+"/{id}", h.Delete)
}

// Create handles POST {base}.
func (h *resourceHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	e := new(T)
	if err := json.NewDecoder(r.Body).Decode(e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), e)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Get handles GET {base}/{id}.
func (h *resourceHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if e == nil {
		writeError(w, http.StatusNotFound, h.svc.Kind()+" not found")
		return
	}

	writeJSON(w, http.StatusOK, e)
}

// List handles GET {base} with page, size, sort, and per-kind filter params.
func (h *resourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	f, err := h.filter(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sort, err := parseSort(params.Get("sort"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.svc.Filter(r.Context(), f, parsePageRequest(params), sort)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Search handles GET {base}/search?query&page&size.
func (h *resourceHandler[T]) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	page, err := h.svc.Search(r.Context(), params.Get("query"), parsePageRequest(params))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Update handles PUT {base}/{id}.
func (h *resourceHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	e := new(T)
	if err := json.NewDecoder(r.Body).Decode(e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.Update(r.Context(), id, e)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE {base}/{id}.
func (h *resourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// parseID extracts the {id} path value, writing a 400 on garbage input.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
