package addresshandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/groundfi/address-registry/api"
	"github.com/groundfi/address-registry/interfaces"
	"github.com/groundfi/address-registry/metrics"
)

// Handler serves address lookups from an AddressDirectory.
// The directory is read-only, so a Handler is safe for concurrent use.
type Handler struct {
	dir     interfaces.AddressDirectory
	metrics *metrics.MetricsServer
	log     *slog.Logger
}

// NewHandler creates a lookup handler over dir. m may be nil, in which case
// lookups are not counted.
func NewHandler(dir interfaces.AddressDirectory, m *metrics.MetricsServer, log *slog.Logger) *Handler {
	return &Handler{
		dir:     dir,
		metrics: m,
		log:     log,
	}
}

// RegisterRoutes configures the router with the lookup endpoints:
//   - GET /api/v1/environments
//   - GET /api/v1/addresses/{environment}
//   - GET /api/v1/addresses/{environment}/{name}
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/v1/environments", h.HandleEnvironments)
	r.Get("/api/v1/addresses/{environment}", h.HandleBook)
	r.Get("/api/v1/addresses/{environment}/{name}", h.HandleLookup)
}

// HandleEnvironments lists every served environment with its fingerprint.
//
// Response: JSON-encoded api.EnvironmentsResponse
func (h *Handler) HandleEnvironments(w http.ResponseWriter, r *http.Request) {
	envs := h.dir.Environments()
	response := api.EnvironmentsResponse{
		Environments: make([]api.EnvironmentSummary, 0, len(envs)),
	}

	for _, env := range envs {
		book, err := h.dir.Book(env)
		if err != nil {
			h.log.Error("Failed to get address book", "err", err, "environment", env.String())
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		response.Environments = append(response.Environments, api.EnvironmentSummary{
			Environment: env,
			Fingerprint: book.Fingerprint().String(),
			Records:     len(book.Records()),
		})
	}

	h.writeJSON(w, response)
}

// HandleBook returns all records of one environment.
//
// URL format: GET /api/v1/addresses/{environment}
//
// Response: JSON-encoded api.BookResponse
//
// Status codes:
//   - 200 OK: book found
//   - 404 Not Found: environment is not served
func (h *Handler) HandleBook(w http.ResponseWriter, r *http.Request) {
	book, ok := h.book(w, r)
	if !ok {
		return
	}

	h.writeJSON(w, api.NewBookResponse(book))
}

// HandleLookup resolves one name in one environment.
//
// URL format: GET /api/v1/addresses/{environment}/{name}
//
// Response: JSON-encoded api.AddressResponse
//
// Status codes:
//   - 200 OK: name resolved
//   - 404 Not Found: environment not served, or name not defined in it
func (h *Handler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	book, ok := h.book(w, r)
	if !ok {
		return
	}

	name := interfaces.Name(r.PathValue("name"))
	record, err := book.Lookup(name)
	if errors.Is(err, interfaces.ErrUnknownName) {
		h.metrics.ObserveLookup(book.Environment().String(), metrics.ResultUnknownName)
		h.log.Debug("Unknown name", "environment", book.Environment().String(), "name", name)
		http.Error(w, fmt.Sprintf("%s: %s", interfaces.ErrUnknownName, name), http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("Failed to look up address", "err", err, "environment", book.Environment().String(), "name", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.metrics.ObserveLookup(book.Environment().String(), metrics.ResultFound)
	h.writeJSON(w, api.NewAddressResponse(book.Environment(), record))
}

// book resolves the {environment} path segment. It writes the error
// response itself and reports false when the request is finished.
func (h *Handler) book(w http.ResponseWriter, r *http.Request) (interfaces.AddressBook, bool) {
	raw := r.PathValue("environment")

	env, err := interfaces.NewEnvironment(raw)
	if err == nil {
		var book interfaces.AddressBook
		book, err = h.dir.Book(env)
		if err == nil {
			return book, true
		}
	}

	if errors.Is(err, interfaces.ErrUnknownEnvironment) {
		h.metrics.ObserveLookup("unknown", metrics.ResultUnknownEnvironment)
		http.Error(w, fmt.Sprintf("%s: %s", interfaces.ErrUnknownEnvironment, raw), http.StatusNotFound)
		return nil, false
	}

	h.log.Error("Failed to get address book", "err", err, "environment", raw)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
	return nil, false
}

func (h *Handler) writeJSON(w http.ResponseWriter, response any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("Failed to encode response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
