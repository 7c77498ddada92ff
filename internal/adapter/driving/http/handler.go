// Package httphandler is the HTTP driving adapter serving the status API.
package httphandler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/lgtmeme/internal/application"
)

// Handler serves the small operational JSON API: liveness and the summary of
// the most recent polling cycle.
type Handler struct {
	svc    *application.CelebrationService
	logger *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(svc *application.CelebrationService, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/status", h.Status)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// Health returns a liveness response.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// Status returns the summary of the most recent completed polling cycle.
// Before the first cycle completes it responds 200 with ran=false, so the
// endpoint is safe to probe immediately after startup.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.svc.LastCycle()
	if !ok {
		writeJSON(w, http.StatusOK, StatusResponse{Ran: false})
		return
	}

	writeJSON(w, http.StatusOK, toStatusResponse(summary))
}
