package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/lgtmeme/internal/application"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// StatusResponse is the JSON representation of the last polling cycle.
type StatusResponse struct {
	Ran        bool   `json:"ran"`
	StartedAt  string `json:"started_at,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`
	Repos      int    `json:"repos"`
	Candidates int    `json:"candidates"`
	Approved   int    `json:"approved"`
	Posted     int    `json:"posted"`
	Errors     int    `json:"errors"`
}

// toStatusResponse converts a cycle summary to its JSON representation.
func toStatusResponse(s application.CycleSummary) StatusResponse {
	return StatusResponse{
		Ran:        true,
		StartedAt:  s.StartedAt.UTC().Format(time.RFC3339),
		DurationMS: s.Duration.Milliseconds(),
		Repos:      s.Repos,
		Candidates: s.Candidates,
		Approved:   s.Approved,
		Posted:     s.Posted,
		Errors:     s.Errors,
	}
}
