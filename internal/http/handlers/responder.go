package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"fortuna-data-service/internal/domain"
	"fortuna-data-service/internal/fortune"
	"fortuna-data-service/internal/http/middleware"
	"fortuna-data-service/internal/logging"
	"fortuna-data-service/internal/providers"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string, logger *slog.Logger) bool {
	if r.Method != method {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", logger)
		return false
	}
	return true
}

// stateResponse is the wire form of one cache slot's state.
type stateResponse struct {
	Date    string          `json:"date"`
	Variant domain.Variant  `json:"variant"`
	Status  fortune.Status  `json:"status"`
	Fortune *domain.Fortune `json:"fortune,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func stateBody(key domain.FortuneKey, state fortune.State) stateResponse {
	body := stateResponse{
		Date:    key.Date,
		Variant: key.Variant,
		Status:  state.Status,
		Fortune: state.Fortune,
	}
	if state.Err != nil {
		body.Error = state.Err.Error()
	}
	return body
}

// statusForError maps the provider error taxonomy onto HTTP statuses.
// Malformed payloads are our defect to fix, so they read as 500 rather
// than blaming the upstream.
func statusForError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case isAuthError(err):
		return http.StatusUnauthorized
	case isNotFound(err):
		return http.StatusNotFound
	case isMalformed(err):
		return http.StatusInternalServerError
	case isTransport(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func isAuthError(err error) bool {
	if _, ok := providers.AsAuthRequiredError(err); ok {
		return true
	}
	_, ok := providers.AsUnauthorizedError(err)
	return ok
}

func isNotFound(err error) bool {
	_, ok := providers.AsNotFoundError(err)
	return ok
}

func isMalformed(err error) bool {
	_, ok := providers.AsMalformedResponseError(err)
	return ok
}

func isTransport(err error) bool {
	_, ok := providers.AsTransportError(err)
	return ok
}

// writeState renders a slot state: ready data is 200, an in-progress or
// untouched slot is 202, and a failure maps through the taxonomy.
func writeState(w http.ResponseWriter, r *http.Request, key domain.FortuneKey, state fortune.State, logger *slog.Logger) {
	switch state.Status {
	case fortune.StatusSuccess:
		writeJSON(w, http.StatusOK, stateBody(key, state), logger)
	case fortune.StatusFailed:
		writeJSON(w, statusForError(state.Err), stateBody(key, state), logger)
	default:
		writeJSON(w, http.StatusAccepted, stateBody(key, state), logger)
	}
}
