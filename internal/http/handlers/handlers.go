package handlers

import (
	"log/slog"
	"net/http"

	"fortuna-data-service/internal/app/fortunes"
	"fortuna-data-service/internal/app/images"
	"fortuna-data-service/internal/app/profile"
	"fortuna-data-service/internal/domain"
	"fortuna-data-service/internal/fortune"
	"fortuna-data-service/internal/http/requestutil"
	"fortuna-data-service/internal/timeutil"
)

// Handler wires HTTP routes to the app services.
type Handler struct {
	fortunes *fortunes.Service
	profiles *profile.Service
	images   *images.Service
	logger   *slog.Logger

	// readyFn reports readiness; nil means always ready.
	readyFn func() error
}

// NewHandler constructs a Handler.
func NewHandler(fortuneSvc *fortunes.Service, profileSvc *profile.Service, imageSvc *images.Service, logger *slog.Logger, readyFn func() error) *Handler {
	return &Handler{
		fortunes: fortuneSvc,
		profiles: profileSvc,
		images:   imageSvc,
		logger:   logger,
		readyFn:  readyFn,
	}
}

// Health reports process liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if h.readyFn != nil {
		if err := h.readyFn(); err != nil {
			writeError(w, r, http.StatusServiceUnavailable, err.Error(), h.logger)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// FortuneToday serves the today reading.
func (h *Handler) FortuneToday(w http.ResponseWriter, r *http.Request) {
	h.serveFortune(w, r, domain.VariantToday)
}

// FortuneTomorrow serves the tomorrow reading.
func (h *Handler) FortuneTomorrow(w http.ResponseWriter, r *http.Request) {
	h.serveFortune(w, r, domain.VariantTomorrow)
}

// serveFortune triggers a request for the variant's slot and renders its
// current state. A Loading answer (202) means a fetch is underway; the
// client polls or watches the SSE stream for the terminal state.
func (h *Handler) serveFortune(w http.ResponseWriter, r *http.Request, variant domain.Variant) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	key, ok := h.resolveKey(w, r, variant)
	if !ok {
		return
	}
	force := requestutil.BoolParam(r.URL.Query().Get("refresh"))

	// A failed slot stays failed until the caller opts into a retry:
	// fetches are never retried implicitly.
	if state := h.fortunes.StateOf(key); state.Status == fortune.StatusFailed && !force {
		writeState(w, r, key, state, logger)
		return
	}

	if err := h.fortunes.RequestKey(r.Context(), key, force); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
		return
	}
	writeState(w, r, key, h.fortunes.StateOf(key), logger)
}

// Profile serves the user's stored birth saju.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	p, err := h.profiles.Get(r.Context())
	if err != nil {
		writeError(w, r, statusForError(err), err.Error(), logger)
		return
	}
	writeJSON(w, http.StatusOK, p, logger)
}

// Images serves the date's chakra image grid.
func (h *Handler) Images(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.fortunes.KeyFor(domain.VariantToday).Date
	} else if _, err := timeutil.ParseDate(date); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", logger)
		return
	}

	grid, err := h.images.Grid(r.Context(), date)
	if err != nil {
		writeError(w, r, statusForError(err), err.Error(), logger)
		return
	}
	writeJSON(w, http.StatusOK, grid, logger)
}

// resolveKey builds the cache key for a variant, honoring an explicit
// ?date= override.
func (h *Handler) resolveKey(w http.ResponseWriter, r *http.Request, variant domain.Variant) (domain.FortuneKey, bool) {
	key := h.fortunes.KeyFor(variant)
	if date := r.URL.Query().Get("date"); date != "" {
		if _, err := timeutil.ParseDate(date); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", h.logger)
			return domain.FortuneKey{}, false
		}
		key.Date = date
	}
	return key, true
}
