package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"fortuna-data-service/internal/app/fortunes"
	"fortuna-data-service/internal/domain"
	"fortuna-data-service/internal/http/requestutil"
	"fortuna-data-service/internal/logging"
)

// TokenWriter mutates the persisted service credential.
type TokenWriter interface {
	SetToken(ctx context.Context, value string) error
	DeleteToken(ctx context.Context) error
}

// RolloverRunner triggers one janitor pass on demand.
type RolloverRunner interface {
	RunOnce(ctx context.Context)
}

// AdminHandler exposes bearer-gated operational endpoints: forced
// refresh, slot invalidation, error acknowledgement, credential
// management, and a manual rollover pass.
type AdminHandler struct {
	fortunes *fortunes.Service
	tokens   TokenWriter
	rollover RolloverRunner
	token    string
	logger   *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty admin token
// disables every endpoint.
func NewAdminHandler(fortuneSvc *fortunes.Service, tokens TokenWriter, rollover RolloverRunner, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		fortunes: fortuneSvc,
		tokens:   tokens,
		rollover: rollover,
		token:    token,
		logger:   logger,
	}
}

// Refresh forces a fresh fetch for a variant's slot.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, http.MethodPost) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	variant, ok := h.variantParam(w, r, logger)
	if !ok {
		return
	}
	key, err := h.fortunes.Request(r.Context(), variant, true)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
		return
	}
	logging.Info(logger, "admin refresh requested", logging.FieldKey, key.String())
	writeState(w, r, key, h.fortunes.StateOf(key), logger)
}

// Invalidate drops a variant's slot.
func (h *AdminHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, http.MethodPost) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	variant, ok := h.variantParam(w, r, logger)
	if !ok {
		return
	}
	h.fortunes.Invalidate(variant)
	logging.Info(logger, "admin invalidated slot", logging.FieldVariant, string(variant))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
}

// ClearError acknowledges a failed slot.
func (h *AdminHandler) ClearError(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, http.MethodPost) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	variant, ok := h.variantParam(w, r, logger)
	if !ok {
		return
	}
	h.fortunes.ClearError(variant)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
}

// Token stores (POST) or deletes (DELETE) the persisted credential.
func (h *AdminHandler) Token(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.tokens == nil {
		writeError(w, r, http.StatusServiceUnavailable, "token storage not configured", logger)
		return
	}

	switch r.Method {
	case http.MethodPost:
		var body struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Token) == "" {
			writeError(w, r, http.StatusBadRequest, "expected a JSON body with a token field", logger)
			return
		}
		if err := h.tokens.SetToken(r.Context(), body.Token); err != nil {
			logging.Error(logger, "failed to store credential", err)
			writeError(w, r, http.StatusInternalServerError, "failed to store token", logger)
			return
		}
		logging.Info(logger, "credential stored")
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	case http.MethodDelete:
		if err := h.tokens.DeleteToken(r.Context()); err != nil {
			logging.Error(logger, "failed to delete credential", err)
			writeError(w, r, http.StatusInternalServerError, "failed to delete token", logger)
			return
		}
		logging.Info(logger, "credential deleted")
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	default:
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", logger)
	}
}

// Rollover runs one janitor pass immediately.
func (h *AdminHandler) Rollover(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, http.MethodPost) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.rollover == nil {
		writeError(w, r, http.StatusServiceUnavailable, "janitor not configured", logger)
		return
	}
	h.rollover.RunOnce(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
}

func (h *AdminHandler) gate(w http.ResponseWriter, r *http.Request, method string) bool {
	if !requireMethod(w, r, method, h.logger) {
		return false
	}
	return h.authorize(w, r)
}

func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	if h.token != "" && r.Header.Get("Authorization") == "Bearer "+h.token {
		return true
	}
	logging.Warn(h.logger, "admin unauthorized",
		slog.String(logging.FieldPath, r.URL.Path),
		slog.String("client_ip", requestutil.ClientIP(r)),
	)
	writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
	return false
}

func (h *AdminHandler) variantParam(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (domain.Variant, bool) {
	variant := domain.Variant(r.URL.Query().Get("variant"))
	if variant == "" {
		variant = domain.VariantToday
	}
	if !variant.Valid() {
		writeError(w, r, http.StatusBadRequest, "invalid variant (today or tomorrow)", logger)
		return "", false
	}
	return variant, true
}
