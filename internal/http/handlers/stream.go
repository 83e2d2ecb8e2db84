package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"fortuna-data-service/internal/domain"
	"fortuna-data-service/internal/fortune"
	"fortuna-data-service/internal/logging"
)

// Watch streams a slot's state transitions as server-sent events until
// the client disconnects. The current state is sent first, mirroring the
// store's subscribe-replay contract.
func (h *Handler) Watch(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	variant := domain.Variant(r.URL.Query().Get("variant"))
	if variant == "" {
		variant = domain.VariantToday
	}
	if !variant.Valid() {
		writeError(w, r, http.StatusBadRequest, "invalid variant (today or tomorrow)", logger)
		return
	}
	key, ok := h.resolveKey(w, r, variant)
	if !ok {
		return
	}

	flusher, canFlush := w.(http.Flusher)
	if !canFlush {
		writeError(w, r, http.StatusInternalServerError, "streaming unsupported", logger)
		return
	}

	// A slow client drops intermediate states rather than blocking the
	// store's delivery loop; the terminal state still arrives because
	// the buffer is drained between transitions.
	states := make(chan fortune.State, 16)
	sub := h.fortunes.WatchKey(key, func(_ domain.FortuneKey, state fortune.State) {
		select {
		case states <- state:
		default:
		}
	})
	defer sub.Cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	logging.Info(logger, "fortune watch opened", logging.FieldKey, key.String())
	for {
		select {
		case <-r.Context().Done():
			logging.Info(logger, "fortune watch closed", logging.FieldKey, key.String())
			return
		case state := <-states:
			payload, err := json.Marshal(stateBody(key, state))
			if err != nil {
				logging.Error(logger, "failed to encode watch event", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
