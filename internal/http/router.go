package http

import (
	nethttp "net/http"

	"fortuna-data-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. A nil admin handler
// leaves the admin surface unregistered.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/fortune/today", handler.FortuneToday)
	mux.HandleFunc("/fortune/tomorrow", handler.FortuneTomorrow)
	mux.HandleFunc("/fortune/watch", handler.Watch)
	mux.HandleFunc("/profile", handler.Profile)
	mux.HandleFunc("/images", handler.Images)
	if admin != nil {
		mux.HandleFunc("/admin/refresh", admin.Refresh)
		mux.HandleFunc("/admin/invalidate", admin.Invalidate)
		mux.HandleFunc("/admin/error/clear", admin.ClearError)
		mux.HandleFunc("/admin/token", admin.Token)
		mux.HandleFunc("/admin/rollover", admin.Rollover)
	}
	return mux
}
