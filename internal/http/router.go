package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/nba-tonight/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/view", handler.View)
	mux.HandleFunc("/view/today", handler.Today)
	mux.HandleFunc("/view/team", handler.Team)
	if admin != nil {
		mux.HandleFunc("/admin/refresh", admin.Refresh)
	}
	return mux
}
