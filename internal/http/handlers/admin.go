package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nba-tonight/internal/http/requestutil"
	"github.com/preston-bernstein/nba-tonight/internal/logging"
)

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	refresh func(context.Context)
	views   ViewSource
	token   string
	logger  *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token disables the endpoints.
func NewAdminHandler(refresh func(context.Context), views ViewSource, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresh: refresh,
		views:   views,
		token:   token,
		logger:  logger,
	}
}

// Refresh rebuilds the view immediately instead of waiting for the next poll.
// Guarded by a bearer token; returns 401 if missing or invalid.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.refresh == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	h.refresh(r.Context())

	resp := map[string]any{"status": "ok"}
	if h.views != nil {
		if v, ok := h.views.Latest(); ok {
			resp["dateKey"] = v.DateKey
			resp["available"] = v.Available
		}
	}
	writeJSON(w, http.StatusOK, resp, logger)
	logging.Info(logger, "admin refresh complete")
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	want := []byte("Bearer " + h.token)
	got := []byte(r.Header.Get("Authorization"))
	return subtle.ConstantTimeCompare(want, got) == 1
}
