package handlers

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/preston-bernstein/nba-tonight/internal/app/view"
	"github.com/preston-bernstein/nba-tonight/internal/logging"
	"github.com/preston-bernstein/nba-tonight/internal/poller"
	"github.com/preston-bernstein/nba-tonight/internal/teamgames"
)

// ViewSource exposes the latest published view.
type ViewSource interface {
	Latest() (view.View, bool)
}

// Handler serves the assembled view to the page renderer.
type Handler struct {
	views    ViewSource
	logger   *slog.Logger
	statusFn func() poller.Status
}

// TodayResponse is the slice of the view about today's national games.
type TodayResponse struct {
	Date        string           `json:"date"`
	DateKey     string           `json:"dateKey"`
	Available   bool             `json:"available"`
	Message     string           `json:"message,omitempty"`
	Today       []view.TodayGame `json:"today"`
	GeneratedAt time.Time        `json:"generatedAt"`
}

// TeamResponse is the slice of the view about the target team.
type TeamResponse struct {
	TeamID      int64               `json:"teamId"`
	Available   bool                `json:"available"`
	Message     string              `json:"message,omitempty"`
	Last        []view.PastGame     `json:"last"`
	LastMessage string              `json:"lastMessage,omitempty"`
	Next        []view.UpcomingGame `json:"next"`
	NextMessage string              `json:"nextMessage,omitempty"`
	Record      *teamgames.Record   `json:"record"`
	GeneratedAt time.Time           `json:"generatedAt"`
}

// NewHandler constructs a Handler.
func NewHandler(views ViewSource, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		views:    views,
		logger:   logger,
		statusFn: statusFn,
	}
}

// ServeHTTP routes requests for callers that mount the handler directly.
func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.URL.Path {
	case "/health":
		h.Health(w, r)
	case "/ready":
		h.Ready(w, r)
	case "/view":
		h.View(w, r)
	case "/view/today":
		h.Today(w, r)
	case "/view/team":
		h.Team(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// View returns the full assembled view.
func (h *Handler) View(w nethttp.ResponseWriter, r *nethttp.Request) {
	v, ok := h.latest(w, r)
	if !ok {
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "served view",
		slog.String(logging.FieldDate, v.DateKey),
		slog.Bool("available", v.Available),
	)
	writeJSON(w, nethttp.StatusOK, v, h.logger)
}

// Today returns today's national games.
func (h *Handler) Today(w nethttp.ResponseWriter, r *nethttp.Request) {
	v, ok := h.latest(w, r)
	if !ok {
		return
	}
	writeJSON(w, nethttp.StatusOK, TodayResponse{
		Date:        v.Date,
		DateKey:     v.DateKey,
		Available:   v.Available,
		Message:     v.Message,
		Today:       v.Today,
		GeneratedAt: v.GeneratedAt,
	}, h.logger)
}

// Team returns the target team's windows and record.
func (h *Handler) Team(w nethttp.ResponseWriter, r *nethttp.Request) {
	v, ok := h.latest(w, r)
	if !ok {
		return
	}
	resp := TeamResponse{
		TeamID:      v.TeamID,
		Available:   v.Available,
		Last:        v.Last,
		LastMessage: v.LastMessage,
		Next:        v.Next,
		NextMessage: v.NextMessage,
		Record:      v.Record,
		GeneratedAt: v.GeneratedAt,
	}
	if !v.Available {
		resp.Message = v.Message
	}
	writeJSON(w, nethttp.StatusOK, resp, h.logger)
}

func (h *Handler) latest(w nethttp.ResponseWriter, r *nethttp.Request) (view.View, bool) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return view.View{}, false
	}
	if h.views == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "view not ready", h.logger)
		return view.View{}, false
	}
	v, ok := h.views.Latest()
	if !ok {
		writeError(w, r, nethttp.StatusServiceUnavailable, "view not ready", h.logger)
		return view.View{}, false
	}
	return v, true
}
