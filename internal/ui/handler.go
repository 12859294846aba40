package ui

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/thep200/github-event-tracker/cfg"
	"github.com/thep200/github-event-tracker/internal/model"
	"github.com/thep200/github-event-tracker/internal/tracker"
	"github.com/thep200/github-event-tracker/pkg/db"
	"github.com/thep200/github-event-tracker/pkg/log"
)

// Handler manages HTTP requests for the read-only API
type Handler struct {
	Logger  log.Logger
	Config  *cfg.Config
	MySQL   *db.Mysql
	EventMd *model.Event
	Tracker *tracker.Tracker
}

// NewHandler creates a new API handler
func NewHandler(logger log.Logger, config *cfg.Config, mysql *db.Mysql, tracker *tracker.Tracker) (*Handler, error) {
	eventMd, err := model.NewEvent(config, logger, mysql)
	if err != nil {
		return nil, err
	}

	return &Handler{
		Logger:  logger,
		Config:  config,
		MySQL:   mysql,
		EventMd: eventMd,
		Tracker: tracker,
	}, nil
}

// RegisterRoutes sets up the HTTP routes for the API
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/events/{org}/{repo}", h.getEvents)
	mux.HandleFunc("GET /api/orgs", h.getOrgs)
	mux.HandleFunc("GET /api/orgs/{org}/repos", h.getOrgRepos)
	mux.HandleFunc("GET /api/status", h.getStatus)
	mux.HandleFunc("GET /healthz", h.getHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
}

// envelope is the JSON response wrapper used by every API route
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Error(context.Background(), "Failed to encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, envelope{Success: false, Message: message})
}
