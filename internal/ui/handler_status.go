package ui

import "net/http"

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	stats := h.Tracker.Snapshot()
	h.writeJSON(w, http.StatusOK, envelope{Success: true, Data: stats})
}

func (h *Handler) getHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.MySQL.Ping(); err != nil {
		h.Logger.Error(r.Context(), "Database not connected: %v", err)
		h.writeError(w, http.StatusServiceUnavailable, "Database not connected")
		return
	}

	h.writeJSON(w, http.StatusOK, envelope{Success: true, Message: "ok"})
}
