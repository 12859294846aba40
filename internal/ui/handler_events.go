package ui

import (
	"net/http"
	"strconv"
)

// eventsPage is the paged response shape for the events route
type eventsPage struct {
	Events     interface{} `json:"events"`
	TotalCount int64       `json:"totalCount"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
}

func (h *Handler) getEvents(w http.ResponseWriter, r *http.Request) {
	org := r.PathValue("org")
	repo := r.PathValue("repo")
	if org == "" || repo == "" {
		h.writeError(w, http.StatusBadRequest, "Repo and org are required")
		return
	}

	// Parse query parameters
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}

	offset := (page - 1) * pageSize
	events, total, err := h.EventMd.FindByOrgRepo(org, repo, offset, pageSize)
	if err != nil {
		h.Logger.Error(r.Context(), "Failed to fetch events: %v", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	h.writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Events fetched successfully",
		Data: eventsPage{
			Events:     events,
			TotalCount: total,
			Page:       page,
			PageSize:   pageSize,
		},
	})
}
