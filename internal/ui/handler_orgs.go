package ui

import "net/http"

func (h *Handler) getOrgs(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.EventMd.DistinctOrgs()
	if err != nil {
		h.Logger.Error(r.Context(), "Failed to fetch organizations: %v", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch organizations")
		return
	}

	if len(orgs) == 0 {
		h.writeError(w, http.StatusNotFound, "No organizations found")
		return
	}

	h.writeJSON(w, http.StatusOK, envelope{Success: true, Data: orgs})
}

func (h *Handler) getOrgRepos(w http.ResponseWriter, r *http.Request) {
	org := r.PathValue("org")
	if org == "" {
		h.writeError(w, http.StatusBadRequest, "Org is required")
		return
	}

	repos, err := h.EventMd.DistinctRepos(org)
	if err != nil {
		h.Logger.Error(r.Context(), "Failed to fetch repositories: %v", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch repositories")
		return
	}

	if len(repos) == 0 {
		h.writeError(w, http.StatusNotFound, "No repositories found for this organization")
		return
	}

	h.writeJSON(w, http.StatusOK, envelope{Success: true, Data: repos})
}
