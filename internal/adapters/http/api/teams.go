package api

import (
	"net/http"
)

// TeamsHandler serves the team palette.
type TeamsHandler struct {
	deps Dependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps Dependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

type teamEntry struct {
	Team  string `json:"team"`
	Color string `json:"color"`
}

// HandleGetTeams handles GET /api/v1/teams requests.
func (h *TeamsHandler) HandleGetTeams(w http.ResponseWriter, _ *http.Request) {
	palette := h.deps.Palette()
	names := palette.Teams()
	out := make([]teamEntry, len(names))
	for i, name := range names {
		out[i] = teamEntry{Team: name, Color: palette.ColorOr(name)}
	}
	writeJSON(w, http.StatusOK, out)
}
