package handler

import (
	"encoding/json"
	"net/http"

	"sampleroom-api/internal/middleware"
	"sampleroom-api/internal/service"
	"sampleroom-api/pkg/apierror"
	"sampleroom-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// TeamHandler handles team HTTP requests.
type TeamHandler struct {
	teams *service.TeamService
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(teams *service.TeamService) *TeamHandler {
	return &TeamHandler{teams: teams}
}

// Create handles POST /api/v1/teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateTeamInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	team, err := h.teams.Create(r.Context(), middleware.GetActor(r.Context()), input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Created(w, team)
}

// Get handles GET /api/v1/teams/{id}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	team, err := h.teams.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, team)
}

// List handles GET /api/v1/teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, teams)
}

// Delete handles DELETE /api/v1/teams/{id}
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.teams.Delete(r.Context(), middleware.GetActor(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}
