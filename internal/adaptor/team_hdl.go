package adaptor

import (
	"net/http"

	"audioathlete/internal/dto/request"
	"audioathlete/internal/usecase"
	"audioathlete/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const msgInvalidTeamID = "Invalid team ID."

type TeamHandler struct {
	service usecase.TeamService
	log     *zap.Logger
}

func NewTeamHandler(service usecase.TeamService, log *zap.Logger) *TeamHandler {
	return &TeamHandler{
		service: service,
		log:     log.With(zap.String("handler", "team")),
	}
}

// GetTeams handles GET /api/teams
func (h *TeamHandler) GetTeams(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.NewPaginatedRequest(
		utils.ParseInt(query.Get("page"), 1),
		utils.ParseInt(query.Get("per_page"), usecase.DefaultTeamsPerPage),
		usecase.DefaultTeamsPerPage,
	)

	teams, err := h.service.GetAllTeams(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "get teams")
		return
	}

	utils.ResponseSuccess(w, teams)
}

// GetTeam handles GET /api/teams/{id}
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, msgInvalidTeamID, nil)
		return
	}

	team, err := h.service.GetTeam(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get team")
		return
	}

	utils.ResponseSuccess(w, team)
}

// CreateTeam handles POST /api/teams
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTeamRequest

	if err := decodeBody(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	resp, err := h.service.CreateTeam(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create team")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// DeleteTeam handles DELETE /api/teams/{id}
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, msgInvalidTeamID, nil)
		return
	}

	if err := h.service.DeleteTeam(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete team")
		return
	}

	utils.ResponseMessage(w, "Team deleted successfully!")
}

func (h *TeamHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation, http.StatusBadRequest)
}
