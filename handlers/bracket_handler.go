package handlers

import (
	"net/http"

	"github.com/courtside/league-system/engine"
	"github.com/courtside/league-system/models"
	"github.com/courtside/league-system/services"
	"github.com/go-chi/chi/v5"
)

type BracketHandler struct {
	bracketService services.BracketService
	matchService   services.MatchService
}

func NewBracketHandler(bracketService services.BracketService, matchService services.MatchService) *BracketHandler {
	return &BracketHandler{
		bracketService: bracketService,
		matchService:   matchService,
	}
}

// GenerateBracket handles POST /tournaments/{tournamentID}/bracket.
func (h *BracketHandler) GenerateBracket(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var params services.GenerateBracketParams
	if err := readJSON(w, r, &params); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bracket, err := h.bracketService.GenerateBracket(r.Context(), tournamentID, params)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"bracket": bracket}, nil)
}

// GetBracket handles GET /tournaments/{tournamentID}/bracket.
func (h *BracketHandler) GetBracket(w http.ResponseWriter, r *http.Request) {
	bracket, ok := h.loadBracket(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil)
}

// DeleteBracket handles DELETE /tournaments/{tournamentID}/bracket.
func (h *BracketHandler) DeleteBracket(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.bracketService.DeleteBracket(r.Context(), tournamentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"message": "bracket deleted"}, nil)
}

// GetOverview handles GET /tournaments/{tournamentID}/overview.
func (h *BracketHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	overview, err := h.bracketService.GetOverview(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"overview": overview}, nil)
}

// StartMatch handles POST /tournaments/{tournamentID}/matches/{nodeID}/start.
func (h *BracketHandler) StartMatch(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	nodeID := chi.URLParam(r, "nodeID")

	bracket, err := h.matchService.StartMatch(r.Context(), tournamentID, nodeID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil)
}

// SubmitResult handles POST /tournaments/{tournamentID}/matches/{nodeID}/result.
func (h *BracketHandler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	nodeID := chi.URLParam(r, "nodeID")

	var params services.SubmitResultParams
	if err := readJSON(w, r, &params); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bracket, err := h.matchService.SubmitResult(r.Context(), tournamentID, nodeID, params)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil)
}

// UndoResult handles DELETE /tournaments/{tournamentID}/matches/{nodeID}/result.
func (h *BracketHandler) UndoResult(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	nodeID := chi.URLParam(r, "nodeID")

	bracket, err := h.matchService.UndoResult(r.Context(), tournamentID, nodeID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil)
}

// GetRound handles GET /tournaments/{tournamentID}/rounds/{round}.
func (h *BracketHandler) GetRound(w http.ResponseWriter, r *http.Request) {
	bracket, ok := h.loadBracket(w, r)
	if !ok {
		return
	}
	round, err := getIDFromURL(r, "round")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matches := engine.MatchesInRound(bracket, round)
	writeJSON(w, http.StatusOK, jsonResponse{"round": round, "matches": matches}, nil)
}

// GetMatches handles GET /tournaments/{tournamentID}/matches?status=live.
// Without a status filter it returns the full node arena.
func (h *BracketHandler) GetMatches(w http.ResponseWriter, r *http.Request) {
	bracket, ok := h.loadBracket(w, r)
	if !ok {
		return
	}

	var matches []*models.BracketNode
	switch status := r.URL.Query().Get("status"); status {
	case "live":
		matches = engine.LiveMatches(bracket)
	case "upcoming":
		matches = engine.UpcomingMatches(bracket)
	case "completed":
		matches = engine.CompletedMatches(bracket)
	case "":
		matches = bracket.Nodes
	default:
		errorResponse(w, r, http.StatusBadRequest, "status must be one of live, upcoming, completed")
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil)
}

// GetTeamPath handles GET /tournaments/{tournamentID}/teams/{teamID}/path.
func (h *BracketHandler) GetTeamPath(w http.ResponseWriter, r *http.Request) {
	bracket, ok := h.loadBracket(w, r)
	if !ok {
		return
	}
	teamID := chi.URLParam(r, "teamID")
	if bracket.Team(teamID) == nil {
		notFoundResponse(w, r)
		return
	}
	path := engine.PathOfTeam(bracket, teamID)
	writeJSON(w, http.StatusOK, jsonResponse{"team_id": teamID, "path": path}, nil)
}

// GetStandings handles GET /tournaments/{tournamentID}/standings.
func (h *BracketHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	bracket, ok := h.loadBracket(w, r)
	if !ok {
		return
	}
	standings := engine.Standings(bracket)
	writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil)
}

func (h *BracketHandler) loadBracket(w http.ResponseWriter, r *http.Request) (*models.Bracket, bool) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return nil, false
	}
	bracket, err := h.bracketService.GetBracket(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return nil, false
	}
	return bracket, true
}
