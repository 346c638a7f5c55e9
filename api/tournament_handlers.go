package api

import (
	"net/http"

	"github.com/go-chi/chi"

	"pokecasino/models"
)

type createTournamentRequest struct {
	Name     string `json:"name"`
	Size     int    `json:"size"`
	EntryFee int64  `json:"entryFee"`
}

func (s *Server) handleCreateTournament(w http.ResponseWriter, r *http.Request) {
	var req createTournamentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tournament, err := s.tournaments.Create(r.Context(), req.Name, req.Size, req.EntryFee)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tournament)
}

func (s *Server) handleListTournaments(w http.ResponseWriter, r *http.Request) {
	var status *models.TournamentStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed := models.TournamentStatus(raw)
		status = &parsed
	}

	tournaments, err := s.tournaments.List(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	if tournaments == nil {
		tournaments = []*models.Tournament{}
	}
	writeJSON(w, http.StatusOK, tournaments)
}

type joinTournamentRequest struct {
	UserID string `json:"userId"`
}

func (s *Server) handleJoinTournament(w http.ResponseWriter, r *http.Request) {
	var req joinTournamentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tournament, err := s.tournaments.Join(r.Context(), chi.URLParam(r, "id"), req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tournament)
}

type startTournamentRequest struct {
	WinnerID *string `json:"winnerId"`
}

func (s *Server) handleStartTournament(w http.ResponseWriter, r *http.Request) {
	req := startTournamentRequest{}
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}

	tournament, err := s.tournaments.Start(r.Context(), chi.URLParam(r, "id"), req.WinnerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tournament)
}
