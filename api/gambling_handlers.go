package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"pokecasino/models"
)

type playRequest struct {
	UserID   string `json:"userId"`
	GameType string `json:"gameType"`
	Bet      int64  `json:"bet"`
	Choice   string `json:"choice"`
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if !decodeBody(w, r, &req) {
		return
	}

	outcome, err := s.gambling.Play(r.Context(), req.UserID, models.GameType(req.GameType), req.Bet, req.Choice)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, outcome)
}

func (s *Server) handleGamblingHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.gambling.History(r.Context(), chi.URLParam(r, "userId"), queryLimit(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []*models.GameRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

type logResultRequest struct {
	WinnerID string `json:"winnerId"`
	LoserID  string `json:"loserId"`
	LoggedBy string `json:"loggedBy"`
}

func (s *Server) handleCreateGamblingLog(w http.ResponseWriter, r *http.Request) {
	var req logResultRequest
	if !decodeBody(w, r, &req) {
		return
	}

	entry, err := s.gamblingLog.LogResult(r.Context(), req.WinnerID, req.LoserID, req.LoggedBy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleRecentGamblingLogs(w http.ResponseWriter, r *http.Request) {
	entries, err := s.gamblingLog.Recent(r.Context(), queryLimit(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []*models.GamblingLog{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// queryLimit parses the optional ?limit= parameter. Zero lets the service
// apply its default.
func queryLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
