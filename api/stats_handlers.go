package api

import (
	"net/http"

	"pokecasino/models"
)

func (s *Server) handleWealthLeaderboard(w http.ResponseWriter, r *http.Request) {
	users, err := s.stats.WealthLeaderboard(r.Context(), queryLimit(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleGamblingLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.stats.GamblingLeaderboard(r.Context(), queryLimit(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []*models.GamblingLeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
