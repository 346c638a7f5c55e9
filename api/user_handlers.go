package api

import (
	"net/http"

	"github.com/go-chi/chi"
)

type createUserRequest struct {
	Username       string `json:"username"`
	InitialBalance *int64 `json:"initialBalance"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.users.CreateUser(r.Context(), req.Username, req.InitialBalance)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleDailyBonus(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.ClaimDailyBonus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type adjustBalanceRequest struct {
	Amount int64 `json:"amount"`
}

func (s *Server) handleAdminAdjustBalance(w http.ResponseWriter, r *http.Request) {
	var req adjustBalanceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.users.AdjustBalance(r.Context(), chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
