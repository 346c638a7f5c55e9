package api

import (
	"net/http"

	"github.com/go-chi/chi"

	"pokecasino/models"
)

type pokemonRollRequest struct {
	UserID      string         `json:"userId"`
	PokemonID   int            `json:"pokemonId"`
	PokemonName string         `json:"pokemonName"`
	PokemonData map[string]any `json:"pokemonData"`
	Cost        int64          `json:"cost"`
}

func (s *Server) handlePokemonRoll(w http.ResponseWriter, r *http.Request) {
	var req pokemonRollRequest
	if !decodeBody(w, r, &req) {
		return
	}

	roll, err := s.pokemon.RecordRoll(r.Context(), req.UserID, req.PokemonID, req.PokemonName, req.PokemonData, req.Cost)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, roll)
}

func (s *Server) handlePokemonRollHistory(w http.ResponseWriter, r *http.Request) {
	rolls, err := s.pokemon.History(r.Context(), chi.URLParam(r, "userId"), queryLimit(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if rolls == nil {
		rolls = []*models.PokemonRoll{}
	}
	writeJSON(w, http.StatusOK, rolls)
}
