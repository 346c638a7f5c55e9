package api

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"pokecasino/service"
)

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			log.WithError(err).Error("Failed to encode response")
		}
	}
}

// writeError maps service errors onto the API error taxonomy. Not-found maps
// to 404, business and validation failures to 400, everything else to a
// generic 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: err.Error()})
	case isBusinessError(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
	default:
		log.WithError(err).Error("Internal server error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}
}

func isBusinessError(err error) bool {
	for _, sentinel := range []error{
		service.ErrInvalidInput,
		service.ErrDuplicateUsername,
		service.ErrInsufficientBalance,
		service.ErrBonusUnavailable,
		service.ErrTournamentClosed,
		service.ErrTournamentFull,
		service.ErrAlreadyJoined,
		service.ErrWinnerNotParticipant,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Message: message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeBadRequest(w, "invalid request body")
		return false
	}
	return true
}
