package service

import "errors"

// Sentinel errors classifying business failures. The API layer maps these to
// HTTP statuses: ErrNotFound to 404, the rest to 400.
var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrDuplicateUsername    = errors.New("username already taken")
	ErrInsufficientBalance  = errors.New("insufficient pokecoins")
	ErrBonusUnavailable     = errors.New("daily bonus not available")
	ErrTournamentClosed     = errors.New("tournament is not accepting participants")
	ErrTournamentFull       = errors.New("tournament is full")
	ErrAlreadyJoined        = errors.New("already registered for this tournament")
	ErrWinnerNotParticipant = errors.New("winner is not a tournament participant")
)
