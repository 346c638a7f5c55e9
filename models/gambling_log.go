package models

import "time"

// GamblingLog records an externally-adjudicated win/loss pair, independent of
// the game engine. Used when gambling is tracked without an economy.
type GamblingLog struct {
	ID        string    `db:"id" json:"id"`
	WinnerID  string    `db:"winner_id" json:"winnerId"`
	LoserID   string    `db:"loser_id" json:"loserId"`
	LoggedBy  string    `db:"logged_by" json:"loggedBy"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}

// GamblingLogStats aggregates a user's logged record
type GamblingLogStats struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}
