package models

// GamblingLeaderboardEntry is a user annotated with net winnings over their
// gambling history. Users with no history net to zero.
type GamblingLeaderboardEntry struct {
	User
	TotalWinnings int64 `json:"totalWinnings"`
}

// UserStats summarizes a user's activity across rolls and logged gambling
type UserStats struct {
	UserID         string       `json:"userId"`
	RollCount      int          `json:"rollCount"`
	GamblingWins   int          `json:"gamblingWins"`
	GamblingLosses int          `json:"gamblingLosses"`
	LastRoll       *PokemonRoll `json:"lastRoll,omitempty"`
}
