package models

import "time"

// GameType identifies a casino game variant
type GameType string

const (
	GameTypeSlots     GameType = "slots"
	GameTypeCoinflip  GameType = "coinflip"
	GameTypeBlackjack GameType = "blackjack"
	GameTypeRoulette  GameType = "roulette"
)

// GameResult classifies the outcome of a single play
type GameResult string

const (
	GameResultWin  GameResult = "win"
	GameResultLoss GameResult = "loss"
	GameResultTie  GameResult = "tie"
)

// GameRecord represents one resolved play in a user's gambling history
type GameRecord struct {
	ID        string         `db:"id" json:"id"`
	UserID    string         `db:"user_id" json:"userId"`
	GameType  GameType       `db:"game_type" json:"gameType"`
	Bet       int64          `db:"bet" json:"bet"`
	Result    GameResult     `db:"result" json:"result"`
	Payout    int64          `db:"payout" json:"payout"`
	GameData  map[string]any `db:"game_data" json:"gameData"`
	Timestamp time.Time      `db:"timestamp" json:"timestamp"`
}

// PlayOutcome is returned to the caller after a play settles
type PlayOutcome struct {
	Record     *GameRecord `json:"record"`
	NewBalance int64       `json:"newBalance"`
}
