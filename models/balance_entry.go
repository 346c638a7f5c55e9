package models

import (
	"time"
)

// TransactionType represents the type of balance change
type TransactionType string

const (
	TransactionTypeInitial         TransactionType = "initial"
	TransactionTypeGameWin         TransactionType = "game_win"
	TransactionTypeGameLoss        TransactionType = "game_loss"
	TransactionTypeGameTie         TransactionType = "game_tie"
	TransactionTypeDailyBonus      TransactionType = "daily_bonus"
	TransactionTypeRollCost        TransactionType = "roll_cost"
	TransactionTypeTournamentEntry TransactionType = "tournament_entry"
	TransactionTypeTournamentPrize TransactionType = "tournament_prize"
	TransactionTypeAdminAdjust     TransactionType = "admin_adjust"
)

// BalanceEntry represents a historical balance change. Every balance mutation
// applied to a user pairs with exactly one entry.
type BalanceEntry struct {
	ID            string          `db:"id" json:"id"`
	UserID        string          `db:"user_id" json:"userId"`
	BalanceBefore int64           `db:"balance_before" json:"balanceBefore"`
	BalanceAfter  int64           `db:"balance_after" json:"balanceAfter"`
	ChangeAmount  int64           `db:"change_amount" json:"changeAmount"`
	Type          TransactionType `db:"transaction_type" json:"type"`
	Metadata      map[string]any  `db:"metadata" json:"metadata,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
}
