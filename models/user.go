package models

import (
	"time"
)

// User represents a player with a pokecoin balance
type User struct {
	ID              string     `db:"id" json:"id"`
	Username        string     `db:"username" json:"username"`
	PokecoinBalance int64      `db:"pokecoin_balance" json:"pokecoinBalance"`
	TotalEarned     int64      `db:"total_earned" json:"totalEarned"`
	TotalSpent      int64      `db:"total_spent" json:"totalSpent"`
	LastDailyBonus  *time.Time `db:"last_daily_bonus" json:"lastDailyBonus"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
}
