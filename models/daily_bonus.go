package models

import "time"

// BonusType tags the kind of bonus that was granted
type BonusType string

const (
	BonusTypeDaily BonusType = "daily"
)

// DailyBonus records a granted bonus
type DailyBonus struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Amount    int64     `db:"amount" json:"amount"`
	BonusType BonusType `db:"bonus_type" json:"bonusType"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}
