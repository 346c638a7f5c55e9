package models

import "time"

// TournamentStatus represents the lifecycle state of a tournament
type TournamentStatus string

const (
	TournamentStatusRegistration TournamentStatus = "registration"
	TournamentStatusActive       TournamentStatus = "active"
	TournamentStatusCompleted    TournamentStatus = "completed"
)

// Tournament represents a fixed-size bracket. The fee fields (Name, EntryFee,
// PrizePool) belong to the fee-economy variant and stay zero-valued when that
// variant is disabled.
type Tournament struct {
	ID           string           `db:"id" json:"id"`
	Name         string           `db:"name" json:"name,omitempty"`
	Size         int              `db:"size" json:"size"`
	Status       TournamentStatus `db:"status" json:"status"`
	Participants []string         `db:"participants" json:"participants"`
	EntryFee     int64            `db:"entry_fee" json:"entryFee,omitempty"`
	PrizePool    int64            `db:"prize_pool" json:"prizePool,omitempty"`
	WinnerID     *string          `db:"winner_id" json:"winnerId"`
	CreatedAt    time.Time        `db:"created_at" json:"createdAt"`
	StartedAt    *time.Time       `db:"started_at" json:"startedAt"`
	CompletedAt  *time.Time       `db:"completed_at" json:"completedAt"`
}

// IsOpen checks if the tournament is accepting participants
func (t *Tournament) IsOpen() bool {
	return t.Status == TournamentStatusRegistration
}

// IsFull checks if the bracket has reached capacity
func (t *Tournament) IsFull() bool {
	return len(t.Participants) >= t.Size
}

// HasParticipant checks bracket membership
func (t *Tournament) HasParticipant(userID string) bool {
	for _, id := range t.Participants {
		if id == userID {
			return true
		}
	}
	return false
}
