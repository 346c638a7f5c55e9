package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pokecasino/database"
	"pokecasino/models"
)

// BonusRepository implements the service.BonusRepository interface
type BonusRepository struct {
	q queryable
}

// NewBonusRepository creates a bonus repository over the connection pool
func NewBonusRepository(db *database.DB) *BonusRepository {
	return &BonusRepository{q: db}
}

func newBonusRepositoryWithTx(tx queryable) *BonusRepository {
	return &BonusRepository{q: tx}
}

// Record creates a new bonus record
func (r *BonusRepository) Record(ctx context.Context, bonus *models.DailyBonus) error {
	bonus.ID = uuid.NewString()
	if bonus.Timestamp.IsZero() {
		bonus.Timestamp = time.Now()
	}

	query := `
		INSERT INTO daily_bonuses (id, user_id, amount, bonus_type, timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.q.Exec(ctx, query,
		bonus.ID, bonus.UserID, bonus.Amount, bonus.BonusType, bonus.Timestamp,
	); err != nil {
		return fmt.Errorf("failed to record bonus: %w", err)
	}
	return nil
}

// GetByUser returns a user's bonuses, most recent first
func (r *BonusRepository) GetByUser(ctx context.Context, userID string) ([]*models.DailyBonus, error) {
	query := `
		SELECT id, user_id, amount, bonus_type, timestamp
		FROM daily_bonuses
		WHERE user_id = $1
		ORDER BY timestamp DESC
	`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bonuses for user %s: %w", userID, err)
	}
	defer rows.Close()

	var bonuses []*models.DailyBonus
	for rows.Next() {
		var bonus models.DailyBonus
		if err := rows.Scan(&bonus.ID, &bonus.UserID, &bonus.Amount, &bonus.BonusType, &bonus.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan bonus: %w", err)
		}
		bonuses = append(bonuses, &bonus)
	}
	return bonuses, rows.Err()
}
