package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pokecasino/database"
	"pokecasino/models"
)

// BalanceEntryRepository implements the service.BalanceEntryRepository interface
type BalanceEntryRepository struct {
	q queryable
}

// NewBalanceEntryRepository creates a balance entry repository over the connection pool
func NewBalanceEntryRepository(db *database.DB) *BalanceEntryRepository {
	return &BalanceEntryRepository{q: db}
}

func newBalanceEntryRepositoryWithTx(tx queryable) *BalanceEntryRepository {
	return &BalanceEntryRepository{q: tx}
}

// Record creates a new balance entry
func (r *BalanceEntryRepository) Record(ctx context.Context, entry *models.BalanceEntry) error {
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()

	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := `
		INSERT INTO balance_entries (id, user_id, balance_before, balance_after, change_amount, transaction_type, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := r.q.Exec(ctx, query,
		entry.ID, entry.UserID, entry.BalanceBefore, entry.BalanceAfter,
		entry.ChangeAmount, entry.Type, metadata, entry.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to record balance entry: %w", err)
	}
	return nil
}

// GetByUser returns entries for a user, most recent first
func (r *BalanceEntryRepository) GetByUser(ctx context.Context, userID string, limit int) ([]*models.BalanceEntry, error) {
	query := `
		SELECT id, user_id, balance_before, balance_after, change_amount, transaction_type, metadata, created_at
		FROM balance_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance entries for user %s: %w", userID, err)
	}
	defer rows.Close()

	var entries []*models.BalanceEntry
	for rows.Next() {
		var entry models.BalanceEntry
		var metadata []byte
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.BalanceBefore, &entry.BalanceAfter,
			&entry.ChangeAmount, &entry.Type, &metadata, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan balance entry: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
			}
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
