package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pokecasino/database"
	"pokecasino/models"
)

// GamblingLogRepository implements the service.GamblingLogRepository interface
type GamblingLogRepository struct {
	q queryable
}

// NewGamblingLogRepository creates a gambling log repository over the connection pool
func NewGamblingLogRepository(db *database.DB) *GamblingLogRepository {
	return &GamblingLogRepository{q: db}
}

func newGamblingLogRepositoryWithTx(tx queryable) *GamblingLogRepository {
	return &GamblingLogRepository{q: tx}
}

// Create appends a log entry
func (r *GamblingLogRepository) Create(ctx context.Context, entry *models.GamblingLog) error {
	entry.ID = uuid.NewString()
	entry.Timestamp = time.Now()

	query := `
		INSERT INTO gambling_logs (id, winner_id, loser_id, logged_by, timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.q.Exec(ctx, query,
		entry.ID, entry.WinnerID, entry.LoserID, entry.LoggedBy, entry.Timestamp,
	); err != nil {
		return fmt.Errorf("failed to create gambling log: %w", err)
	}
	return nil
}

// GetRecent returns entries, most recent first, truncated to limit
func (r *GamblingLogRepository) GetRecent(ctx context.Context, limit int) ([]*models.GamblingLog, error) {
	query := `
		SELECT id, winner_id, loser_id, logged_by, timestamp
		FROM gambling_logs
		ORDER BY timestamp DESC
		LIMIT $1
	`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent gambling logs: %w", err)
	}
	defer rows.Close()

	var entries []*models.GamblingLog
	for rows.Next() {
		var entry models.GamblingLog
		if err := rows.Scan(&entry.ID, &entry.WinnerID, &entry.LoserID, &entry.LoggedBy, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan gambling log: %w", err)
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

// GetStats returns win/loss counts for a user
func (r *GamblingLogRepository) GetStats(ctx context.Context, userID string) (*models.GamblingLogStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE winner_id = $1),
			COUNT(*) FILTER (WHERE loser_id = $1)
		FROM gambling_logs
		WHERE winner_id = $1 OR loser_id = $1
	`
	var stats models.GamblingLogStats
	if err := r.q.QueryRow(ctx, query, userID).Scan(&stats.Wins, &stats.Losses); err != nil {
		return nil, fmt.Errorf("failed to get gambling log stats for user %s: %w", userID, err)
	}
	return &stats, nil
}
