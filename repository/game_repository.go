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

// GameRepository implements the service.GameRepository interface
type GameRepository struct {
	q queryable
}

// NewGameRepository creates a game repository over the connection pool
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{q: db}
}

func newGameRepositoryWithTx(tx queryable) *GameRepository {
	return &GameRepository{q: tx}
}

// Create appends an immutable game record
func (r *GameRepository) Create(ctx context.Context, record *models.GameRecord) error {
	record.ID = uuid.NewString()
	record.Timestamp = time.Now()

	gameData, err := json.Marshal(record.GameData)
	if err != nil {
		return fmt.Errorf("failed to marshal game data: %w", err)
	}

	query := `
		INSERT INTO gambling_games (id, user_id, game_type, bet, result, payout, game_data, played_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := r.q.Exec(ctx, query,
		record.ID, record.UserID, record.GameType, record.Bet,
		record.Result, record.Payout, gameData, record.Timestamp,
	); err != nil {
		return fmt.Errorf("failed to create game record: %w", err)
	}
	return nil
}

// GetByUser returns a user's games, most recent first, truncated to limit
func (r *GameRepository) GetByUser(ctx context.Context, userID string, limit int) ([]*models.GameRecord, error) {
	query := `
		SELECT id, user_id, game_type, bet, result, payout, game_data, played_at
		FROM gambling_games
		WHERE user_id = $1
		ORDER BY played_at DESC
		LIMIT $2
	`
	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get games for user %s: %w", userID, err)
	}
	defer rows.Close()

	return scanGameRecords(rows)
}

// GetAll returns every game record
func (r *GameRepository) GetAll(ctx context.Context) ([]*models.GameRecord, error) {
	query := `
		SELECT id, user_id, game_type, bet, result, payout, game_data, played_at
		FROM gambling_games
		ORDER BY played_at ASC
	`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get game records: %w", err)
	}
	defer rows.Close()

	return scanGameRecords(rows)
}

func scanGameRecords(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*models.GameRecord, error) {
	var records []*models.GameRecord
	for rows.Next() {
		var record models.GameRecord
		var gameData []byte
		if err := rows.Scan(
			&record.ID, &record.UserID, &record.GameType, &record.Bet,
			&record.Result, &record.Payout, &gameData, &record.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game record: %w", err)
		}
		if len(gameData) > 0 {
			if err := json.Unmarshal(gameData, &record.GameData); err != nil {
				return nil, fmt.Errorf("failed to unmarshal game data: %w", err)
			}
		}
		records = append(records, &record)
	}
	return records, rows.Err()
}
