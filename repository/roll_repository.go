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

// RollRepository implements the service.RollRepository interface
type RollRepository struct {
	q queryable
}

// NewRollRepository creates a roll repository over the connection pool
func NewRollRepository(db *database.DB) *RollRepository {
	return &RollRepository{q: db}
}

func newRollRepositoryWithTx(tx queryable) *RollRepository {
	return &RollRepository{q: tx}
}

// Create appends an immutable roll record
func (r *RollRepository) Create(ctx context.Context, roll *models.PokemonRoll) error {
	roll.ID = uuid.NewString()
	roll.Timestamp = time.Now()

	pokemonData, err := json.Marshal(roll.PokemonData)
	if err != nil {
		return fmt.Errorf("failed to marshal pokemon data: %w", err)
	}

	query := `
		INSERT INTO pokemon_rolls (id, user_id, pokemon_id, pokemon_name, pokemon_data, cost, rolled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := r.q.Exec(ctx, query,
		roll.ID, roll.UserID, roll.PokemonID, roll.PokemonName,
		pokemonData, roll.Cost, roll.Timestamp,
	); err != nil {
		return fmt.Errorf("failed to create roll: %w", err)
	}
	return nil
}

// GetByUser returns a user's rolls, most recent first, truncated to limit
func (r *RollRepository) GetByUser(ctx context.Context, userID string, limit int) ([]*models.PokemonRoll, error) {
	query := `
		SELECT id, user_id, pokemon_id, pokemon_name, pokemon_data, cost, rolled_at
		FROM pokemon_rolls
		WHERE user_id = $1
		ORDER BY rolled_at DESC
		LIMIT $2
	`
	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get rolls for user %s: %w", userID, err)
	}
	defer rows.Close()

	var rolls []*models.PokemonRoll
	for rows.Next() {
		var roll models.PokemonRoll
		var pokemonData []byte
		if err := rows.Scan(
			&roll.ID, &roll.UserID, &roll.PokemonID, &roll.PokemonName,
			&pokemonData, &roll.Cost, &roll.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan roll: %w", err)
		}
		if len(pokemonData) > 0 {
			if err := json.Unmarshal(pokemonData, &roll.PokemonData); err != nil {
				return nil, fmt.Errorf("failed to unmarshal pokemon data: %w", err)
			}
		}
		rolls = append(rolls, &roll)
	}
	return rolls, rows.Err()
}

// CountByUser returns the number of rolls recorded for a user
func (r *RollRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM pokemon_rolls WHERE user_id = $1`
	if err := r.q.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rolls for user %s: %w", userID, err)
	}
	return count, nil
}
