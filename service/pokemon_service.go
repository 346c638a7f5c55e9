package service

import (
	"context"
	"fmt"
	"math/rand"

	"pokecasino/events"
	"pokecasino/models"
)

// MaxPokemonID is the upper bound of the directory's id space
const MaxPokemonID = 1025

// pokemonService implements the PokemonService interface
type pokemonService struct {
	uowFactory UnitOfWorkFactory
	directory  PokemonDirectory
}

// NewPokemonService creates a new pokemon service
func NewPokemonService(uowFactory UnitOfWorkFactory, directory PokemonDirectory) PokemonService {
	return &pokemonService{
		uowFactory: uowFactory,
		directory:  directory,
	}
}

// RecordRoll charges the roll cost and records the client-supplied snapshot.
// The sufficiency check, the deduction and the roll record land atomically.
func (s *pokemonService) RecordRoll(ctx context.Context, userID string, pokemonID int, pokemonName string, pokemonData map[string]any, cost int64) (*models.PokemonRoll, error) {
	if pokemonID < 1 || pokemonID > MaxPokemonID {
		return nil, fmt.Errorf("%w: pokemon id must be in [1, %d]", ErrInvalidInput, MaxPokemonID)
	}
	if pokemonName == "" {
		return nil, fmt.Errorf("%w: pokemon name is required", ErrInvalidInput)
	}
	if cost < 0 {
		return nil, fmt.Errorf("%w: cost cannot be negative", ErrInvalidInput)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if user.PokecoinBalance < cost {
		return nil, ErrInsufficientBalance
	}

	updated, err := uow.UserRepository().AdjustBalance(ctx, userID, -cost)
	if err != nil {
		return nil, fmt.Errorf("failed to deduct roll cost: %w", err)
	}

	roll := &models.PokemonRoll{
		UserID:      userID,
		PokemonID:   pokemonID,
		PokemonName: pokemonName,
		PokemonData: pokemonData,
		Cost:        cost,
	}
	if err := uow.RollRepository().Create(ctx, roll); err != nil {
		return nil, fmt.Errorf("failed to create roll: %w", err)
	}

	entry := &models.BalanceEntry{
		UserID:        userID,
		BalanceBefore: user.PokecoinBalance,
		BalanceAfter:  updated.PokecoinBalance,
		ChangeAmount:  -cost,
		Type:          models.TransactionTypeRollCost,
		Metadata: map[string]any{
			"roll_id":      roll.ID,
			"pokemon_id":   pokemonID,
			"pokemon_name": pokemonName,
		},
	}
	if err := RecordBalanceChange(ctx, uow, entry); err != nil {
		return nil, fmt.Errorf("failed to record balance change: %w", err)
	}

	uow.EventBus().Publish(events.PokemonRolledEvent{
		UserID:      userID,
		PokemonID:   pokemonID,
		PokemonName: pokemonName,
		Cost:        cost,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return roll, nil
}

// FreeRoll draws a random species, fetches its snapshot and records it at zero
// cost. Used by the no-economy surface; a directory failure fails the roll.
func (s *pokemonService) FreeRoll(ctx context.Context, userID string) (*models.PokemonRoll, error) {
	pokemonID := rand.Intn(MaxPokemonID) + 1

	info, err := s.directory.Fetch(ctx, pokemonID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pokemon %d: %w", pokemonID, err)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	roll := &models.PokemonRoll{
		UserID:      userID,
		PokemonID:   info.ID,
		PokemonName: info.Name,
		PokemonData: info.Data(),
		Cost:        0,
	}
	if err := uow.RollRepository().Create(ctx, roll); err != nil {
		return nil, fmt.Errorf("failed to create roll: %w", err)
	}

	uow.EventBus().Publish(events.PokemonRolledEvent{
		UserID:      userID,
		PokemonID:   info.ID,
		PokemonName: info.Name,
		Cost:        0,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return roll, nil
}

// History returns a user's rolls, most recent first
func (s *pokemonService) History(ctx context.Context, userID string, limit int) ([]*models.PokemonRoll, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rolls, err := uow.RollRepository().GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get rolls: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return rolls, nil
}
