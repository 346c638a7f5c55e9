package service

import (
	"context"
	"fmt"
	"sort"

	"pokecasino/models"
)

// DefaultLeaderboardLimit caps leaderboard reads when no limit is supplied
const DefaultLeaderboardLimit = 10

// statsService implements the StatsService interface
type statsService struct {
	uowFactory UnitOfWorkFactory
}

// NewStatsService creates a new stats service
func NewStatsService(uowFactory UnitOfWorkFactory) StatsService {
	return &statsService{
		uowFactory: uowFactory,
	}
}

// WealthLeaderboard returns users sorted by balance descending. The sort is
// stable: ties keep insertion order.
func (s *statsService) WealthLeaderboard(ctx context.Context, limit int) ([]*models.User, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].PokecoinBalance > users[j].PokecoinBalance
	})
	if len(users) > limit {
		users = users[:limit]
	}

	return users, nil
}

// GamblingLeaderboard returns users sorted by net winnings over their game
// history, descending. Users with no games net to zero.
func (s *statsService) GamblingLeaderboard(ctx context.Context, limit int) ([]*models.GamblingLeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	games, err := uow.GameRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get game records: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	winnings := make(map[string]int64)
	for _, game := range games {
		winnings[game.UserID] += game.Payout - game.Bet
	}

	entries := make([]*models.GamblingLeaderboardEntry, 0, len(users))
	for _, user := range users {
		entries = append(entries, &models.GamblingLeaderboardEntry{
			User:          *user,
			TotalWinnings: winnings[user.ID],
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalWinnings > entries[j].TotalWinnings
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

// UserStats returns roll and logged win/loss counts for a user
func (s *statsService) UserStats(ctx context.Context, userID string) (*models.UserStats, error) {
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

	rollCount, err := uow.RollRepository().CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count rolls: %w", err)
	}

	logStats, err := uow.GamblingLogRepository().GetStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get gambling log stats: %w", err)
	}

	lastRolls, err := uow.RollRepository().GetByUser(ctx, userID, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to get last roll: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	stats := &models.UserStats{
		UserID:         userID,
		RollCount:      rollCount,
		GamblingWins:   logStats.Wins,
		GamblingLosses: logStats.Losses,
	}
	if len(lastRolls) > 0 {
		stats.LastRoll = lastRolls[0]
	}

	return stats, nil
}
