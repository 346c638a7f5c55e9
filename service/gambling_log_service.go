package service

import (
	"context"
	"fmt"

	"pokecasino/models"
)

// gamblingLogService implements the GamblingLogService interface
type gamblingLogService struct {
	uowFactory UnitOfWorkFactory
}

// NewGamblingLogService creates a new gambling log service
func NewGamblingLogService(uowFactory UnitOfWorkFactory) GamblingLogService {
	return &gamblingLogService{
		uowFactory: uowFactory,
	}
}

// LogResult records a win/loss pair adjudicated outside the game engine
func (s *gamblingLogService) LogResult(ctx context.Context, winnerID, loserID, loggedBy string) (*models.GamblingLog, error) {
	if winnerID == loserID {
		return nil, fmt.Errorf("%w: winner and loser cannot be the same user", ErrInvalidInput)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	for _, id := range []string{winnerID, loserID, loggedBy} {
		user, err := uow.UserRepository().GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get user %s: %w", id, err)
		}
		if user == nil {
			return nil, ErrNotFound
		}
	}

	entry := &models.GamblingLog{
		WinnerID: winnerID,
		LoserID:  loserID,
		LoggedBy: loggedBy,
	}
	if err := uow.GamblingLogRepository().Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create gambling log: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return entry, nil
}

// Recent returns log entries, most recent first
func (s *gamblingLogService) Recent(ctx context.Context, limit int) ([]*models.GamblingLog, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	logs, err := uow.GamblingLogRepository().GetRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get gambling logs: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return logs, nil
}
