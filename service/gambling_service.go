package service

import (
	"context"
	"fmt"

	"pokecasino/events"
	"pokecasino/games"
	"pokecasino/models"
)

// DefaultHistoryLimit caps history reads when the caller does not supply one
const DefaultHistoryLimit = 50

// gamblingService implements the GamblingService interface
type gamblingService struct {
	uowFactory UnitOfWorkFactory
	engine     *games.Engine
}

// NewGamblingService creates a new gambling service
func NewGamblingService(uowFactory UnitOfWorkFactory, engine *games.Engine) GamblingService {
	return &gamblingService{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Play resolves one bet atomically: the sufficiency check, the net balance
// change and the game record all land in a single unit of work.
func (s *gamblingService) Play(ctx context.Context, userID string, gameType models.GameType, bet int64, choice string) (*models.PlayOutcome, error) {
	if bet <= 0 {
		return nil, fmt.Errorf("%w: bet amount must be positive", ErrInvalidInput)
	}
	switch gameType {
	case models.GameTypeSlots, models.GameTypeCoinflip, models.GameTypeBlackjack, models.GameTypeRoulette:
	default:
		return nil, fmt.Errorf("%w: unknown game type %q", ErrInvalidInput, gameType)
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
	if user.PokecoinBalance < bet {
		return nil, ErrInsufficientBalance
	}

	outcome, err := s.engine.Play(gameType, bet, choice)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// One net adjustment per play: payout minus stake. A tie nets zero and
	// leaves the lifetime totals untouched.
	net := outcome.Payout - bet
	updated, err := uow.UserRepository().AdjustBalance(ctx, userID, net)
	if err != nil {
		return nil, fmt.Errorf("failed to settle bet: %w", err)
	}

	record := &models.GameRecord{
		UserID:   userID,
		GameType: gameType,
		Bet:      bet,
		Result:   outcome.Result,
		Payout:   outcome.Payout,
		GameData: outcome.GameData,
	}
	if err := uow.GameRepository().Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create game record: %w", err)
	}

	var transactionType models.TransactionType
	switch outcome.Result {
	case models.GameResultWin:
		transactionType = models.TransactionTypeGameWin
	case models.GameResultTie:
		transactionType = models.TransactionTypeGameTie
	default:
		transactionType = models.TransactionTypeGameLoss
	}

	entry := &models.BalanceEntry{
		UserID:        userID,
		BalanceBefore: user.PokecoinBalance,
		BalanceAfter:  updated.PokecoinBalance,
		ChangeAmount:  net,
		Type:          transactionType,
		Metadata: map[string]any{
			"game_id":   record.ID,
			"game_type": string(gameType),
			"bet":       bet,
			"payout":    outcome.Payout,
		},
	}
	if err := RecordBalanceChange(ctx, uow, entry); err != nil {
		return nil, fmt.Errorf("failed to record balance change: %w", err)
	}

	uow.EventBus().Publish(events.GamePlayedEvent{
		UserID:   userID,
		GameID:   record.ID,
		GameType: gameType,
		Bet:      bet,
		Result:   outcome.Result,
		Payout:   outcome.Payout,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.PlayOutcome{
		Record:     record,
		NewBalance: updated.PokecoinBalance,
	}, nil
}

// History returns a user's game records, most recent first
func (s *gamblingService) History(ctx context.Context, userID string, limit int) ([]*models.GameRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	records, err := uow.GameRepository().GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get gambling history: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return records, nil
}
