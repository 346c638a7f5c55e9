package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pokecasino/config"
	"pokecasino/events"
	"pokecasino/models"
)

// userService implements the UserService interface
type userService struct {
	uowFactory UnitOfWorkFactory
	now        func() time.Time
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory) UserService {
	return &userService{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// CreateUser creates a user with a unique username and the initial balance
func (s *userService) CreateUser(ctx context.Context, username string, initialBalance *int64) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	balance := config.Get().StartingBalance
	if initialBalance != nil {
		if *initialBalance < 0 {
			return nil, fmt.Errorf("%w: initial balance cannot be negative", ErrInvalidInput)
		}
		balance = *initialBalance
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	existing, err := uow.UserRepository().GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing username: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateUsername
	}

	user, err := uow.UserRepository().Create(ctx, username, balance)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	entry := &models.BalanceEntry{
		UserID:        user.ID,
		BalanceBefore: 0,
		BalanceAfter:  balance,
		ChangeAmount:  balance,
		Type:          models.TransactionTypeInitial,
		Metadata: map[string]any{
			"username": username,
		},
	}
	if err := RecordBalanceChange(ctx, uow, entry); err != nil {
		return nil, fmt.Errorf("failed to record initial balance: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by id
func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}

// GetOrCreateByUsername retrieves an existing user or creates a new one with
// the configured starting balance
func (s *userService) GetOrCreateByUsername(ctx context.Context, username string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if user != nil {
		return user, nil
	}
	return s.CreateUser(ctx, username, nil)
}

// ClaimDailyBonus grants the fixed bonus if no prior claim exists or the prior
// claim is at least 24 hours old, measured as elapsed wall-clock time.
func (s *userService) ClaimDailyBonus(ctx context.Context, id string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	now := s.now()
	if user.LastDailyBonus != nil && now.Sub(*user.LastDailyBonus) < 24*time.Hour {
		return nil, ErrBonusUnavailable
	}

	amount := config.Get().DailyBonusAmount
	updated, err := uow.UserRepository().AdjustBalance(ctx, id, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to grant bonus: %w", err)
	}
	if err := uow.UserRepository().SetLastDailyBonus(ctx, id, now); err != nil {
		return nil, fmt.Errorf("failed to record bonus timestamp: %w", err)
	}
	updated.LastDailyBonus = &now

	bonus := &models.DailyBonus{
		UserID:    id,
		Amount:    amount,
		BonusType: models.BonusTypeDaily,
		Timestamp: now,
	}
	if err := uow.BonusRepository().Record(ctx, bonus); err != nil {
		return nil, fmt.Errorf("failed to record bonus: %w", err)
	}

	entry := &models.BalanceEntry{
		UserID:        id,
		BalanceBefore: user.PokecoinBalance,
		BalanceAfter:  updated.PokecoinBalance,
		ChangeAmount:  amount,
		Type:          models.TransactionTypeDailyBonus,
	}
	if err := RecordBalanceChange(ctx, uow, entry); err != nil {
		return nil, fmt.Errorf("failed to record balance change: %w", err)
	}

	uow.EventBus().Publish(events.BonusClaimedEvent{
		UserID: id,
		Amount: amount,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return updated, nil
}

// AdjustBalance applies a direct balance mutation from the admin surface
func (s *userService) AdjustBalance(ctx context.Context, id string, amount int64) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	updated, err := uow.UserRepository().AdjustBalance(ctx, id, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust balance: %w", err)
	}

	entry := &models.BalanceEntry{
		UserID:        id,
		BalanceBefore: user.PokecoinBalance,
		BalanceAfter:  updated.PokecoinBalance,
		ChangeAmount:  amount,
		Type:          models.TransactionTypeAdminAdjust,
	}
	if err := RecordBalanceChange(ctx, uow, entry); err != nil {
		return nil, fmt.Errorf("failed to record balance change: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return updated, nil
}
