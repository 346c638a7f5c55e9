package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pokecasino/games"
	"pokecasino/models"
)

// playExpectation replays a seeded engine to learn the outcome the service
// under test will compute for the same seed.
func playExpectation(t *testing.T, seed int64, gameType models.GameType, bet int64, choice string) *games.Outcome {
	t.Helper()
	outcome, err := games.NewEngineWithSeed(seed).Play(gameType, bet, choice)
	assert.NoError(t, err)
	return outcome
}

func TestGamblingService_Play_SettlesNetChange(t *testing.T) {
	ctx := context.Background()
	const seed = 42

	expected := playExpectation(t, seed, models.GameTypeCoinflip, 100, games.CoinHeads)
	net := expected.Payout - 100

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockBalanceEntryRepo := new(MockBalanceEntryRepository)
	mockGameRepo := new(MockGameRepository)
	mockUoW.SetRepositories(mockUserRepo, mockBalanceEntryRepo, mockGameRepo, nil, nil, nil, nil)

	svc := NewGamblingService(mockFactory, games.NewEngineWithSeed(seed))

	user := &models.User{ID: "u-1", Username: "ash", PokecoinBalance: 1000}
	updated := &models.User{ID: "u-1", Username: "ash", PokecoinBalance: 1000 + net}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, "u-1").Return(user, nil)
	mockUserRepo.On("AdjustBalance", ctx, "u-1", net).Return(updated, nil)

	mockGameRepo.On("Create", ctx, mock.MatchedBy(func(r *models.GameRecord) bool {
		return r.UserID == "u-1" &&
			r.GameType == models.GameTypeCoinflip &&
			r.Bet == 100 &&
			r.Result == expected.Result &&
			r.Payout == expected.Payout
	})).Return(nil)

	mockBalanceEntryRepo.On("Record", ctx, mock.MatchedBy(func(e *models.BalanceEntry) bool {
		return e.UserID == "u-1" && e.ChangeAmount == net
	})).Return(nil)

	outcome, err := svc.Play(ctx, "u-1", models.GameTypeCoinflip, 100, games.CoinHeads)

	assert.NoError(t, err)
	assert.Equal(t, expected.Result, outcome.Record.Result)
	assert.Equal(t, expected.Payout, outcome.Record.Payout)
	assert.Equal(t, 1000+net, outcome.NewBalance)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockGameRepo.AssertExpectations(t)
	mockBalanceEntryRepo.AssertExpectations(t)
}

func TestGamblingService_Play_InsufficientBalance(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, nil)

	svc := NewGamblingService(mockFactory, games.NewEngine())

	user := &models.User{ID: "u-1", Username: "ash", PokecoinBalance: 50}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, "u-1").Return(user, nil)

	outcome, err := svc.Play(ctx, "u-1", models.GameTypeSlots, 100, "")

	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Nil(t, outcome)
	mockUserRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestGamblingService_Play_InvalidBet(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	svc := NewGamblingService(mockFactory, games.NewEngine())

	outcome, err := svc.Play(ctx, "u-1", models.GameTypeSlots, 0, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, outcome)

	outcome, err = svc.Play(ctx, "u-1", models.GameTypeSlots, -10, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, outcome)

	mockFactory.AssertNotCalled(t, "Create")
}

func TestGamblingService_Play_UnknownGameType(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	svc := NewGamblingService(mockFactory, games.NewEngine())

	outcome, err := svc.Play(ctx, "u-1", models.GameType("poker"), 100, "")

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, outcome)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestGamblingService_Play_InvalidCoinflipChoice(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, nil)

	svc := NewGamblingService(mockFactory, games.NewEngine())

	user := &models.User{ID: "u-1", Username: "ash", PokecoinBalance: 1000}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, "u-1").Return(user, nil)

	outcome, err := svc.Play(ctx, "u-1", models.GameTypeCoinflip, 100, "sideways")

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, outcome)
}

func TestGamblingService_Play_UserNotFound(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, nil)

	svc := NewGamblingService(mockFactory, games.NewEngine())

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, "missing").Return(nil, nil)

	outcome, err := svc.Play(ctx, "missing", models.GameTypeRoulette, 100, "red")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, outcome)
}

func TestGamblingService_History_DefaultLimit(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockGameRepo := new(MockGameRepository)
	mockUoW.SetRepositories(nil, nil, mockGameRepo, nil, nil, nil, nil)

	svc := NewGamblingService(mockFactory, games.NewEngine())

	records := []*models.GameRecord{
		{ID: "g-2", UserID: "u-1", GameType: models.GameTypeSlots},
		{ID: "g-1", UserID: "u-1", GameType: models.GameTypeCoinflip},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockGameRepo.On("GetByUser", ctx, "u-1", DefaultHistoryLimit).Return(records, nil)

	result, err := svc.History(ctx, "u-1", 0)

	assert.NoError(t, err)
	assert.Equal(t, records, result)
	mockGameRepo.AssertExpectations(t)
}
