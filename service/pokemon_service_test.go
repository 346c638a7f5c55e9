package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pokecasino/events"
	"pokecasino/models"
)

// stubDirectory serves a fixed snapshot regardless of the requested id
type stubDirectory struct {
	info *models.PokemonInfo
	err  error
}

func (d *stubDirectory) Fetch(ctx context.Context, id int) (*models.PokemonInfo, error) {
	if d.err != nil {
		return nil, d.err
	}
	info := *d.info
	info.ID = id
	return &info, nil
}

func TestPokemonService_RecordRoll(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockBalanceEntryRepo := new(MockBalanceEntryRepository)
	mockRollRepo := new(MockRollRepository)
	mockUoW.SetRepositories(mockUserRepo, mockBalanceEntryRepo, nil, mockRollRepo, nil, nil, nil)

	svc := NewPokemonService(mockFactory, &stubDirectory{})

	user := &models.User{ID: "u-1", Username: "ash", PokecoinBalance: 500}
	updated := &models.User{ID: "u-1", Username: "ash", PokecoinBalance: 400}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, "u-1").Return(user, nil)
	mockUserRepo.On("AdjustBalance", ctx, "u-1", int64(-100)).Return(updated, nil)
	mockRollRepo.On("Create", ctx, mock.MatchedBy(func(r *models.PokemonRoll) bool {
		return r.UserID == "u-1" && r.PokemonID == 25 && r.PokemonName == "pikachu" && r.Cost == 100
	})).Return(nil)
	mockBalanceEntryRepo.On("Record", ctx, mock.MatchedBy(func(e *models.BalanceEntry) bool {
		return e.Type == models.TransactionTypeRollCost &&
			e.ChangeAmount == -100 &&
			e.BalanceBefore == 500 &&
			e.BalanceAfter == 400
	})).Return(nil)

	roll, err := svc.RecordRoll(ctx, "u-1", 25, "pikachu", map[string]any{"types": []string{"electric"}}, 100)

	assert.NoError(t, err)
	assert.Equal(t, 25, roll.PokemonID)
	assert.Equal(t, int64(100), roll.Cost)
	mockUserRepo.AssertExpectations(t)
	mockRollRepo.AssertExpectations(t)
	mockBalanceEntryRepo.AssertExpectations(t)

	published := mockUoW.PublishedEvents()
	assert.Len(t, published, 1)
	rolled, ok := published[0].(events.PokemonRolledEvent)
	assert.True(t, ok)
	assert.Equal(t, "pikachu", rolled.PokemonName)
}

func TestPokemonService_RecordRoll_InsufficientBalance(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockRollRepo := new(MockRollRepository)
	mockUoW.SetRepositories(mockUserRepo, nil, nil, mockRollRepo, nil, nil, nil)

	svc := NewPokemonService(mockFactory, &stubDirectory{})

	user := &models.User{ID: "u-1", Username: "ash", PokecoinBalance: 50}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, "u-1").Return(user, nil)

	roll, err := svc.RecordRoll(ctx, "u-1", 25, "pikachu", nil, 100)

	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Nil(t, roll)
	mockUserRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
	mockRollRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPokemonService_RecordRoll_InvalidInput(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	svc := NewPokemonService(mockFactory, &stubDirectory{})

	_, err := svc.RecordRoll(ctx, "u-1", 0, "pikachu", nil, 100)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RecordRoll(ctx, "u-1", MaxPokemonID+1, "pikachu", nil, 100)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RecordRoll(ctx, "u-1", 25, "", nil, 100)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RecordRoll(ctx, "u-1", 25, "pikachu", nil, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	mockFactory.AssertNotCalled(t, "Create")
}

func TestPokemonService_FreeRoll(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockRollRepo := new(MockRollRepository)
	mockUoW.SetRepositories(mockUserRepo, nil, nil, mockRollRepo, nil, nil, nil)

	directory := &stubDirectory{info: &models.PokemonInfo{
		Name:   "bulbasaur",
		Height: 0.7,
		Weight: 6.9,
		Types:  []string{"grass", "poison"},
	}}
	svc := NewPokemonService(mockFactory, directory)

	user := &models.User{ID: "u-1", Username: "ash", PokecoinBalance: 0}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, "u-1").Return(user, nil)
	mockRollRepo.On("Create", ctx, mock.MatchedBy(func(r *models.PokemonRoll) bool {
		return r.UserID == "u-1" &&
			r.PokemonName == "bulbasaur" &&
			r.Cost == 0 &&
			r.PokemonID >= 1 && r.PokemonID <= MaxPokemonID
	})).Return(nil)

	roll, err := svc.FreeRoll(ctx, "u-1")

	assert.NoError(t, err)
	assert.Equal(t, "bulbasaur", roll.PokemonName)
	assert.Equal(t, int64(0), roll.Cost)
	assert.Equal(t, []string{"grass", "poison"}, roll.PokemonData["types"])

	// A free roll never moves the balance
	mockUserRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestPokemonService_FreeRoll_DirectoryError(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	directory := &stubDirectory{err: errors.New("pokeapi unreachable")}
	svc := NewPokemonService(mockFactory, directory)

	roll, err := svc.FreeRoll(ctx, "u-1")

	assert.Error(t, err)
	assert.Nil(t, roll)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestPokemonService_History_DefaultLimit(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockRollRepo := new(MockRollRepository)
	mockUoW.SetRepositories(nil, nil, nil, mockRollRepo, nil, nil, nil)

	svc := NewPokemonService(mockFactory, &stubDirectory{})

	rolls := []*models.PokemonRoll{{ID: "r-1", PokemonName: "pikachu"}}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockRollRepo.On("GetByUser", ctx, "u-1", DefaultHistoryLimit).Return(rolls, nil)

	result, err := svc.History(ctx, "u-1", 0)

	assert.NoError(t, err)
	assert.Equal(t, rolls, result)
}
