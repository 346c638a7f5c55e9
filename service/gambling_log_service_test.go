package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pokecasino/models"
)

func TestGamblingLogService_LogResult(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockGamblingLogRepo := new(MockGamblingLogRepository)
	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, mockGamblingLogRepo)

	svc := NewGamblingLogService(mockFactory)

	winner := &models.User{ID: "u-1", Username: "ash"}
	loser := &models.User{ID: "u-2", Username: "misty"}
	recorder := &models.User{ID: "u-3", Username: "brock"}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, "u-1").Return(winner, nil)
	mockUserRepo.On("GetByID", ctx, "u-2").Return(loser, nil)
	mockUserRepo.On("GetByID", ctx, "u-3").Return(recorder, nil)

	mockGamblingLogRepo.On("Create", ctx, mock.MatchedBy(func(e *models.GamblingLog) bool {
		return e.WinnerID == "u-1" && e.LoserID == "u-2" && e.LoggedBy == "u-3"
	})).Return(nil)

	entry, err := svc.LogResult(ctx, "u-1", "u-2", "u-3")

	assert.NoError(t, err)
	assert.Equal(t, "u-1", entry.WinnerID)
	assert.Equal(t, "u-2", entry.LoserID)
	mockGamblingLogRepo.AssertExpectations(t)
}

func TestGamblingLogService_LogResult_SameUser(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	svc := NewGamblingLogService(mockFactory)

	entry, err := svc.LogResult(ctx, "u-1", "u-1", "u-2")

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, entry)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestGamblingLogService_LogResult_UnknownUser(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockGamblingLogRepo := new(MockGamblingLogRepository)
	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, mockGamblingLogRepo)

	svc := NewGamblingLogService(mockFactory)

	winner := &models.User{ID: "u-1", Username: "ash"}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, "u-1").Return(winner, nil)
	mockUserRepo.On("GetByID", ctx, "missing").Return(nil, nil)

	entry, err := svc.LogResult(ctx, "u-1", "missing", "u-3")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, entry)
	mockGamblingLogRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGamblingLogService_LogResult_UnknownRecorder(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockGamblingLogRepo := new(MockGamblingLogRepository)
	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, mockGamblingLogRepo)

	svc := NewGamblingLogService(mockFactory)

	winner := &models.User{ID: "u-1", Username: "ash"}
	loser := &models.User{ID: "u-2", Username: "misty"}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, "u-1").Return(winner, nil)
	mockUserRepo.On("GetByID", ctx, "u-2").Return(loser, nil)
	mockUserRepo.On("GetByID", ctx, "ghost").Return(nil, nil)

	// The recorder must exist too, or the log row would dangle
	entry, err := svc.LogResult(ctx, "u-1", "u-2", "ghost")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, entry)
	mockGamblingLogRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGamblingLogService_Recent(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockGamblingLogRepo := new(MockGamblingLogRepository)
	mockUoW.SetRepositories(nil, nil, nil, nil, nil, nil, mockGamblingLogRepo)

	svc := NewGamblingLogService(mockFactory)

	logs := []*models.GamblingLog{
		{ID: "l-2", WinnerID: "u-1", LoserID: "u-2"},
		{ID: "l-1", WinnerID: "u-2", LoserID: "u-1"},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockGamblingLogRepo.On("GetRecent", ctx, DefaultLeaderboardLimit).Return(logs, nil)

	result, err := svc.Recent(ctx, 0)

	assert.NoError(t, err)
	assert.Equal(t, logs, result)
}
