package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"pokecasino/events"
	"pokecasino/models"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, username string, initialBalance int64) (*models.User, error) {
	args := m.Called(ctx, username, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) AdjustBalance(ctx context.Context, id string, delta int64) (*models.User, error) {
	args := m.Called(ctx, id, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) SetLastDailyBonus(ctx context.Context, id string, claimedAt time.Time) error {
	args := m.Called(ctx, id, claimedAt)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

// MockBalanceEntryRepository is a mock implementation of BalanceEntryRepository
type MockBalanceEntryRepository struct {
	mock.Mock
}

func (m *MockBalanceEntryRepository) Record(ctx context.Context, entry *models.BalanceEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockBalanceEntryRepository) GetByUser(ctx context.Context, userID string, limit int) ([]*models.BalanceEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BalanceEntry), args.Error(1)
}

// MockGameRepository is a mock implementation of GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Create(ctx context.Context, record *models.GameRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockGameRepository) GetByUser(ctx context.Context, userID string, limit int) ([]*models.GameRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GameRecord), args.Error(1)
}

func (m *MockGameRepository) GetAll(ctx context.Context) ([]*models.GameRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GameRecord), args.Error(1)
}

// MockRollRepository is a mock implementation of RollRepository
type MockRollRepository struct {
	mock.Mock
}

func (m *MockRollRepository) Create(ctx context.Context, roll *models.PokemonRoll) error {
	args := m.Called(ctx, roll)
	return args.Error(0)
}

func (m *MockRollRepository) GetByUser(ctx context.Context, userID string, limit int) ([]*models.PokemonRoll, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PokemonRoll), args.Error(1)
}

func (m *MockRollRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// MockBonusRepository is a mock implementation of BonusRepository
type MockBonusRepository struct {
	mock.Mock
}

func (m *MockBonusRepository) Record(ctx context.Context, bonus *models.DailyBonus) error {
	args := m.Called(ctx, bonus)
	return args.Error(0)
}

func (m *MockBonusRepository) GetByUser(ctx context.Context, userID string) ([]*models.DailyBonus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DailyBonus), args.Error(1)
}

// MockTournamentRepository is a mock implementation of TournamentRepository
type MockTournamentRepository struct {
	mock.Mock
}

func (m *MockTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	args := m.Called(ctx, tournament)
	return args.Error(0)
}

func (m *MockTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tournament), args.Error(1)
}

func (m *MockTournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	args := m.Called(ctx, tournament)
	return args.Error(0)
}

func (m *MockTournamentRepository) GetAll(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tournament), args.Error(1)
}

// MockGamblingLogRepository is a mock implementation of GamblingLogRepository
type MockGamblingLogRepository struct {
	mock.Mock
}

func (m *MockGamblingLogRepository) Create(ctx context.Context, entry *models.GamblingLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockGamblingLogRepository) GetRecent(ctx context.Context, limit int) ([]*models.GamblingLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GamblingLog), args.Error(1)
}

func (m *MockGamblingLogRepository) GetStats(ctx context.Context, userID string) (*models.GamblingLogStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GamblingLogStats), args.Error(1)
}

// RecordingEventPublisher collects published events for assertions
type RecordingEventPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *RecordingEventPublisher) Publish(event events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *RecordingEventPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Event, len(p.events))
	copy(out, p.events)
	return out
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// plain fields set via SetRepositories; lifecycle methods go through mock.Mock.
type MockUnitOfWork struct {
	mock.Mock

	userRepo         UserRepository
	balanceEntryRepo BalanceEntryRepository
	gameRepo         GameRepository
	rollRepo         RollRepository
	bonusRepo        BonusRepository
	tournamentRepo   TournamentRepository
	gamblingLogRepo  GamblingLogRepository
	eventBus         *RecordingEventPublisher
}

// SetRepositories wires the repository doubles into the unit of work. Nil is
// fine for repositories a test never touches.
func (m *MockUnitOfWork) SetRepositories(
	userRepo UserRepository,
	balanceEntryRepo BalanceEntryRepository,
	gameRepo GameRepository,
	rollRepo RollRepository,
	bonusRepo BonusRepository,
	tournamentRepo TournamentRepository,
	gamblingLogRepo GamblingLogRepository,
) {
	m.userRepo = userRepo
	m.balanceEntryRepo = balanceEntryRepo
	m.gameRepo = gameRepo
	m.rollRepo = rollRepo
	m.bonusRepo = bonusRepo
	m.tournamentRepo = tournamentRepo
	m.gamblingLogRepo = gamblingLogRepo
	m.eventBus = &RecordingEventPublisher{}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository { return m.userRepo }

func (m *MockUnitOfWork) BalanceEntryRepository() BalanceEntryRepository { return m.balanceEntryRepo }

func (m *MockUnitOfWork) GameRepository() GameRepository { return m.gameRepo }

func (m *MockUnitOfWork) RollRepository() RollRepository { return m.rollRepo }

func (m *MockUnitOfWork) BonusRepository() BonusRepository { return m.bonusRepo }

func (m *MockUnitOfWork) TournamentRepository() TournamentRepository { return m.tournamentRepo }

func (m *MockUnitOfWork) GamblingLogRepository() GamblingLogRepository { return m.gamblingLogRepo }

func (m *MockUnitOfWork) EventBus() EventPublisher { return m.eventBus }

// PublishedEvents exposes the events captured during the test
func (m *MockUnitOfWork) PublishedEvents() []events.Event {
	return m.eventBus.Events()
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
