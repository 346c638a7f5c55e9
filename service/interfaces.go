package service

import (
	"context"
	"time"

	"pokecasino/events"
	"pokecasino/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by id, returning nil when absent
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByUsername retrieves a user by their unique username, nil when absent
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// Create creates a new user with the initial balance
	Create(ctx context.Context, username string, initialBalance int64) (*models.User, error)

	// AdjustBalance adds delta to a user's balance. Positive deltas add to
	// lifetime earned, negative deltas add to lifetime spent. No lower bound
	// is enforced here; callers pre-check sufficiency.
	AdjustBalance(ctx context.Context, id string, delta int64) (*models.User, error)

	// SetLastDailyBonus records the claim timestamp
	SetLastDailyBonus(ctx context.Context, id string, claimedAt time.Time) error

	// GetAll returns all users in insertion order
	GetAll(ctx context.Context) ([]*models.User, error)
}

// BalanceEntryRepository defines the interface for balance audit tracking
type BalanceEntryRepository interface {
	// Record creates a new balance entry
	Record(ctx context.Context, entry *models.BalanceEntry) error

	// GetByUser returns entries for a user, most recent first
	GetByUser(ctx context.Context, userID string, limit int) ([]*models.BalanceEntry, error)
}

// GameRepository defines the interface for gambling history access
type GameRepository interface {
	// Create appends an immutable game record
	Create(ctx context.Context, record *models.GameRecord) error

	// GetByUser returns a user's games, most recent first, truncated to limit
	GetByUser(ctx context.Context, userID string, limit int) ([]*models.GameRecord, error)

	// GetAll returns every game record
	GetAll(ctx context.Context) ([]*models.GameRecord, error)
}

// RollRepository defines the interface for Pokemon roll history access
type RollRepository interface {
	// Create appends an immutable roll record
	Create(ctx context.Context, roll *models.PokemonRoll) error

	// GetByUser returns a user's rolls, most recent first, truncated to limit
	GetByUser(ctx context.Context, userID string, limit int) ([]*models.PokemonRoll, error)

	// CountByUser returns the number of rolls recorded for a user
	CountByUser(ctx context.Context, userID string) (int, error)
}

// BonusRepository defines the interface for daily bonus records
type BonusRepository interface {
	// Record creates a new bonus record
	Record(ctx context.Context, bonus *models.DailyBonus) error

	// GetByUser returns a user's bonuses, most recent first
	GetByUser(ctx context.Context, userID string) ([]*models.DailyBonus, error)
}

// TournamentRepository defines the interface for tournament data access
type TournamentRepository interface {
	// Create persists a new tournament
	Create(ctx context.Context, tournament *models.Tournament) error

	// GetByID retrieves a tournament by id, nil when absent
	GetByID(ctx context.Context, id string) (*models.Tournament, error)

	// Update persists lifecycle and participant changes
	Update(ctx context.Context, tournament *models.Tournament) error

	// GetAll returns tournaments, optionally filtered by exact status,
	// most recently created first
	GetAll(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error)
}

// GamblingLogRepository defines the interface for win/loss log access
type GamblingLogRepository interface {
	// Create appends a log entry
	Create(ctx context.Context, entry *models.GamblingLog) error

	// GetRecent returns entries, most recent first, truncated to limit
	GetRecent(ctx context.Context, limit int) ([]*models.GamblingLog, error)

	// GetStats returns win/loss counts for a user
	GetStats(ctx context.Context, userID string) (*models.GamblingLogStats, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	BalanceEntryRepository() BalanceEntryRepository
	GameRepository() GameRepository
	RollRepository() RollRepository
	BonusRepository() BonusRepository
	TournamentRepository() TournamentRepository
	GamblingLogRepository() GamblingLogRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// PokemonDirectory is the external Pokemon lookup collaborator. It returns a
// fixed record shape by numeric id in [1, 1025]; failures propagate as roll
// failures.
type PokemonDirectory interface {
	Fetch(ctx context.Context, pokemonID int) (*models.PokemonInfo, error)
}

// UserService defines the interface for user and ledger operations
type UserService interface {
	// CreateUser creates a user with a unique username. A nil initialBalance
	// falls back to the configured starting balance.
	CreateUser(ctx context.Context, username string, initialBalance *int64) (*models.User, error)

	// GetUser retrieves a user by id
	GetUser(ctx context.Context, id string) (*models.User, error)

	// GetOrCreateByUsername retrieves an existing user or creates one with the
	// configured starting balance. Used by the bot surface.
	GetOrCreateByUsername(ctx context.Context, username string) (*models.User, error)

	// ClaimDailyBonus grants the fixed daily bonus if 24 hours have elapsed
	// since the previous claim
	ClaimDailyBonus(ctx context.Context, id string) (*models.User, error)

	// AdjustBalance applies a direct balance mutation (admin surface)
	AdjustBalance(ctx context.Context, id string, amount int64) (*models.User, error)
}

// GamblingService defines the interface for casino plays
type GamblingService interface {
	// Play resolves one bet: checks balance sufficiency, computes the outcome,
	// applies the net balance change and records the game atomically
	Play(ctx context.Context, userID string, gameType models.GameType, bet int64, choice string) (*models.PlayOutcome, error)

	// History returns a user's game records, most recent first
	History(ctx context.Context, userID string, limit int) ([]*models.GameRecord, error)
}

// PokemonService defines the interface for Pokemon rolls
type PokemonService interface {
	// RecordRoll charges the roll cost and records a client-supplied snapshot
	RecordRoll(ctx context.Context, userID string, pokemonID int, pokemonName string, pokemonData map[string]any, cost int64) (*models.PokemonRoll, error)

	// FreeRoll draws a random species, fetches its snapshot from the
	// directory and records it at zero cost (no-economy variant)
	FreeRoll(ctx context.Context, userID string) (*models.PokemonRoll, error)

	// History returns a user's rolls, most recent first
	History(ctx context.Context, userID string, limit int) ([]*models.PokemonRoll, error)
}

// TournamentService defines the interface for tournament lifecycle operations
type TournamentService interface {
	// Create opens a tournament for registration
	Create(ctx context.Context, name string, size int, entryFee int64) (*models.Tournament, error)

	// Join adds a participant, charging the entry fee when fees are enabled
	Join(ctx context.Context, tournamentID, userID string) (*models.Tournament, error)

	// Start transitions registration->active, or ->completed when a winner is
	// supplied. Idempotent on startedAt.
	Start(ctx context.Context, tournamentID string, winnerID *string) (*models.Tournament, error)

	// Get retrieves a tournament by id
	Get(ctx context.Context, tournamentID string) (*models.Tournament, error)

	// List returns tournaments optionally filtered by status
	List(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error)
}

// StatsService defines the interface for leaderboards and user statistics
type StatsService interface {
	// WealthLeaderboard returns users sorted by balance descending
	WealthLeaderboard(ctx context.Context, limit int) ([]*models.User, error)

	// GamblingLeaderboard returns users sorted by net winnings descending
	GamblingLeaderboard(ctx context.Context, limit int) ([]*models.GamblingLeaderboardEntry, error)

	// UserStats returns roll and logged win/loss counts for a user
	UserStats(ctx context.Context, userID string) (*models.UserStats, error)
}

// GamblingLogService defines the interface for externally-adjudicated results
type GamblingLogService interface {
	// LogResult records a win/loss pair adjudicated outside the game engine
	LogResult(ctx context.Context, winnerID, loserID, loggedBy string) (*models.GamblingLog, error)

	// Recent returns log entries, most recent first
	Recent(ctx context.Context, limit int) ([]*models.GamblingLog, error)
}
