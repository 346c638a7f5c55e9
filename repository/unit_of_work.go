package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"pokecasino/database"
	"pokecasino/events"
	"pokecasino/service"
)

// unitOfWork implements the UnitOfWork interface over a single pgx transaction
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	userRepo         service.UserRepository
	balanceEntryRepo service.BalanceEntryRepository
	gameRepo         service.GameRepository
	rollRepo         service.RollRepository
	bonusRepo        service.BonusRepository
	tournamentRepo   service.TournamentRepository
	gamblingLogRepo  service.GamblingLogRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.userRepo = newUserRepositoryWithTx(tx)
	u.balanceEntryRepo = newBalanceEntryRepositoryWithTx(tx)
	u.gameRepo = newGameRepositoryWithTx(tx)
	u.rollRepo = newRollRepositoryWithTx(tx)
	u.bonusRepo = newBonusRepositoryWithTx(tx)
	u.tournamentRepo = newTournamentRepositoryWithTx(tx)
	u.gamblingLogRepo = newGamblingLogRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Flush()
	}

	return nil
}

// Rollback rolls back the transaction and discards pending events. Calling it
// after Commit is a no-op, which makes deferred rollbacks safe.
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() service.UserRepository {
	if u.userRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userRepo
}

// BalanceEntryRepository returns the balance entry repository for this unit of work
func (u *unitOfWork) BalanceEntryRepository() service.BalanceEntryRepository {
	if u.balanceEntryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.balanceEntryRepo
}

// GameRepository returns the game repository for this unit of work
func (u *unitOfWork) GameRepository() service.GameRepository {
	if u.gameRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.gameRepo
}

// RollRepository returns the roll repository for this unit of work
func (u *unitOfWork) RollRepository() service.RollRepository {
	if u.rollRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.rollRepo
}

// BonusRepository returns the bonus repository for this unit of work
func (u *unitOfWork) BonusRepository() service.BonusRepository {
	if u.bonusRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.bonusRepo
}

// TournamentRepository returns the tournament repository for this unit of work
func (u *unitOfWork) TournamentRepository() service.TournamentRepository {
	if u.tournamentRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.tournamentRepo
}

// GamblingLogRepository returns the gambling log repository for this unit of work
func (u *unitOfWork) GamblingLogRepository() service.GamblingLogRepository {
	if u.gamblingLogRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.gamblingLogRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
