package memstore

import (
	"context"
	"fmt"

	"pokecasino/events"
	"pokecasino/service"
)

// unitOfWork implements service.UnitOfWork over the store's exclusive lock.
// Mutations push undo closures; Rollback replays them in reverse.
type unitOfWork struct {
	store    *Store
	bus      *events.TransactionalBus
	undo     []func()
	active   bool
	finished bool
}

type unitOfWorkFactory struct {
	store    *Store
	eventBus *events.Bus
}

// NewUnitOfWorkFactory creates a UnitOfWork factory backed by the store
func NewUnitOfWorkFactory(store *Store, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		store:    store,
		eventBus: eventBus,
	}
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		store: f.store,
		bus:   events.NewTransactionalBus(f.eventBus),
	}
}

// Begin takes the store lock. The lock is held until Commit or Rollback, which
// is what serializes compound read-then-write operations.
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.active || u.finished {
		return fmt.Errorf("transaction already started")
	}
	u.store.mu.Lock()
	u.active = true
	return nil
}

// Commit releases the lock and flushes pending events
func (u *unitOfWork) Commit() error {
	if !u.active {
		return fmt.Errorf("no active transaction")
	}
	u.active = false
	u.finished = true
	u.undo = nil
	u.store.mu.Unlock()
	u.bus.Flush()
	return nil
}

// Rollback undoes all mutations in reverse order and releases the lock.
// No-op after Commit, so it is safe to defer.
func (u *unitOfWork) Rollback() error {
	if !u.active {
		return nil
	}
	for i := len(u.undo) - 1; i >= 0; i-- {
		u.undo[i]()
	}
	u.undo = nil
	u.active = false
	u.finished = true
	u.store.mu.Unlock()
	u.bus.Discard()
	return nil
}

func (u *unitOfWork) pushUndo(fn func()) {
	u.undo = append(u.undo, fn)
}

func (u *unitOfWork) UserRepository() service.UserRepository {
	return &userRepository{uow: u}
}

func (u *unitOfWork) BalanceEntryRepository() service.BalanceEntryRepository {
	return &balanceEntryRepository{uow: u}
}

func (u *unitOfWork) GameRepository() service.GameRepository {
	return &gameRepository{uow: u}
}

func (u *unitOfWork) RollRepository() service.RollRepository {
	return &rollRepository{uow: u}
}

func (u *unitOfWork) BonusRepository() service.BonusRepository {
	return &bonusRepository{uow: u}
}

func (u *unitOfWork) TournamentRepository() service.TournamentRepository {
	return &tournamentRepository{uow: u}
}

func (u *unitOfWork) GamblingLogRepository() service.GamblingLogRepository {
	return &gamblingLogRepository{uow: u}
}

func (u *unitOfWork) EventBus() service.EventPublisher {
	return u.bus
}
