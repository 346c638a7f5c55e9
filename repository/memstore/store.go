// Package memstore provides the process-local data store. It implements the
// same UnitOfWork contract as the Postgres repositories: a unit of work takes
// the store's exclusive lock on Begin and keeps an undo journal, so compound
// operations (sufficiency check + deduction + record) are atomic and
// serialized with respect to each other.
package memstore

import (
	"sync"

	"pokecasino/models"
)

// Store holds all process-local state. Everything is unreplicated and lost on
// restart; durability comes from swapping in the Postgres repositories.
type Store struct {
	mu sync.Mutex

	users     map[string]*models.User
	userOrder []string

	tournaments     map[string]*models.Tournament
	tournamentOrder []string

	games          []*models.GameRecord
	rolls          []*models.PokemonRoll
	bonuses        []*models.DailyBonus
	gamblingLogs   []*models.GamblingLog
	balanceEntries []*models.BalanceEntry
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users:       make(map[string]*models.User),
		tournaments: make(map[string]*models.Tournament),
	}
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	if u.LastDailyBonus != nil {
		t := *u.LastDailyBonus
		c.LastDailyBonus = &t
	}
	return &c
}

func copyTournament(t *models.Tournament) *models.Tournament {
	if t == nil {
		return nil
	}
	c := *t
	c.Participants = append([]string(nil), t.Participants...)
	if t.WinnerID != nil {
		id := *t.WinnerID
		c.WinnerID = &id
	}
	if t.StartedAt != nil {
		ts := *t.StartedAt
		c.StartedAt = &ts
	}
	if t.CompletedAt != nil {
		ts := *t.CompletedAt
		c.CompletedAt = &ts
	}
	return &c
}
