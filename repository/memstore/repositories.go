package memstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pokecasino/models"
)

// userRepository implements service.UserRepository
type userRepository struct {
	uow *unitOfWork
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return copyUser(r.uow.store.users[id]), nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, id := range r.uow.store.userOrder {
		if user := r.uow.store.users[id]; user != nil && user.Username == username {
			return copyUser(user), nil
		}
	}
	return nil, nil
}

func (r *userRepository) Create(ctx context.Context, username string, initialBalance int64) (*models.User, error) {
	for _, id := range r.uow.store.userOrder {
		if user := r.uow.store.users[id]; user != nil && user.Username == username {
			return nil, fmt.Errorf("username %q already exists", username)
		}
	}

	user := &models.User{
		ID:              uuid.NewString(),
		Username:        username,
		PokecoinBalance: initialBalance,
		TotalEarned:     0,
		TotalSpent:      0,
		CreatedAt:       time.Now(),
	}

	store := r.uow.store
	store.users[user.ID] = user
	store.userOrder = append(store.userOrder, user.ID)

	r.uow.pushUndo(func() {
		delete(store.users, user.ID)
		store.userOrder = store.userOrder[:len(store.userOrder)-1]
	})

	return copyUser(user), nil
}

func (r *userRepository) AdjustBalance(ctx context.Context, id string, delta int64) (*models.User, error) {
	user := r.uow.store.users[id]
	if user == nil {
		return nil, fmt.Errorf("user %s not found", id)
	}

	prev := copyUser(user)
	user.PokecoinBalance += delta
	if delta > 0 {
		user.TotalEarned += delta
	} else if delta < 0 {
		user.TotalSpent += -delta
	}

	store := r.uow.store
	r.uow.pushUndo(func() {
		store.users[id] = prev
	})

	return copyUser(user), nil
}

func (r *userRepository) SetLastDailyBonus(ctx context.Context, id string, claimedAt time.Time) error {
	user := r.uow.store.users[id]
	if user == nil {
		return fmt.Errorf("user %s not found", id)
	}

	prev := user.LastDailyBonus
	user.LastDailyBonus = &claimedAt
	r.uow.pushUndo(func() {
		user.LastDailyBonus = prev
	})

	return nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(r.uow.store.userOrder))
	for _, id := range r.uow.store.userOrder {
		users = append(users, copyUser(r.uow.store.users[id]))
	}
	return users, nil
}

// balanceEntryRepository implements service.BalanceEntryRepository
type balanceEntryRepository struct {
	uow *unitOfWork
}

func (r *balanceEntryRepository) Record(ctx context.Context, entry *models.BalanceEntry) error {
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()

	store := r.uow.store
	store.balanceEntries = append(store.balanceEntries, entry)
	r.uow.pushUndo(func() {
		store.balanceEntries = store.balanceEntries[:len(store.balanceEntries)-1]
	})

	return nil
}

func (r *balanceEntryRepository) GetByUser(ctx context.Context, userID string, limit int) ([]*models.BalanceEntry, error) {
	var entries []*models.BalanceEntry
	for i := len(r.uow.store.balanceEntries) - 1; i >= 0 && len(entries) < limit; i-- {
		if entry := r.uow.store.balanceEntries[i]; entry.UserID == userID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// gameRepository implements service.GameRepository
type gameRepository struct {
	uow *unitOfWork
}

func (r *gameRepository) Create(ctx context.Context, record *models.GameRecord) error {
	record.ID = uuid.NewString()
	record.Timestamp = time.Now()

	store := r.uow.store
	store.games = append(store.games, record)
	r.uow.pushUndo(func() {
		store.games = store.games[:len(store.games)-1]
	})

	return nil
}

func (r *gameRepository) GetByUser(ctx context.Context, userID string, limit int) ([]*models.GameRecord, error) {
	var records []*models.GameRecord
	for i := len(r.uow.store.games) - 1; i >= 0 && len(records) < limit; i-- {
		if record := r.uow.store.games[i]; record.UserID == userID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (r *gameRepository) GetAll(ctx context.Context) ([]*models.GameRecord, error) {
	return append([]*models.GameRecord(nil), r.uow.store.games...), nil
}

// rollRepository implements service.RollRepository
type rollRepository struct {
	uow *unitOfWork
}

func (r *rollRepository) Create(ctx context.Context, roll *models.PokemonRoll) error {
	roll.ID = uuid.NewString()
	roll.Timestamp = time.Now()

	store := r.uow.store
	store.rolls = append(store.rolls, roll)
	r.uow.pushUndo(func() {
		store.rolls = store.rolls[:len(store.rolls)-1]
	})

	return nil
}

func (r *rollRepository) GetByUser(ctx context.Context, userID string, limit int) ([]*models.PokemonRoll, error) {
	var rolls []*models.PokemonRoll
	for i := len(r.uow.store.rolls) - 1; i >= 0 && len(rolls) < limit; i-- {
		if roll := r.uow.store.rolls[i]; roll.UserID == userID {
			rolls = append(rolls, roll)
		}
	}
	return rolls, nil
}

func (r *rollRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, roll := range r.uow.store.rolls {
		if roll.UserID == userID {
			count++
		}
	}
	return count, nil
}

// bonusRepository implements service.BonusRepository
type bonusRepository struct {
	uow *unitOfWork
}

func (r *bonusRepository) Record(ctx context.Context, bonus *models.DailyBonus) error {
	bonus.ID = uuid.NewString()
	if bonus.Timestamp.IsZero() {
		bonus.Timestamp = time.Now()
	}

	store := r.uow.store
	store.bonuses = append(store.bonuses, bonus)
	r.uow.pushUndo(func() {
		store.bonuses = store.bonuses[:len(store.bonuses)-1]
	})

	return nil
}

func (r *bonusRepository) GetByUser(ctx context.Context, userID string) ([]*models.DailyBonus, error) {
	var bonuses []*models.DailyBonus
	for i := len(r.uow.store.bonuses) - 1; i >= 0; i-- {
		if bonus := r.uow.store.bonuses[i]; bonus.UserID == userID {
			bonuses = append(bonuses, bonus)
		}
	}
	return bonuses, nil
}

// tournamentRepository implements service.TournamentRepository
type tournamentRepository struct {
	uow *unitOfWork
}

func (r *tournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	tournament.ID = uuid.NewString()
	tournament.CreatedAt = time.Now()

	store := r.uow.store
	store.tournaments[tournament.ID] = copyTournament(tournament)
	store.tournamentOrder = append(store.tournamentOrder, tournament.ID)

	id := tournament.ID
	r.uow.pushUndo(func() {
		delete(store.tournaments, id)
		store.tournamentOrder = store.tournamentOrder[:len(store.tournamentOrder)-1]
	})

	return nil
}

func (r *tournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	return copyTournament(r.uow.store.tournaments[id]), nil
}

func (r *tournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	store := r.uow.store
	prev := store.tournaments[tournament.ID]
	if prev == nil {
		return fmt.Errorf("tournament %s not found", tournament.ID)
	}

	store.tournaments[tournament.ID] = copyTournament(tournament)
	r.uow.pushUndo(func() {
		store.tournaments[tournament.ID] = prev
	})

	return nil
}

func (r *tournamentRepository) GetAll(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error) {
	var tournaments []*models.Tournament
	// Most recently created first
	for i := len(r.uow.store.tournamentOrder) - 1; i >= 0; i-- {
		tournament := r.uow.store.tournaments[r.uow.store.tournamentOrder[i]]
		if status != nil && tournament.Status != *status {
			continue
		}
		tournaments = append(tournaments, copyTournament(tournament))
	}
	return tournaments, nil
}

// gamblingLogRepository implements service.GamblingLogRepository
type gamblingLogRepository struct {
	uow *unitOfWork
}

func (r *gamblingLogRepository) Create(ctx context.Context, entry *models.GamblingLog) error {
	entry.ID = uuid.NewString()
	entry.Timestamp = time.Now()

	store := r.uow.store
	store.gamblingLogs = append(store.gamblingLogs, entry)
	r.uow.pushUndo(func() {
		store.gamblingLogs = store.gamblingLogs[:len(store.gamblingLogs)-1]
	})

	return nil
}

func (r *gamblingLogRepository) GetRecent(ctx context.Context, limit int) ([]*models.GamblingLog, error) {
	var logs []*models.GamblingLog
	for i := len(r.uow.store.gamblingLogs) - 1; i >= 0 && len(logs) < limit; i-- {
		logs = append(logs, r.uow.store.gamblingLogs[i])
	}
	return logs, nil
}

func (r *gamblingLogRepository) GetStats(ctx context.Context, userID string) (*models.GamblingLogStats, error) {
	stats := &models.GamblingLogStats{}
	for _, entry := range r.uow.store.gamblingLogs {
		if entry.WinnerID == userID {
			stats.Wins++
		}
		if entry.LoserID == userID {
			stats.Losses++
		}
	}
	return stats, nil
}
