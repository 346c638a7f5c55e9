package service

import (
	"context"
	"fmt"
	"time"

	"pokecasino/config"
	"pokecasino/events"
	"pokecasino/models"
)

// tournamentService implements the TournamentService interface
type tournamentService struct {
	uowFactory UnitOfWorkFactory
}

// NewTournamentService creates a new tournament service
func NewTournamentService(uowFactory UnitOfWorkFactory) TournamentService {
	return &tournamentService{
		uowFactory: uowFactory,
	}
}

// Create opens a tournament for registration. Fee fields are only honored when
// the fee economy is enabled; the bare variant carries size and participants.
func (s *tournamentService) Create(ctx context.Context, name string, size int, entryFee int64) (*models.Tournament, error) {
	if size <= 1 {
		return nil, fmt.Errorf("%w: tournament size must be at least 2", ErrInvalidInput)
	}
	cfg := config.Get()
	if !cfg.TournamentFeesEnabled {
		name = ""
		entryFee = 0
	} else if entryFee < 0 {
		return nil, fmt.Errorf("%w: entry fee cannot be negative", ErrInvalidInput)
	}

	tournament := &models.Tournament{
		Name:         name,
		Size:         size,
		Status:       models.TournamentStatusRegistration,
		Participants: []string{},
		EntryFee:     entryFee,
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if err := uow.TournamentRepository().Create(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return tournament, nil
}

// Join adds a participant. With fees enabled, the sufficiency check, the fee
// deduction, the prize pool increment and the membership append land in one
// unit of work; there is no check-then-refund window.
func (s *tournamentService) Join(ctx context.Context, tournamentID, userID string) (*models.Tournament, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tournament, err := uow.TournamentRepository().GetByID(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	if tournament == nil {
		return nil, ErrNotFound
	}

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if !tournament.IsOpen() {
		return nil, ErrTournamentClosed
	}
	if tournament.HasParticipant(userID) {
		return nil, ErrAlreadyJoined
	}
	if tournament.IsFull() {
		return nil, ErrTournamentFull
	}

	if config.Get().TournamentFeesEnabled && tournament.EntryFee > 0 {
		if user.PokecoinBalance < tournament.EntryFee {
			return nil, ErrInsufficientBalance
		}
		updated, err := uow.UserRepository().AdjustBalance(ctx, userID, -tournament.EntryFee)
		if err != nil {
			return nil, fmt.Errorf("failed to charge entry fee: %w", err)
		}

		entry := &models.BalanceEntry{
			UserID:        userID,
			BalanceBefore: user.PokecoinBalance,
			BalanceAfter:  updated.PokecoinBalance,
			ChangeAmount:  -tournament.EntryFee,
			Type:          models.TransactionTypeTournamentEntry,
			Metadata: map[string]any{
				"tournament_id": tournament.ID,
			},
		}
		if err := RecordBalanceChange(ctx, uow, entry); err != nil {
			return nil, fmt.Errorf("failed to record balance change: %w", err)
		}

		tournament.PrizePool += tournament.EntryFee
	}

	tournament.Participants = append(tournament.Participants, userID)
	if err := uow.TournamentRepository().Update(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to update tournament: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return tournament, nil
}

// Start advances the lifecycle. Without a winner: registration -> active, with
// startedAt set on the first call only. With a winner: -> completed, setting
// completedAt and winnerId; the winner must be a participant.
func (s *tournamentService) Start(ctx context.Context, tournamentID string, winnerID *string) (*models.Tournament, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tournament, err := uow.TournamentRepository().GetByID(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	if tournament == nil {
		return nil, ErrNotFound
	}
	if tournament.Status == models.TournamentStatusCompleted {
		return nil, ErrTournamentClosed
	}

	now := time.Now()
	if tournament.StartedAt == nil {
		tournament.StartedAt = &now
	}

	if winnerID == nil {
		tournament.Status = models.TournamentStatusActive
	} else {
		if !tournament.HasParticipant(*winnerID) {
			return nil, ErrWinnerNotParticipant
		}
		tournament.Status = models.TournamentStatusCompleted
		tournament.CompletedAt = &now
		tournament.WinnerID = winnerID

		if config.Get().TournamentFeesEnabled && tournament.PrizePool > 0 {
			winner, err := uow.UserRepository().GetByID(ctx, *winnerID)
			if err != nil {
				return nil, fmt.Errorf("failed to get winner: %w", err)
			}
			if winner == nil {
				return nil, ErrNotFound
			}
			updated, err := uow.UserRepository().AdjustBalance(ctx, *winnerID, tournament.PrizePool)
			if err != nil {
				return nil, fmt.Errorf("failed to pay prize: %w", err)
			}

			entry := &models.BalanceEntry{
				UserID:        *winnerID,
				BalanceBefore: winner.PokecoinBalance,
				BalanceAfter:  updated.PokecoinBalance,
				ChangeAmount:  tournament.PrizePool,
				Type:          models.TransactionTypeTournamentPrize,
				Metadata: map[string]any{
					"tournament_id": tournament.ID,
				},
			}
			if err := RecordBalanceChange(ctx, uow, entry); err != nil {
				return nil, fmt.Errorf("failed to record balance change: %w", err)
			}
		}

		uow.EventBus().Publish(events.TournamentCompletedEvent{
			TournamentID: tournament.ID,
			WinnerID:     *winnerID,
			PrizePool:    tournament.PrizePool,
		})
	}

	if err := uow.TournamentRepository().Update(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to update tournament: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return tournament, nil
}

// Get retrieves a tournament by id
func (s *tournamentService) Get(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tournament, err := uow.TournamentRepository().GetByID(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	if tournament == nil {
		return nil, ErrNotFound
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return tournament, nil
}

// List returns tournaments optionally filtered by status
func (s *tournamentService) List(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tournaments, err := uow.TournamentRepository().GetAll(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return tournaments, nil
}
