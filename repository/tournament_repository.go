package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"pokecasino/database"
	"pokecasino/models"
)

// TournamentRepository implements the service.TournamentRepository interface
type TournamentRepository struct {
	q queryable
}

// NewTournamentRepository creates a tournament repository over the connection pool
func NewTournamentRepository(db *database.DB) *TournamentRepository {
	return &TournamentRepository{q: db}
}

func newTournamentRepositoryWithTx(tx queryable) *TournamentRepository {
	return &TournamentRepository{q: tx}
}

const tournamentColumns = `id, name, size, status, participants, entry_fee, prize_pool, winner_id, created_at, started_at, completed_at`

// Create persists a new tournament
func (r *TournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	tournament.ID = uuid.NewString()
	tournament.CreatedAt = time.Now()

	participants, err := json.Marshal(tournament.Participants)
	if err != nil {
		return fmt.Errorf("failed to marshal participants: %w", err)
	}

	query := `
		INSERT INTO tournaments (id, name, size, status, participants, entry_fee, prize_pool, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := r.q.Exec(ctx, query,
		tournament.ID, tournament.Name, tournament.Size, tournament.Status,
		participants, tournament.EntryFee, tournament.PrizePool, tournament.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

// GetByID retrieves a tournament by id, nil when absent
func (r *TournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`

	tournament, err := scanTournament(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament %s: %w", id, err)
	}
	return tournament, nil
}

// Update persists lifecycle and participant changes
func (r *TournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	participants, err := json.Marshal(tournament.Participants)
	if err != nil {
		return fmt.Errorf("failed to marshal participants: %w", err)
	}

	query := `
		UPDATE tournaments
		SET status = $1, participants = $2, prize_pool = $3, winner_id = $4,
		    started_at = $5, completed_at = $6
		WHERE id = $7
	`
	result, err := r.q.Exec(ctx, query,
		tournament.Status, participants, tournament.PrizePool, tournament.WinnerID,
		tournament.StartedAt, tournament.CompletedAt, tournament.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tournament %s: %w", tournament.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("tournament %s not found", tournament.ID)
	}
	return nil
}

// GetAll returns tournaments, optionally filtered by exact status, most
// recently created first
func (r *TournamentRepository) GetAll(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments`
	var args []any
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournaments: %w", err)
	}
	defer rows.Close()

	var tournaments []*models.Tournament
	for rows.Next() {
		tournament, err := scanTournamentRow(rows)
		if err != nil {
			return nil, err
		}
		tournaments = append(tournaments, tournament)
	}
	return tournaments, rows.Err()
}

func scanTournament(row pgx.Row) (*models.Tournament, error) {
	tournament, err := scanTournamentRow(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return tournament, err
}

func scanTournamentRow(row pgx.Row) (*models.Tournament, error) {
	var tournament models.Tournament
	var participants []byte
	err := row.Scan(
		&tournament.ID, &tournament.Name, &tournament.Size, &tournament.Status,
		&participants, &tournament.EntryFee, &tournament.PrizePool, &tournament.WinnerID,
		&tournament.CreatedAt, &tournament.StartedAt, &tournament.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	tournament.Participants = []string{}
	if len(participants) > 0 {
		if err := json.Unmarshal(participants, &tournament.Participants); err != nil {
			return nil, fmt.Errorf("failed to unmarshal participants: %w", err)
		}
	}
	return &tournament, nil
}
