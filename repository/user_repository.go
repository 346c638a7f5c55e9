package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"pokecasino/database"
	"pokecasino/models"
)

// UserRepository implements the service.UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a user repository over the connection pool
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db}
}

// newUserRepositoryWithTx creates a user repository bound to a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

const userColumns = `id, username, pokecoin_balance, total_earned, total_spent, last_daily_bonus, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PokecoinBalance,
		&user.TotalEarned,
		&user.TotalSpent,
		&user.LastDailyBonus,
		&user.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by id, returning nil when absent
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return user, nil
}

// GetByUsername retrieves a user by their unique username, nil when absent
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username %q: %w", username, err)
	}
	return user, nil
}

// Create creates a new user with the initial balance
func (r *UserRepository) Create(ctx context.Context, username string, initialBalance int64) (*models.User, error) {
	query := `
		INSERT INTO users (id, username, pokecoin_balance)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, uuid.NewString(), username, initialBalance))
	if err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", username, err)
	}
	return user, nil
}

// AdjustBalance adds delta to a user's balance, maintaining lifetime totals.
// No lower bound is enforced here; callers pre-check sufficiency.
func (r *UserRepository) AdjustBalance(ctx context.Context, id string, delta int64) (*models.User, error) {
	query := `
		UPDATE users
		SET pokecoin_balance = pokecoin_balance + $1,
		    total_earned = total_earned + CASE WHEN $1 > 0 THEN $1 ELSE 0 END,
		    total_spent = total_spent + CASE WHEN $1 < 0 THEN -$1 ELSE 0 END
		WHERE id = $2
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, delta, id))
	if err != nil {
		return nil, fmt.Errorf("failed to adjust balance for user %s: %w", id, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", id)
	}
	return user, nil
}

// SetLastDailyBonus records the claim timestamp
func (r *UserRepository) SetLastDailyBonus(ctx context.Context, id string, claimedAt time.Time) error {
	query := `UPDATE users SET last_daily_bonus = $1 WHERE id = $2`

	result, err := r.q.Exec(ctx, query, claimedAt, id)
	if err != nil {
		return fmt.Errorf("failed to set bonus timestamp for user %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id)
	}
	return nil
}

// GetAll returns all users in insertion order
func (r *UserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC, id ASC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.PokecoinBalance,
			&user.TotalEarned,
			&user.TotalSpent,
			&user.LastDailyBonus,
			&user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}
