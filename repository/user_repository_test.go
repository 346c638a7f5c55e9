package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokecasino/repository/testutil"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("user not found", func(t *testing.T) {
		user, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
		require.NoError(t, err)
		assert.Nil(t, user)

		user, err = repo.GetByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("create and retrieve", func(t *testing.T) {
		created, err := repo.Create(ctx, "ash", 1000)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "ash", created.Username)
		assert.Equal(t, int64(1000), created.PokecoinBalance)
		assert.Zero(t, created.TotalEarned)
		assert.Zero(t, created.TotalSpent)
		assert.Nil(t, created.LastDailyBonus)
		assert.False(t, created.CreatedAt.IsZero())

		byID, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, created.Username, byID.Username)

		byName, err := repo.GetByUsername(ctx, "ash")
		require.NoError(t, err)
		require.NotNil(t, byName)
		assert.Equal(t, created.ID, byName.ID)
	})

	t.Run("duplicate username constraint", func(t *testing.T) {
		_, err := repo.Create(ctx, "misty", 500)
		require.NoError(t, err)

		_, err = repo.Create(ctx, "misty", 500)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unique") // PostgreSQL unique constraint error
	})
}

func TestUserRepository_AdjustBalance(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, err := repo.Create(ctx, "ash", 1000)
	require.NoError(t, err)

	t.Run("positive delta adds to total earned", func(t *testing.T) {
		updated, err := repo.AdjustBalance(ctx, user.ID, 250)
		require.NoError(t, err)
		assert.Equal(t, int64(1250), updated.PokecoinBalance)
		assert.Equal(t, int64(250), updated.TotalEarned)
		assert.Equal(t, int64(0), updated.TotalSpent)
	})

	t.Run("negative delta adds to total spent", func(t *testing.T) {
		updated, err := repo.AdjustBalance(ctx, user.ID, -100)
		require.NoError(t, err)
		assert.Equal(t, int64(1150), updated.PokecoinBalance)
		assert.Equal(t, int64(250), updated.TotalEarned)
		assert.Equal(t, int64(100), updated.TotalSpent)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := repo.AdjustBalance(ctx, "00000000-0000-0000-0000-000000000000", 10)
		assert.Error(t, err)
	})
}

func TestUserRepository_SetLastDailyBonus(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, err := repo.Create(ctx, "ash", 1000)
	require.NoError(t, err)

	claimedAt := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, repo.SetLastDailyBonus(ctx, user.ID, claimedAt))

	fresh, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, fresh.LastDailyBonus)
	assert.WithinDuration(t, claimedAt, *fresh.LastDailyBonus, time.Millisecond)

	t.Run("unknown user", func(t *testing.T) {
		err := repo.SetLastDailyBonus(ctx, "00000000-0000-0000-0000-000000000000", claimedAt)
		assert.Error(t, err)
	})
}

func TestUserRepository_GetAll(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	for _, name := range []string{"ash", "misty", "brock"} {
		_, err := repo.Create(ctx, name, 1000)
		require.NoError(t, err)
	}

	users, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	// Insertion order is preserved so leaderboard ties stay stable
	assert.Equal(t, "ash", users[0].Username)
	assert.Equal(t, "misty", users[1].Username)
	assert.Equal(t, "brock", users[2].Username)
}
