package repo_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/mkarlsson/webdemo/internal/pkg/errors"
	"github.com/mkarlsson/webdemo/internal/pkg/password"
	"github.com/mkarlsson/webdemo/internal/repo"
	"github.com/mkarlsson/webdemo/internal/testutil"
)

func mustHash(t *testing.T, plain string) []byte {
	t.Helper()
	hash, err := password.Hash(plain)
	require.NoError(t, err)
	return hash
}

func TestCreateUserGeneratesDistinctIDs(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	testutil.WithRollback(t, conn, func(tx *sqlx.Tx) {
		users := repo.NewUserRepo(tx)
		ctx := context.Background()

		idA, err := users.Create(ctx, "a@example.com", "A", mustHash(t, "1234"), false)
		require.NoError(t, err)
		idB, err := users.Create(ctx, "b@example.com", "B", mustHash(t, "1234"), false)
		require.NoError(t, err)

		require.NotEqual(t, idA, idB)
	})
}

func TestCreateUserDuplicateEmailConflicts(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	testutil.WithRollback(t, conn, func(tx *sqlx.Tx) {
		users := repo.NewUserRepo(tx)
		ctx := context.Background()

		_, err := users.Create(ctx, "dup@example.com", "A", mustHash(t, "1234"), false)
		require.NoError(t, err)
		_, err = users.Create(ctx, "dup@example.com", "B", mustHash(t, "1234"), false)
		require.ErrorIs(t, err, errors.ErrConflict)
	})
}

func TestListUsersSeesCreatedRows(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	testutil.WithRollback(t, conn, func(tx *sqlx.Tx) {
		users := repo.NewUserRepo(tx)
		ctx := context.Background()

		before, err := users.List(ctx)
		require.NoError(t, err)

		idA, err := users.Create(ctx, "list-a@example.com", "A", mustHash(t, "1234"), false)
		require.NoError(t, err)
		idB, err := users.Create(ctx, "list-b@example.com", "B", mustHash(t, "1234"), false)
		require.NoError(t, err)

		after, err := users.List(ctx)
		require.NoError(t, err)
		require.Len(t, after, len(before)+2)

		seen := map[int64]bool{}
		for _, u := range after {
			seen[u.ID] = true
		}
		require.True(t, seen[idA])
		require.True(t, seen[idB])
	})
}

func TestGetUser(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	testutil.WithRollback(t, conn, func(tx *sqlx.Tx) {
		users := repo.NewUserRepo(tx)
		ctx := context.Background()

		_, err := users.GetByID(ctx, -9000)
		require.ErrorIs(t, err, errors.ErrNotFound)

		id, err := users.Create(ctx, "get@example.com", "G", mustHash(t, "1234"), true)
		require.NoError(t, err)

		user, err := users.GetByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "get@example.com", user.Email)
		require.True(t, user.TOSAccepted)
		require.NotEmpty(t, user.PasswordHash)
	})
}

func TestPasswordHashesAreSaltedPerRow(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	testutil.WithRollback(t, conn, func(tx *sqlx.Tx) {
		users := repo.NewUserRepo(tx)
		ctx := context.Background()

		idA, err := users.Create(ctx, "salt-a@example.com", "A", mustHash(t, "1234"), true)
		require.NoError(t, err)
		idB, err := users.Create(ctx, "salt-b@example.com", "B", mustHash(t, "1234"), true)
		require.NoError(t, err)

		userA, err := users.GetByID(ctx, idA)
		require.NoError(t, err)
		userB, err := users.GetByID(ctx, idB)
		require.NoError(t, err)

		require.NotEqual(t, userA.PasswordHash, userB.PasswordHash)
	})
}

func TestCountEmailLike(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	testutil.WithRollback(t, conn, func(tx *sqlx.Tx) {
		users := repo.NewUserRepo(tx)
		ctx := context.Background()

		_, err := users.Create(ctx, "search-one@example.com", "A", mustHash(t, "1234"), false)
		require.NoError(t, err)
		_, err = users.Create(ctx, "search-two@example.com", "B", mustHash(t, "1234"), false)
		require.NoError(t, err)

		count, err := users.CountEmailLike(ctx, "search-")
		require.NoError(t, err)
		require.Equal(t, int64(2), count)
	})
}
