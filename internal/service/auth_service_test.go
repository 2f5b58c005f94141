package service_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/mkarlsson/webdemo/internal/pkg/errors"
	"github.com/mkarlsson/webdemo/internal/repo"
	"github.com/mkarlsson/webdemo/internal/service"
	"github.com/mkarlsson/webdemo/internal/testutil"
)

func TestAuthenticate(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	testutil.WithRollback(t, conn, func(tx *sqlx.Tx) {
		auth := service.NewAuthService(repo.NewUserRepo(tx))
		ctx := context.Background()

		id, err := auth.CreateUser(ctx, "a@b.com", "A", "secret", true)
		require.NoError(t, err)

		gotID, err := auth.Authenticate(ctx, "a@b.com", "secret")
		require.NoError(t, err)
		require.Equal(t, id, gotID)

		// Wrong password and nonexistent email yield the same outcome.
		_, err = auth.Authenticate(ctx, "a@b.com", "incorrect")
		require.ErrorIs(t, err, errors.ErrUnauthorized)
		_, err = auth.Authenticate(ctx, "does@not.exist", "secret")
		require.ErrorIs(t, err, errors.ErrUnauthorized)
	})
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	testutil.WithRollback(t, conn, func(tx *sqlx.Tx) {
		auth := service.NewAuthService(repo.NewUserRepo(tx))
		ctx := context.Background()

		_, err := auth.CreateUser(ctx, "dup@b.com", "A", "secret", false)
		require.NoError(t, err)
		_, err = auth.CreateUser(ctx, "dup@b.com", "B", "secret", false)
		require.ErrorIs(t, err, errors.ErrConflict)
	})
}

func TestListUsers(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	testutil.WithRollback(t, conn, func(tx *sqlx.Tx) {
		auth := service.NewAuthService(repo.NewUserRepo(tx))
		ctx := context.Background()

		before, err := auth.ListUsers(ctx)
		require.NoError(t, err)

		idA, err := auth.CreateUser(ctx, "svc-a@b.com", "A", "secret", false)
		require.NoError(t, err)
		idB, err := auth.CreateUser(ctx, "svc-b@b.com", "B", "secret", false)
		require.NoError(t, err)

		after, err := auth.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, after, len(before)+2)

		found := map[int64]bool{}
		for _, u := range after {
			found[u.ID] = true
		}
		require.True(t, found[idA])
		require.True(t, found[idB])
	})
}
