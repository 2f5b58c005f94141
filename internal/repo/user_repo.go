package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mkarlsson/webdemo/internal/model"
	appErr "github.com/mkarlsson/webdemo/internal/pkg/errors"
)

// Queryer is satisfied by *sqlx.DB, *sqlx.Tx and *sqlx.Conn, so the same
// repository code runs against the pool or inside a caller-declared
// transaction.
type Queryer interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
}

type UserRepo struct {
	q Queryer
}

func NewUserRepo(q Queryer) *UserRepo {
	return &UserRepo{q: q}
}

// Create inserts a user row and returns the generated id. A duplicate
// email surfaces as ErrConflict; the unique constraint in the database is
// the only guard against concurrent sign-ups with the same address.
func (r *UserRepo) Create(ctx context.Context, email, name string, passwordHash []byte, tosAccepted bool) (int64, error) {
	var id int64
	err := sqlx.GetContext(ctx, r.q, &id,
		`INSERT INTO user_t (email, name, tos_accepted, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		email, name, tosAccepted, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, appErr.ErrConflict
		}
		return 0, err
	}
	return id, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := sqlx.GetContext(ctx, r.q, &user,
		`SELECT id, created_at, updated_at, email, name, tos_accepted, password_hash
		 FROM user_t WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := sqlx.GetContext(ctx, r.q, &user,
		`SELECT id, created_at, updated_at, email, name, tos_accepted, password_hash
		 FROM user_t WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := sqlx.SelectContext(ctx, r.q, &users,
		`SELECT id, created_at, updated_at, email, name, tos_accepted, password_hash
		 FROM user_t ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// CountEmailLike counts users whose email contains needle as a substring.
func (r *UserRepo) CountEmailLike(ctx context.Context, needle string) (int64, error) {
	var count int64
	err := sqlx.GetContext(ctx, r.q, &count,
		`SELECT count(*) FROM user_t WHERE email LIKE '%' || $1 || '%'`, needle)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
