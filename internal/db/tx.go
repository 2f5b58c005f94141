package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// WithConn acquires one pooled connection for the duration of fn and
// releases it unconditionally when fn returns.
func WithConn(ctx context.Context, conn *sqlx.DB, fn func(c *sqlx.Conn) error) error {
	c, err := conn.Connx(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer c.Close()
	return fn(c)
}

// WithTx runs fn inside an explicit transaction: rolled back if fn returns
// an error or panics, committed otherwise. Transaction boundaries are
// always declared by the caller, never implicit.
func WithTx(ctx context.Context, conn *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()
	return fn(tx)
}
