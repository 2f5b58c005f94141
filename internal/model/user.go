package model

import (
	"database/sql"
	"time"
)

// User mirrors a row of user_t. Rows are created at sign-up and read back
// by authentication and profile display; nothing in this app mutates them.
type User struct {
	ID           int64          `db:"id" json:"id"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
	Email        string         `db:"email" json:"email"`
	Name         sql.NullString `db:"name" json:"name"`
	TOSAccepted  bool           `db:"tos_accepted" json:"tos_accepted"`
	PasswordHash []byte         `db:"password_hash" json:"-"`
}
