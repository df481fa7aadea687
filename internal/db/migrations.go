package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
// Each statement is idempotent so reopening the database is safe.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              TEXT    PRIMARY KEY,
		email           TEXT    NOT NULL UNIQUE,
		display_name    TEXT    NOT NULL DEFAULT '',
		mobile          TEXT    NOT NULL DEFAULT '',
		password_hash   TEXT    NOT NULL,
		roles           TEXT    NOT NULL,
		remembered_role TEXT    NOT NULL DEFAULT '',
		created_at      DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS listings (
		id         TEXT    PRIMARY KEY,
		title      TEXT    NOT NULL,
		community  TEXT    NOT NULL DEFAULT '',
		price      INTEGER NOT NULL,
		bedrooms   REAL    NOT NULL DEFAULT 0,
		bathrooms  REAL    NOT NULL DEFAULT 0,
		sqft       INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id          TEXT    PRIMARY KEY,
		title       TEXT    NOT NULL,
		message     TEXT    NOT NULL DEFAULT '',
		type        TEXT    NOT NULL DEFAULT 'generic',
		target_role TEXT    NOT NULL,
		read        INTEGER NOT NULL DEFAULT 0,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS pay_accounts (
		account_number TEXT PRIMARY KEY,
		last_name      TEXT NOT NULL,
		holder_name    TEXT NOT NULL DEFAULT '',
		user_id        TEXT NOT NULL DEFAULT '',
		balance        TEXT NOT NULL DEFAULT '0',
		due_date       TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS payment_methods (
		id             TEXT PRIMARY KEY,
		account_number TEXT NOT NULL DEFAULT '',
		brand          TEXT NOT NULL,
		last4          TEXT NOT NULL,
		holder         TEXT NOT NULL DEFAULT '',
		expiry         TEXT NOT NULL DEFAULT '',
		created_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id             TEXT PRIMARY KEY,
		account_number TEXT NOT NULL,
		method_id      TEXT NOT NULL,
		amount         TEXT NOT NULL,
		created_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS preferences (
		user_id         TEXT PRIMARY KEY,
		remembered_role TEXT NOT NULL DEFAULT ''
	)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
