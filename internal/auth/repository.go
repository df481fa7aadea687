// Package auth verifies seeded demo credentials and produces the signed-in
// identity. Credentials never leave the device.
package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/karimbakri/homeport/internal/session"
)

// ErrUserNotFound signals an unknown email.
var ErrUserNotFound = errors.New("auth: user not found")

// User is a stored account with its credential hash.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	Mobile       string
	PasswordHash string
	Roles        []session.Role
}

// Repository manages user accounts in the local database.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a user repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// UserByEmail returns the account for an email, case-insensitively.
func (r *Repository) UserByEmail(email string) (*User, error) {
	row := r.db.QueryRow(
		`SELECT id, email, display_name, mobile, password_hash, roles
		 FROM users WHERE LOWER(email) = LOWER(?)`,
		strings.TrimSpace(email),
	)

	var u User
	var roles string
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.Mobile, &u.PasswordHash, &roles)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	u.Roles = parseRoles(roles)
	return &u, nil
}

// InsertUser stores an account. Existing rows are replaced so seeding is
// idempotent.
func (r *Repository) InsertUser(u User) error {
	if _, err := r.db.Exec(
		`INSERT OR REPLACE INTO users (id, email, display_name, mobile, password_hash, roles)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, strings.ToLower(strings.TrimSpace(u.Email)), u.DisplayName, u.Mobile,
		u.PasswordHash, joinRoles(u.Roles),
	); err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// parseRoles decodes the comma-separated roles column, dropping anything
// unrecognized.
func parseRoles(s string) []session.Role {
	var roles []session.Role
	for _, part := range strings.Split(s, ",") {
		role := session.Role(strings.TrimSpace(part))
		if session.ValidRole(role) {
			roles = append(roles, role)
		}
	}
	return roles
}

func joinRoles(roles []session.Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ",")
}
