package session

import (
	"database/sql"
	"fmt"
)

// PrefStore persists per-user preferences in SQLite. Today that is just the
// remembered role; the row is keyed by user id so preferences survive
// sign-out on the same device.
type PrefStore struct {
	db *sql.DB
}

// NewPrefStore creates a preference store.
func NewPrefStore(db *sql.DB) *PrefStore {
	return &PrefStore{db: db}
}

// RememberedRole returns the remembered role for a user, or empty if none
// has been recorded.
func (s *PrefStore) RememberedRole(userID string) (Role, error) {
	var role string
	err := s.db.QueryRow(
		"SELECT remembered_role FROM preferences WHERE user_id = ?", userID,
	).Scan(&role)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying preference: %w", err)
	}
	return Role(role), nil
}

// SetRememberedRole upserts the remembered role for a user.
func (s *PrefStore) SetRememberedRole(userID string, r Role) error {
	if _, err := s.db.Exec(
		`INSERT INTO preferences (user_id, remembered_role) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET remembered_role = excluded.remembered_role`,
		userID, string(r),
	); err != nil {
		return fmt.Errorf("storing preference: %w", err)
	}
	return nil
}

// Clear removes all preferences for a user.
func (s *PrefStore) Clear(userID string) error {
	if _, err := s.db.Exec("DELETE FROM preferences WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("clearing preference: %w", err)
	}
	return nil
}
