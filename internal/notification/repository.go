package notification

import (
	"database/sql"
	"fmt"

	"github.com/karimbakri/homeport/internal/session"
)

// Repository persists notifications in SQLite so seeded alerts and read
// state survive restarts.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a notification repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert adds a notification row.
func (r *Repository) Insert(n Notification) error {
	read := 0
	if n.Read {
		read = 1
	}
	if _, err := r.db.Exec(
		`INSERT INTO notifications (id, title, message, type, target_role, read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Message, string(n.Type), string(n.TargetRole), read, n.CreatedAt,
	); err != nil {
		return fmt.Errorf("inserting notification: %w", err)
	}
	return nil
}

// All returns every notification in insertion order.
func (r *Repository) All() ([]Notification, error) {
	rows, err := r.db.Query(
		`SELECT id, title, message, type, target_role, read, created_at
		 FROM notifications ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = fmt.Errorf("closing rows: %w", cerr)
		}
	}()

	var items []Notification
	for rows.Next() {
		var n Notification
		var typ, role string
		var read int
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &typ, &role, &read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		n.Type = Type(typ)
		n.TargetRole = session.Role(role)
		n.Read = read != 0
		items = append(items, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notifications: %w", err)
	}

	return items, nil
}

// MarkAllRead sets read on every row.
func (r *Repository) MarkAllRead() error {
	if _, err := r.db.Exec("UPDATE notifications SET read = 1"); err != nil {
		return fmt.Errorf("marking all read: %w", err)
	}
	return nil
}

// MarkRoleRead sets read on rows targeting the role.
func (r *Repository) MarkRoleRead(role session.Role) error {
	if _, err := r.db.Exec(
		"UPDATE notifications SET read = 1 WHERE target_role = ?", string(role),
	); err != nil {
		return fmt.Errorf("marking role read: %w", err)
	}
	return nil
}
