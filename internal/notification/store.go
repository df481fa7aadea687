package notification

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/karimbakri/homeport/internal/session"
)

// Store holds notifications in insertion order and serves role-filtered
// views. It is authoritative in memory; when constructed with a repository
// it loads existing rows once and mirrors every mutation back.
//
// Ordering is insertion order by contract; newest-first sorting is a
// presentation concern.
type Store struct {
	mu    sync.Mutex
	items []Notification
	repo  *Repository
}

// NewStore creates a notification store. repo may be nil for a purely
// in-memory store.
func NewStore(repo *Repository) (*Store, error) {
	s := &Store{repo: repo}
	if repo != nil {
		items, err := repo.All()
		if err != nil {
			return nil, fmt.Errorf("loading notifications: %w", err)
		}
		s.items = items
	}
	return s, nil
}

// Add appends a notification. An empty ID gets a generated one and a zero
// CreatedAt gets the current time. No deduplication.
func (s *Store) Add(n Notification) (Notification, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if n.Type == "" {
		n.Type = TypeGeneric
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.Insert(n); err != nil {
			return Notification{}, err
		}
	}
	s.items = append(s.items, n)
	return n, nil
}

// ForRole returns notifications targeting the role, in insertion order.
// A role with none yields an empty slice, never an error.
func (s *Store) ForRole(role session.Role) []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Notification{}
	for _, n := range s.items {
		if n.TargetRole == role {
			out = append(out, n)
		}
	}
	return out
}

// UnreadCount returns the number of unread notifications for the role.
// Recomputed on every call so it never drifts from the collection.
func (s *Store) UnreadCount(role session.Role) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.items {
		if n.TargetRole == role && !n.Read {
			count++
		}
	}
	return count
}

// MarkAllRead marks every notification read, regardless of target role.
// This matches the historical app behavior; MarkRoleRead is the scoped
// variant.
func (s *Store) MarkAllRead() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.MarkAllRead(); err != nil {
			return err
		}
	}
	for i := range s.items {
		s.items[i].Read = true
	}
	return nil
}

// MarkRoleRead marks only the given role's notifications read, leaving
// other roles' unread state intact.
func (s *Store) MarkRoleRead(role session.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.MarkRoleRead(role); err != nil {
			return err
		}
	}
	for i := range s.items {
		if s.items[i].TargetRole == role {
			s.items[i].Read = true
		}
	}
	return nil
}

// Len returns the total number of notifications across all roles.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Reset drops all in-memory notifications. Persisted rows are untouched;
// this exists for the reset-on-sign-out policy which only clears the
// session-visible view.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}
