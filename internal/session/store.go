package session

import (
	"errors"
	"log/slog"
	"sync"
)

var (
	// ErrInvalidIdentity signals a sign-in with an empty or inconsistent role set.
	ErrInvalidIdentity = errors.New("session: identity must carry at least one role")
	// ErrRoleNotAvailable signals a role outside the identity's role set.
	ErrRoleNotAvailable = errors.New("session: role not in identity's role set")
	// ErrNotSignedIn signals an operation that requires a current identity.
	ErrNotSignedIn = errors.New("session: not signed in")
)

// Store is the single source of truth for the current identity and its
// active role. Role-gated screens read it; nothing else duplicates role
// state. The epoch counter increments on every sign-in and sign-out so
// in-flight flows started under an old identity can detect they are stale.
type Store struct {
	mu       sync.Mutex
	identity *Identity
	token    string
	epoch    uint64
	issuer   *TokenIssuer
	devMode  bool
}

// NewStore creates an empty session store. The issuer may be nil, in which
// case no device token is minted on sign-in. In dev mode, caller programming
// errors are additionally logged.
func NewStore(issuer *TokenIssuer, devMode bool) *Store {
	return &Store{issuer: issuer, devMode: devMode}
}

// SignIn replaces the current identity wholesale. The identity must carry a
// non-empty role set, and its active role, when preset, must be a member of
// that set. A remembered role that is still a member of the role set takes
// precedence over the preset active role; otherwise the first role is used.
func (s *Store) SignIn(id Identity) error {
	if len(id.Roles) == 0 {
		s.assertf("sign-in rejected: empty role set", "user", id.ID)
		return ErrInvalidIdentity
	}
	if id.ActiveRole != "" && !id.HasRole(id.ActiveRole) {
		s.assertf("sign-in rejected: active role outside role set", "user", id.ID, "role", string(id.ActiveRole))
		return ErrInvalidIdentity
	}

	if id.RememberedRole != "" && id.HasRole(id.RememberedRole) {
		id.ActiveRole = id.RememberedRole
	}
	if id.ActiveRole == "" {
		id.ActiveRole = id.Roles[0]
	}

	var token string
	if s.issuer != nil {
		var err error
		token, err = s.issuer.Issue(id)
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = &id
	s.token = token
	s.epoch++
	return nil
}

// SetActiveRole switches the active role. The role must be a member of the
// current identity's role set; on guard failure nothing is mutated.
func (s *Store) SetActiveRole(r Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == nil {
		return ErrNotSignedIn
	}
	if !s.identity.HasRole(r) {
		s.assertf("active role rejected: not in role set", "user", s.identity.ID, "role", string(r))
		return ErrRoleNotAvailable
	}

	s.identity.ActiveRole = r
	return nil
}

// SetRememberedRole records r as the advisory default for future sign-ins.
// Nothing applies it automatically except SignIn.
func (s *Store) SetRememberedRole(r Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == nil {
		return ErrNotSignedIn
	}
	if !s.identity.HasRole(r) {
		return ErrRoleNotAvailable
	}

	s.identity.RememberedRole = r
	return nil
}

// SignOut clears the identity and device token. The epoch bump invalidates
// any flow still holding a reference to the previous session.
func (s *Store) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	s.token = ""
	s.epoch++
}

// CurrentIdentity returns a copy of the current identity, if any.
func (s *Store) CurrentIdentity() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return Identity{}, false
	}
	id := *s.identity
	id.Roles = append([]Role(nil), s.identity.Roles...)
	return id, true
}

// CurrentRole returns the active role, or empty pre-authentication.
func (s *Store) CurrentRole() Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return ""
	}
	return s.identity.ActiveRole
}

// Token returns the device token minted at sign-in, if any.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Epoch returns the current session generation.
func (s *Store) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// assertf logs a caller programming error in dev mode. Guard errors are
// still returned to the caller either way.
func (s *Store) assertf(msg string, args ...any) {
	if s.devMode {
		slog.Error("session: "+msg, args...)
	}
}
