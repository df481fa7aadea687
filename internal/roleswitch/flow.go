// Package roleswitch implements the role selector's switching flow: a
// guarded commit into the session store behind a fixed delay that models
// the eventual network round-trip.
package roleswitch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/karimbakri/homeport/internal/session"
)

// State is the flow's externally visible phase.
type State string

const (
	StateIdle      State = "idle"
	StateSwitching State = "switching"
)

// Flow coordinates role switches. At most one switch is in flight at a
// time: concurrent calls coalesce onto the pending one instead of
// interleaving writes into the session store.
type Flow struct {
	sessions *session.Store
	prefs    *session.PrefStore // may be nil
	delay    time.Duration
	group    singleflight.Group

	mu    sync.Mutex
	state State
}

// NewFlow creates a role switch flow. The delay stands in for the commit
// round-trip; tests pass something tiny.
func NewFlow(sessions *session.Store, prefs *session.PrefStore, delay time.Duration) *Flow {
	return &Flow{
		sessions: sessions,
		prefs:    prefs,
		delay:    delay,
		state:    StateIdle,
	}
}

// State returns the current flow phase, for the role selector modal.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = s
}

// Switch changes the active role to role after the fixed delay.
//
// Selecting the current role is a no-op and returns (false, nil).
// A role outside the identity's role set is rejected up front. When
// remember is set, the choice is also persisted as the advisory default
// for future sign-ins.
//
// A switch that outlives its session (sign-out or re-sign-in during the
// delay) commits nothing and returns (false, nil). Cancelling ctx abandons
// the switch.
func (f *Flow) Switch(ctx context.Context, role session.Role, remember bool) (bool, error) {
	id, ok := f.sessions.CurrentIdentity()
	if !ok {
		return false, session.ErrNotSignedIn
	}
	if role == id.ActiveRole {
		return false, nil
	}
	if !id.HasRole(role) {
		return false, session.ErrRoleNotAvailable
	}

	epoch := f.sessions.Epoch()

	v, err, _ := f.group.Do("switch", func() (interface{}, error) {
		f.setState(StateSwitching)
		defer f.setState(StateIdle)

		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return false, ctx.Err()
		}

		// The session changed underneath the pending switch; drop it.
		if f.sessions.Epoch() != epoch {
			slog.Debug("roleswitch: stale switch dropped", "role", string(role))
			return false, nil
		}

		if err := f.sessions.SetActiveRole(role); err != nil {
			return false, err
		}

		if remember {
			if err := f.sessions.SetRememberedRole(role); err != nil {
				return false, err
			}
			if f.prefs != nil {
				if err := f.prefs.SetRememberedRole(id.ID, role); err != nil {
					return false, err
				}
			}
		}

		slog.Info("roleswitch: committed", "user", id.ID, "role", string(role), "remember", remember)
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}
