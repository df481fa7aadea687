package roleswitch

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/karimbakri/homeport/internal/db"
	"github.com/karimbakri/homeport/internal/session"
)

const testDelay = 5 * time.Millisecond

func TestSwitchSameRoleIsNoOp(t *testing.T) {
	sessions := signedInStore(t, session.RoleBroker, session.RoleHomeowner)
	flow := NewFlow(sessions, nil, testDelay)

	committed, err := flow.Switch(context.Background(), session.RoleBroker, false)
	if err != nil {
		t.Fatalf("switch: %v", err)
	}
	if committed {
		t.Error("selecting the current role must not commit")
	}
	if got := sessions.CurrentRole(); got != session.RoleBroker {
		t.Errorf("role = %q, want broker", got)
	}
}

func TestSwitchCommits(t *testing.T) {
	sessions := signedInStore(t, session.RoleBroker, session.RoleHomeowner)
	flow := NewFlow(sessions, nil, testDelay)

	committed, err := flow.Switch(context.Background(), session.RoleHomeowner, false)
	if err != nil {
		t.Fatalf("switch: %v", err)
	}
	if !committed {
		t.Fatal("expected commit")
	}
	if got := sessions.CurrentRole(); got != session.RoleHomeowner {
		t.Errorf("role = %q, want homeowner", got)
	}
	if flow.State() != StateIdle {
		t.Errorf("state = %q, want idle after commit", flow.State())
	}
}

func TestSwitchRejectsForeignRole(t *testing.T) {
	sessions := signedInStore(t, session.RoleBroker)
	flow := NewFlow(sessions, nil, testDelay)

	_, err := flow.Switch(context.Background(), session.RoleBuyer, false)
	if !errors.Is(err, session.ErrRoleNotAvailable) {
		t.Fatalf("expected ErrRoleNotAvailable, got %v", err)
	}
	if got := sessions.CurrentRole(); got != session.RoleBroker {
		t.Errorf("role = %q, want unchanged broker", got)
	}
}

func TestSwitchRequiresSignIn(t *testing.T) {
	sessions := session.NewStore(nil, false)
	flow := NewFlow(sessions, nil, testDelay)

	_, err := flow.Switch(context.Background(), session.RoleBuyer, false)
	if !errors.Is(err, session.ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
}

func TestSwitchRemembers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	prefs := session.NewPrefStore(d)

	sessions := signedInStore(t, session.RoleBroker, session.RoleHomeowner)
	flow := NewFlow(sessions, prefs, testDelay)

	committed, err := flow.Switch(context.Background(), session.RoleHomeowner, true)
	if err != nil {
		t.Fatalf("switch: %v", err)
	}
	if !committed {
		t.Fatal("expected commit")
	}

	id, _ := sessions.CurrentIdentity()
	if id.RememberedRole != session.RoleHomeowner {
		t.Errorf("identity remembered role = %q, want homeowner", id.RememberedRole)
	}

	stored, err := prefs.RememberedRole(id.ID)
	if err != nil {
		t.Fatalf("read preference: %v", err)
	}
	if stored != session.RoleHomeowner {
		t.Errorf("persisted remembered role = %q, want homeowner", stored)
	}
}

func TestStaleSwitchDoesNotCommit(t *testing.T) {
	sessions := signedInStore(t, session.RoleBroker, session.RoleHomeowner)
	flow := NewFlow(sessions, nil, 50*time.Millisecond)

	done := make(chan struct{})
	var committed bool
	var switchErr error
	go func() {
		defer close(done)
		committed, switchErr = flow.Switch(context.Background(), session.RoleHomeowner, false)
	}()

	// Sign out while the switch delay is still running.
	time.Sleep(10 * time.Millisecond)
	sessions.SignOut()
	<-done

	if switchErr != nil {
		t.Fatalf("switch: %v", switchErr)
	}
	if committed {
		t.Error("a switch started under the old session must not commit")
	}
	if got := sessions.CurrentRole(); got != "" {
		t.Errorf("role after sign-out = %q, want empty", got)
	}
}

func TestSwitchCancelled(t *testing.T) {
	sessions := signedInStore(t, session.RoleBroker, session.RoleHomeowner)
	flow := NewFlow(sessions, nil, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var switchErr error
	go func() {
		defer close(done)
		_, switchErr = flow.Switch(ctx, session.RoleHomeowner, false)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()
	<-done

	if !errors.Is(switchErr, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", switchErr)
	}
	if got := sessions.CurrentRole(); got != session.RoleBroker {
		t.Errorf("role = %q, want unchanged broker", got)
	}
}

func TestConcurrentSwitchesCoalesce(t *testing.T) {
	sessions := signedInStore(t, session.RoleBroker, session.RoleHomeowner, session.RoleBuyer)
	flow := NewFlow(sessions, nil, 20*time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// All callers piggyback on the first pending switch.
			if _, err := flow.Switch(context.Background(), session.RoleHomeowner, false); err != nil {
				t.Errorf("switch: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := sessions.CurrentRole(); got != session.RoleHomeowner {
		t.Errorf("role = %q, want homeowner", got)
	}
	if flow.State() != StateIdle {
		t.Errorf("state = %q, want idle", flow.State())
	}
}

func signedInStore(t *testing.T, roles ...session.Role) *session.Store {
	t.Helper()
	store := session.NewStore(nil, false)
	if err := store.SignIn(session.Identity{
		ID:         "u1",
		Email:      "user@example.com",
		Roles:      roles,
		ActiveRole: roles[0],
	}); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	return store
}
