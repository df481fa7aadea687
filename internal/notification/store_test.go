package notification

import (
	"testing"

	"github.com/karimbakri/homeport/internal/session"
)

func TestAddAssignsIDAndTimestamp(t *testing.T) {
	store := memStore(t)

	n, err := store.Add(Notification{
		Title:      "New lead",
		TargetRole: session.RoleBroker,
		Type:       TypeLead,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if n.ID == "" {
		t.Error("expected generated id")
	}
	if n.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestAddNoDedup(t *testing.T) {
	store := memStore(t)

	same := Notification{Title: "Offer received", TargetRole: session.RoleHomeowner, Type: TypeOffer}
	if _, err := store.Add(same); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := store.Add(same); err != nil {
		t.Fatalf("second add: %v", err)
	}

	got := store.ForRole(session.RoleHomeowner)
	if len(got) != 2 {
		t.Fatalf("got %d notifications, want 2 (identical content is distinct)", len(got))
	}
}

func TestForRoleFiltersAndKeepsOrder(t *testing.T) {
	store := memStore(t)

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		if _, err := store.Add(Notification{Title: title, TargetRole: session.RoleBroker}); err != nil {
			t.Fatalf("add %s: %v", title, err)
		}
	}
	if _, err := store.Add(Notification{Title: "other", TargetRole: session.RoleBuyer}); err != nil {
		t.Fatalf("add other: %v", err)
	}

	got := store.ForRole(session.RoleBroker)
	if len(got) != 3 {
		t.Fatalf("got %d notifications, want 3", len(got))
	}
	for i, title := range titles {
		if got[i].Title != title {
			t.Errorf("position %d = %q, want %q (insertion order)", i, got[i].Title, title)
		}
	}
}

func TestForRoleEmpty(t *testing.T) {
	store := memStore(t)

	got := store.ForRole(session.RoleTenant)
	if got == nil {
		t.Fatal("expected empty slice, not nil")
	}
	if len(got) != 0 {
		t.Errorf("got %d notifications, want 0", len(got))
	}
}

func TestUnreadCount(t *testing.T) {
	store := memStore(t)

	for i := 0; i < 3; i++ {
		if _, err := store.Add(Notification{Title: "n", TargetRole: session.RoleBroker}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if _, err := store.Add(Notification{Title: "seen", TargetRole: session.RoleBroker, Read: true}); err != nil {
		t.Fatalf("add read: %v", err)
	}

	if got := store.UnreadCount(session.RoleBroker); got != 3 {
		t.Errorf("unread = %d, want 3", got)
	}
	if got := store.UnreadCount(session.RoleBuyer); got != 0 {
		t.Errorf("unread for buyer = %d, want 0", got)
	}
}

func TestMarkAllReadIsGlobal(t *testing.T) {
	store := memStore(t)

	if _, err := store.Add(Notification{Title: "a", TargetRole: session.RoleBroker}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := store.Add(Notification{Title: "b", TargetRole: session.RoleHomeowner}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := store.MarkAllRead(); err != nil {
		t.Fatalf("mark all read: %v", err)
	}

	if got := store.UnreadCount(session.RoleBroker); got != 0 {
		t.Errorf("broker unread = %d, want 0", got)
	}
	if got := store.UnreadCount(session.RoleHomeowner); got != 0 {
		t.Errorf("homeowner unread = %d, want 0 (global mark-read)", got)
	}
}

func TestMarkRoleReadIsScoped(t *testing.T) {
	store := memStore(t)

	if _, err := store.Add(Notification{Title: "a", TargetRole: session.RoleBroker}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := store.Add(Notification{Title: "b", TargetRole: session.RoleHomeowner}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := store.MarkRoleRead(session.RoleBroker); err != nil {
		t.Fatalf("mark role read: %v", err)
	}

	if got := store.UnreadCount(session.RoleBroker); got != 0 {
		t.Errorf("broker unread = %d, want 0", got)
	}
	if got := store.UnreadCount(session.RoleHomeowner); got != 1 {
		t.Errorf("homeowner unread = %d, want 1 (scoped mark-read)", got)
	}
}

func TestReset(t *testing.T) {
	store := memStore(t)

	if _, err := store.Add(Notification{Title: "a", TargetRole: session.RoleBroker}); err != nil {
		t.Fatalf("add: %v", err)
	}
	store.Reset()
	if store.Len() != 0 {
		t.Errorf("len after reset = %d, want 0", store.Len())
	}
}

func memStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}
