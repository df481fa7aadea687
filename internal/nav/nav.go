// Package nav holds the logical screen, tab, selections, and comparison
// list the shell is displaying. There is no transition table here: any
// screen may be requested from any screen.
package nav

import "sync"

// Screen identifies a logical screen in the shell.
type Screen string

const (
	ScreenHome     Screen = "home"
	ScreenListings Screen = "listings"
	ScreenLeads    Screen = "leads"
	ScreenBookings Screen = "bookings"
	ScreenPayments Screen = "payments"
	ScreenProfile  Screen = "profile"
)

// Tab identifies a bottom tab.
type Tab string

const (
	TabHome     Tab = "home"
	TabSearch   Tab = "search"
	TabActivity Tab = "activity"
	TabAccount  Tab = "account"
)

// Selections are the ephemeral id references screens pass around. Each is
// independent; empty means cleared.
type Selections struct {
	PropertyID string
	UnitID     string
	LeadID     string
	BookingID  string
}

// State is the navigation store. All mutations are unconditional
// overwrites except the comparison list, which enforces its bound.
type State struct {
	mu         sync.Mutex
	screen     Screen
	tab        Tab
	selections Selections
	comparison []string

	notificationsOpen bool
	roleSelectorOpen  bool
	compareTrayOpen   bool
}

// NewState creates a navigation store on the home screen.
func NewState() *State {
	return &State{screen: ScreenHome, tab: TabHome}
}

// SetScreen overwrites the current screen.
func (s *State) SetScreen(screen Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = screen
}

// Screen returns the current screen.
func (s *State) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// SetTab overwrites the current tab.
func (s *State) SetTab(tab Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tab = tab
}

// Tab returns the current tab.
func (s *State) Tab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

// SelectProperty sets the selected property id; empty clears it.
func (s *State) SelectProperty(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections.PropertyID = id
}

// SelectUnit sets the selected unit id; empty clears it.
func (s *State) SelectUnit(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections.UnitID = id
}

// SelectLead sets the selected lead id; empty clears it.
func (s *State) SelectLead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections.LeadID = id
}

// SelectBooking sets the selected booking id; empty clears it.
func (s *State) SelectBooking(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections.BookingID = id
}

// NavigationSelections returns a copy of the current selections.
func (s *State) NavigationSelections() Selections {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selections
}

// ToggleNotifications flips the notifications panel, or sets it when an
// explicit value is supplied. Explicit false sets false, never XOR.
func (s *State) ToggleNotifications(explicit ...bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notificationsOpen = toggleOrSet(s.notificationsOpen, explicit)
	return s.notificationsOpen
}

// ToggleRoleSelector flips the role selector modal, or sets it when an
// explicit value is supplied.
func (s *State) ToggleRoleSelector(explicit ...bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roleSelectorOpen = toggleOrSet(s.roleSelectorOpen, explicit)
	return s.roleSelectorOpen
}

// ToggleCompareTray flips the comparison tray, or sets it when an explicit
// value is supplied.
func (s *State) ToggleCompareTray(explicit ...bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compareTrayOpen = toggleOrSet(s.compareTrayOpen, explicit)
	return s.compareTrayOpen
}

// NotificationsOpen reports the notifications panel visibility.
func (s *State) NotificationsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notificationsOpen
}

// RoleSelectorOpen reports the role selector visibility.
func (s *State) RoleSelectorOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roleSelectorOpen
}

// CompareTrayOpen reports the comparison tray visibility.
func (s *State) CompareTrayOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compareTrayOpen
}

// Reset returns navigation to the home screen and clears selections,
// comparison list, and modals. Used by the reset-on-sign-out policy.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = ScreenHome
	s.tab = TabHome
	s.selections = Selections{}
	s.comparison = nil
	s.notificationsOpen = false
	s.roleSelectorOpen = false
	s.compareTrayOpen = false
}

func toggleOrSet(current bool, explicit []bool) bool {
	if len(explicit) > 0 {
		return explicit[0]
	}
	return !current
}
