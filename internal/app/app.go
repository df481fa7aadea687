// Package app wires the application together: configuration, the local
// database, and the stores and flows the shell drives.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/karimbakri/homeport/internal/auth"
	"github.com/karimbakri/homeport/internal/config"
	"github.com/karimbakri/homeport/internal/db"
	"github.com/karimbakri/homeport/internal/listing"
	"github.com/karimbakri/homeport/internal/nav"
	"github.com/karimbakri/homeport/internal/notification"
	"github.com/karimbakri/homeport/internal/quickpay"
	"github.com/karimbakri/homeport/internal/roleswitch"
	"github.com/karimbakri/homeport/internal/session"
)

// App is the composed application state.
type App struct {
	cfg *config.Config
	db  *sql.DB

	Sessions      *session.Store
	Prefs         *session.PrefStore
	Notifications *notification.Store
	Nav           *nav.State
	RoleSwitch    *roleswitch.Flow
	Listings      *listing.Repository
	Payments      *quickpay.SQLRepository
	Auth          *auth.Service

	mu     sync.Mutex
	wizard *quickpay.Wizard
}

// New opens the database and builds the application graph.
func New(cfg *config.Config) (*App, error) {
	d, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	prefs := session.NewPrefStore(d)
	sessions := session.NewStore(session.NewTokenIssuer(cfg.JWTSecret), cfg.DevMode)

	notifications, err := notification.NewStore(notification.NewRepository(d))
	if err != nil {
		if cerr := d.Close(); cerr != nil {
			slog.Error("closing database after failed startup", "error", cerr)
		}
		return nil, fmt.Errorf("loading notifications: %w", err)
	}

	return &App{
		cfg:           cfg,
		db:            d,
		Sessions:      sessions,
		Prefs:         prefs,
		Notifications: notifications,
		Nav:           nav.NewState(),
		RoleSwitch:    roleswitch.NewFlow(sessions, prefs, cfg.SwitchDelay),
		Listings:      listing.NewRepository(d),
		Payments:      quickpay.NewSQLRepository(d),
		Auth:          auth.NewService(auth.NewRepository(d)),
	}, nil
}

// Close releases the database.
func (a *App) Close() error {
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// DB exposes the underlying handle for seeding.
func (a *App) DB() *sql.DB {
	return a.db
}

// SignIn authenticates the credentials and establishes the session. The
// stored role preference, when still valid, decides the starting role.
func (a *App) SignIn(email, password string) error {
	identity, err := a.Auth.Authenticate(email, password)
	if err != nil {
		return err
	}

	remembered, err := a.Prefs.RememberedRole(identity.ID)
	if err != nil {
		return fmt.Errorf("reading role preference: %w", err)
	}
	identity.RememberedRole = remembered

	if err := a.Sessions.SignIn(*identity); err != nil {
		return err
	}

	slog.Info("signed in", "user", identity.ID, "role", string(a.Sessions.CurrentRole()))
	return nil
}

// SignOut ends the session. Any active payment wizard is discarded, and
// navigation state is cleared when the reset policy is on.
func (a *App) SignOut() {
	a.mu.Lock()
	if a.wizard != nil {
		a.wizard.Exit()
		a.wizard = nil
	}
	a.mu.Unlock()

	a.Sessions.SignOut()
	if a.cfg.ResetOnSignOut {
		a.Nav.Reset()
		a.Notifications.Reset()
	}
	slog.Info("signed out")
}

// SwitchRole runs the role switch flow. It reports whether the switch
// committed.
func (a *App) SwitchRole(ctx context.Context, role session.Role, remember bool) (bool, error) {
	return a.RoleSwitch.Switch(ctx, role, remember)
}

// MarkNotificationsRead marks notifications read. Under the scoped policy
// only the active role's notifications are touched; otherwise all are.
func (a *App) MarkNotificationsRead() error {
	if a.cfg.ScopedMarkRead {
		if role := a.Sessions.CurrentRole(); role != "" {
			return a.Notifications.MarkRoleRead(role)
		}
	}
	return a.Notifications.MarkAllRead()
}

// StartQuickPay begins a payment wizard. Signed-in homeowners enter at
// the choose-method step against their own account; everyone else starts
// at the account search. Any previous wizard is discarded first.
func (a *App) StartQuickPay() (*quickpay.Wizard, error) {
	opts := quickpay.Options{ConfirmDelay: a.cfg.ConfirmDelay}
	if identity, ok := a.Sessions.CurrentIdentity(); ok && identity.ActiveRole == session.RoleHomeowner {
		opts.Homeowner = true
		opts.UserID = identity.ID
	}

	w, err := quickpay.New(a.Payments, opts)
	if opts.Homeowner && errors.Is(err, quickpay.ErrAccountNotFound) {
		// A homeowner without a linked account falls back to the lookup.
		slog.Debug("quickpay: no linked account, starting at search", "user", opts.UserID)
		w, err = quickpay.New(a.Payments, quickpay.Options{ConfirmDelay: a.cfg.ConfirmDelay})
	}
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.wizard != nil {
		a.wizard.Exit()
	}
	a.wizard = w
	return w, nil
}

// Wizard returns the active payment wizard, or nil.
func (a *App) Wizard() *quickpay.Wizard {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.wizard != nil && a.wizard.Done() {
		a.wizard = nil
	}
	return a.wizard
}
