package app

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/karimbakri/homeport/internal/auth"
	"github.com/karimbakri/homeport/internal/listing"
	"github.com/karimbakri/homeport/internal/notification"
	"github.com/karimbakri/homeport/internal/quickpay"
	"github.com/karimbakri/homeport/internal/session"
)

// Demo credentials the seed installs. Both accounts use DemoPassword.
const (
	DemoPassword       = "homeport-demo"
	DemoBrokerEmail    = "rana@homeport.app"
	DemoHomeownerEmail = "jordan@homeport.app"
)

// Seed installs the demo dataset: two users, a listing catalog,
// role-targeted notifications, and a payable account with a stored card.
// Rerunning it is safe.
func (a *App) Seed() error {
	if err := a.seedUsers(); err != nil {
		return err
	}
	if err := a.seedListings(); err != nil {
		return err
	}
	if err := a.seedNotifications(); err != nil {
		return err
	}
	if err := a.seedPayments(); err != nil {
		return err
	}
	slog.Info("demo data seeded", "db", a.cfg.DBPath)
	return nil
}

func (a *App) seedUsers() error {
	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return err
	}

	users := []auth.User{
		{
			ID:           "u-rana",
			Email:        DemoBrokerEmail,
			DisplayName:  "Rana Khalil",
			Mobile:       "+971500000001",
			PasswordHash: hash,
			Roles:        []session.Role{session.RoleBroker, session.RoleBuyer},
		},
		{
			ID:           "u-jordan",
			Email:        DemoHomeownerEmail,
			DisplayName:  "Jordan Doe",
			Mobile:       "+971500000002",
			PasswordHash: hash,
			Roles:        []session.Role{session.RoleHomeowner, session.RoleBuyer},
		},
	}

	repo := auth.NewRepository(a.db)
	for _, u := range users {
		if err := repo.InsertUser(u); err != nil {
			return fmt.Errorf("seeding user %s: %w", u.ID, err)
		}
	}
	return nil
}

func (a *App) seedListings() error {
	listings := []listing.Listing{
		{ID: "p1", Title: "Marina View 2BR", Community: "Marina", Price: 1800000, Bedrooms: 2, Bathrooms: 2, SqFt: 1250},
		{ID: "p2", Title: "Palm Villa", Community: "Palm", Price: 6500000, Bedrooms: 4, Bathrooms: 5, SqFt: 4100},
		{ID: "p3", Title: "Marina Studio", Community: "Marina", Price: 950000, Bedrooms: 0.5, Bathrooms: 1, SqFt: 520},
		{ID: "p4", Title: "Downtown Loft", Community: "Downtown", Price: 2400000, Bedrooms: 1, Bathrooms: 1.5, SqFt: 900},
		{ID: "p5", Title: "Hills Townhouse", Community: "Hills", Price: 3200000, Bedrooms: 3, Bathrooms: 3.5, SqFt: 2200},
	}
	for _, l := range listings {
		if err := a.Listings.Insert(l); err != nil {
			return fmt.Errorf("seeding listing %s: %w", l.ID, err)
		}
	}
	return nil
}

func (a *App) seedNotifications() error {
	// The notification store deliberately allows duplicates, so only seed
	// into an empty inbox.
	if a.Notifications.Len() > 0 {
		return nil
	}

	seed := []notification.Notification{
		{Title: "New lead", Message: "A buyer asked about Marina View 2BR", Type: notification.TypeLead, TargetRole: session.RoleBroker},
		{Title: "Viewing booked", Message: "Palm Villa viewing on Thursday 3pm", Type: notification.TypeBooking, TargetRole: session.RoleBroker},
		{Title: "Price drop", Message: "Marina Studio is now AED 950,000", Type: notification.TypeProperty, TargetRole: session.RoleBuyer},
		{Title: "Offer received", Message: "An offer arrived for your unit", Type: notification.TypeOffer, TargetRole: session.RoleHomeowner},
		{Title: "Service fee due", Message: "Community fees due 15 Sep", Type: notification.TypeGeneric, TargetRole: session.RoleHomeowner},
	}
	for _, n := range seed {
		if _, err := a.Notifications.Add(n); err != nil {
			return fmt.Errorf("seeding notification %q: %w", n.Title, err)
		}
	}
	return nil
}

func (a *App) seedPayments() error {
	account := quickpay.Account{
		AccountNumber: "CUST-12345",
		LastName:      "Doe",
		HolderName:    "Jordan Doe",
		UserID:        "u-jordan",
		Balance:       decimal.RequireFromString("4250.00"),
		DueDate:       "2026-09-15",
	}
	if err := a.Payments.InsertAccount(account); err != nil {
		return fmt.Errorf("seeding account: %w", err)
	}

	existing, err := a.Payments.MethodsForAccount(account.AccountNumber)
	if err != nil {
		return fmt.Errorf("checking payment methods: %w", err)
	}
	for _, m := range existing {
		if m.ID == "seed-card-1" {
			return nil
		}
	}

	method := quickpay.Method{
		ID:            "seed-card-1",
		AccountNumber: account.AccountNumber,
		Brand:         quickpay.BrandVisa,
		Last4:         "4242",
		Holder:        "Jordan Doe",
		Expiry:        "12/27",
	}
	if err := a.Payments.InsertMethod(method); err != nil {
		return fmt.Errorf("seeding payment method: %w", err)
	}
	return nil
}
