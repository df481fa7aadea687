// Package quickpay implements the "pay without an account" wizard: a
// finite-state journey from account lookup to receipt.
package quickpay

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a payable service account (community fees, unit charges).
// UserID links it to an app user when the holder is a signed-in homeowner.
type Account struct {
	AccountNumber string
	LastName      string
	HolderName    string
	UserID        string
	Balance       decimal.Decimal
	DueDate       string
}

// Method is a stored payment card.
type Method struct {
	ID            string
	AccountNumber string
	Brand         Brand
	Last4         string
	Holder        string
	Expiry        string
}

// Transaction records a completed payment.
type Transaction struct {
	ID            string
	AccountNumber string
	MethodID      string
	Amount        decimal.Decimal
	CreatedAt     time.Time
}
