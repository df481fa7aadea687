// Package notification provides the role-scoped notification store.
package notification

import (
	"time"

	"github.com/karimbakri/homeport/internal/session"
)

// Type categorizes what a notification is about.
type Type string

const (
	TypeLead     Type = "lead"
	TypeBooking  Type = "booking"
	TypeProperty Type = "property"
	TypeOffer    Type = "offer"
	TypeGeneric  Type = "generic"
)

// ValidType returns true if t is a known notification type.
func ValidType(t Type) bool {
	switch t {
	case TypeLead, TypeBooking, TypeProperty, TypeOffer, TypeGeneric:
		return true
	}
	return false
}

// Notification is an alert surfaced to users holding the target role.
// Two notifications with identical content are distinct entities; the store
// never deduplicates.
type Notification struct {
	ID         string
	Title      string
	Message    string
	Type       Type
	TargetRole session.Role
	CreatedAt  time.Time
	Read       bool
}
