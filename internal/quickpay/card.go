package quickpay

import (
	"errors"
	"fmt"
	"strings"
)

// Brand is a detected card network.
type Brand string

const (
	BrandVisa       Brand = "visa"
	BrandMastercard Brand = "mastercard"
	BrandUnknown    Brand = "unknown"
)

// ErrInvalidCard signals rejected card details. Recoverable: the add-card
// subflow stays open and nothing is appended.
var ErrInvalidCard = errors.New("quickpay: invalid card details")

// CardInput is the raw add-card form.
type CardInput struct {
	Number string // may contain spaces or dashes
	Holder string
	Expiry string // MM/YY
	CVV    string
}

// DetectBrand classifies a card number by its leading digit after
// stripping separators: 4 is visa, 5 is mastercard, anything else
// (including the empty string) is unknown.
func DetectBrand(number string) Brand {
	cleaned := cleanCardNumber(number)
	if cleaned == "" {
		return BrandUnknown
	}
	switch cleaned[0] {
	case '4':
		return BrandVisa
	case '5':
		return BrandMastercard
	}
	return BrandUnknown
}

// validateCard checks the add-card form. All failures wrap ErrInvalidCard.
func validateCard(in CardInput) error {
	number := cleanCardNumber(in.Number)
	if len(number) < 13 || len(number) > 19 {
		return fmt.Errorf("%w: card number must be 13-19 digits", ErrInvalidCard)
	}
	if !allDigits(number) {
		return fmt.Errorf("%w: card number must contain only digits", ErrInvalidCard)
	}
	if strings.TrimSpace(in.Holder) == "" {
		return fmt.Errorf("%w: holder name is required", ErrInvalidCard)
	}
	if len(in.Expiry) != 5 || in.Expiry[2] != '/' ||
		!allDigits(in.Expiry[:2]) || !allDigits(in.Expiry[3:]) {
		return fmt.Errorf("%w: expiry must be MM/YY", ErrInvalidCard)
	}
	if len(in.CVV) < 3 || !allDigits(in.CVV) {
		return fmt.Errorf("%w: cvv must be at least 3 digits", ErrInvalidCard)
	}
	return nil
}

// cleanCardNumber strips the separators users type into card fields.
func cleanCardNumber(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(number)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// last4 returns the trailing four digits of a cleaned card number.
func last4(cleaned string) string {
	if len(cleaned) < 4 {
		return cleaned
	}
	return cleaned[len(cleaned)-4:]
}
