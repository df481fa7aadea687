package quickpay

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// issueOTP generates the 4-digit one-time code. Delivery is mocked: the
// wizard logs it in place of an SMS.
func issueOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("generating otp: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
