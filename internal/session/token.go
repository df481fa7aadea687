package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenExpiry = 24 * time.Hour

// TokenIssuer mints the HS256 device token attached to the session on
// sign-in. No server validates it; screens carry it so a future backend can
// take over without reworking the sign-in flow.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer creates a token issuer with the given signing secret.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Issue creates a signed token for the identity's id and active role.
func (i *TokenIssuer) Issue(id Identity) (string, error) {
	role := id.ActiveRole
	if role == "" && len(id.Roles) > 0 {
		role = id.Roles[0]
	}

	claims := jwt.MapClaims{
		"user_id": id.ID,
		"role":    string(role),
		"exp":     time.Now().Add(tokenExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("session: sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a token and returns the embedded user id and role.
func (i *TokenIssuer) Verify(tokenString string) (string, Role, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("session: parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("session: invalid token")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", "", fmt.Errorf("session: invalid user_id in token")
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", "", fmt.Errorf("session: invalid role in token")
	}
	role := Role(roleStr)
	if !ValidRole(role) {
		return "", "", fmt.Errorf("session: invalid role %q in token", roleStr)
	}

	return userID, role, nil
}
