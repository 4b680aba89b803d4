package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GuestClaims represents JWT claims for a guest play session. There are no
// accounts; the token only ties a WebSocket connection to its session state.
type GuestClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// GenerateGuestToken creates a signed token for a new guest session
func GenerateGuestToken(secret, sessionID string, ttl time.Duration) (string, error) {
	claims := &GuestClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateGuestToken validates a guest token and returns the claims
func ValidateGuestToken(secret, tokenString string) (*GuestClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &GuestClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*GuestClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
