package utils // utils provides session token issuance and password hashing helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is how long an issued session token remains valid. The
// cookie carrying the token uses the same lifetime.
const SessionTTL = 24 * time.Hour

// ErrInvalidToken is returned by VerifySessionToken for every failure
// mode: bad signature, malformed token, expiry, or an incomplete payload.
// Callers treat it uniformly as an authentication failure.
var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims is the payload carried by a session token. All four
// identity fields must be present for the token to verify.
type SessionClaims struct {
	UserID uint   `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IssueSessionToken signs an HS256 JWT carrying the user's identity.
// Expiry is fixed at SessionTTL from issuance. The returned time is the
// expiry, which callers reuse as the cookie max-age.
func IssueSessionToken(secret string, userID uint, email, name, role string) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(SessionTTL)
	claims := SessionClaims{
		UserID: userID,
		Email:  email,
		Name:   name,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// VerifySessionToken parses and validates a session token. It fails
// closed: any signature mismatch, wrong signing method, expired token or
// missing payload field yields ErrInvalidToken. It never panics into the
// caller.
func VerifySessionToken(secret, raw string) (*SessionClaims, error) {
	tok, err := jwt.ParseWithClaims(raw, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(*SessionClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if claims.UserID == 0 || claims.Email == "" || claims.Name == "" || claims.Role == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
