// Package auth issues and verifies the JWTs that carry user identity.
// Two token purposes exist: access tokens (sent as Bearer credentials on
// every request) and short-lived password-reset tokens (dispatched by the
// mailer, never accepted as Bearer credentials).
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// accessTokenTTL bounds how long a login session lives.
	accessTokenTTL = 24 * time.Hour

	// resetTokenTTL bounds how long a password-reset link stays valid.
	resetTokenTTL = 15 * time.Minute

	purposeReset = "password_reset"
)

// ErrInvalidToken is returned for any token that fails verification:
// bad signature, wrong algorithm, expired, or wrong purpose.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated caller extracted from an access token.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// Claims is the JWT payload for both token purposes.
type Claims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies this service's JWTs with a single HS256 secret.
type Tokens struct {
	secret []byte

	// now is swapped out in tests to control expiry.
	now func() time.Time
}

// NewTokens constructs a Tokens using the given signing secret.
func NewTokens(secret []byte) *Tokens {
	return &Tokens{secret: secret, now: time.Now}
}

// IssueAccess signs a 24h access token for the given user.
func (t *Tokens) IssueAccess(userID uuid.UUID, email string) (string, error) {
	return t.sign(userID.String(), email, "", accessTokenTTL)
}

// IssueReset signs a 15-minute password-reset token for the given user.
func (t *Tokens) IssueReset(userID uuid.UUID, email string) (string, error) {
	return t.sign(userID.String(), email, purposeReset, resetTokenTTL)
}

func (t *Tokens) sign(subject, email, purpose string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := Claims{
		Email:   email,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("auth.Tokens.sign: %w", err)
	}
	return signed, nil
}

// VerifyAccess parses an access token and returns the caller's identity.
// Reset tokens are rejected here: they must never grant API access.
func (t *Tokens) VerifyAccess(token string) (Identity, error) {
	claims, err := t.parse(token)
	if err != nil {
		return Identity{}, err
	}
	if claims.Purpose != "" {
		return Identity{}, fmt.Errorf("auth.Tokens.VerifyAccess: purpose %q: %w", claims.Purpose, ErrInvalidToken)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("auth.Tokens.VerifyAccess: subject: %w", ErrInvalidToken)
	}
	return Identity{UserID: userID, Email: claims.Email}, nil
}

// VerifyReset parses a password-reset token and returns the user it was
// issued for.
func (t *Tokens) VerifyReset(token string) (Identity, error) {
	claims, err := t.parse(token)
	if err != nil {
		return Identity{}, err
	}
	if claims.Purpose != purposeReset {
		return Identity{}, fmt.Errorf("auth.Tokens.VerifyReset: purpose %q: %w", claims.Purpose, ErrInvalidToken)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("auth.Tokens.VerifyReset: subject: %w", ErrInvalidToken)
	}
	return Identity{UserID: userID, Email: claims.Email}, nil
}

func (t *Tokens) parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (any, error) {
		// Pin the algorithm: accepting whatever the header claims would let a
		// forged "none" or RS256 token through.
		if tok.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return t.now() }))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("auth.Tokens.parse: %w", ErrInvalidToken)
	}
	return claims, nil
}
