// Package token issues and verifies the bearer tokens handed out at login.
//
// Tokens are HS256 JWTs. The subject is the user id, the custom "role"
// claim carries the user's role, and issuer, audience and lifetime come
// from configuration. Verification needs only the shared key, so any
// service holding it can authenticate a request without touching the
// database. There is no revocation; expiry is the only way a token stops
// being valid.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"audioathlete/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is what a verified token asserts.
type Identity struct {
	UserID    int64
	Role      string
	ExpiresAt time.Time
}

type Issuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

func NewIssuer(config utils.JWTConfig) *Issuer {
	ttl := time.Duration(config.ExpiryHours) * time.Hour
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}

	return &Issuer{
		secret:   []byte(config.Secret),
		issuer:   config.Issuer,
		audience: config.Audience,
		ttl:      ttl,
		now:      time.Now,
	}
}

// WithClock returns a copy of the issuer reading time from now.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	clone := *i
	clone.now = now
	return &clone
}

// TTL is the validity window of every issued token.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue mints a signed token for userID and role. It returns the token and
// the instant it expires.
func (i *Issuer) Issue(userID int64, role string) (string, time.Time, error) {
	if userID <= 0 {
		return "", time.Time{}, fmt.Errorf("issue token: invalid user id %d", userID)
	}

	now := i.now()
	expiresAt := now.Add(i.ttl)

	c := claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	if i.audience != "" {
		c.Audience = jwt.ClaimStrings{i.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	// the exp claim has second precision
	return signed, c.ExpiresAt.Time, nil
}

// Verify checks signature, algorithm, issuer, audience and expiry.
func (i *Issuer) Verify(raw string) (*Identity, error) {
	c := &claims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}
	if i.audience != "" {
		opts = append(opts, jwt.WithAudience(i.audience))
	}

	parsed, err := jwt.ParseWithClaims(raw, c, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, c.Subject)
	}

	return &Identity{
		UserID:    userID,
		Role:      c.Role,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}
