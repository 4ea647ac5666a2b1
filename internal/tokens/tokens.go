// Package tokens issues and verifies the HS256 bearer tokens the resume
// backend hands out at login.
package tokens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/middleware"
)

var (
	ErrEmptySecret   = errors.New("token secret is empty")
	ErrMissingExpiry = errors.New("parse token: missing exp claim")
)

// Claims carried by an access token. Subject is the user id.
type Claims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Generate signs an access token for sub that expires after ttl.
func Generate(secret, sub, name string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse verifies raw and returns its claims. Only HS256 is accepted.
func Parse(secret, raw string) (*Claims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return nil, ErrMissingExpiry
	}
	if claims.Subject == "" {
		return nil, errors.New("parse token: missing sub claim")
	}
	return claims, nil
}

// Verifier adapts Parse to the auth middleware.
type Verifier struct {
	secret string
	deny   *Denylist
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

// WithDenylist makes Verify reject tokens revoked through d.
func (v *Verifier) WithDenylist(d *Denylist) *Verifier {
	v.deny = d
	return v
}

func (v *Verifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	c, err := Parse(v.secret, raw)
	if err != nil {
		return nil, err
	}
	if v.deny != nil {
		revoked, err := v.deny.Contains(ctx, raw)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, ErrRevoked
		}
	}
	return verified{claims: c}, nil
}

// Revoke denies raw until its expiry. The token must verify first.
func (v *Verifier) Revoke(ctx context.Context, raw string) error {
	if v.deny == nil {
		return errors.New("token revocation is not configured")
	}
	c, err := Parse(v.secret, raw)
	if err != nil {
		return err
	}
	return v.deny.Add(ctx, raw, time.Until(c.ExpiresAt.Time))
}

type verified struct {
	claims *Claims
}

// Claims decodes the token claims into dst through their JSON form.
func (t verified) Claims(dst interface{}) error {
	b, err := json.Marshal(t.claims)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
