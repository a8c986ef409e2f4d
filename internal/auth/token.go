// Package auth issues and verifies the bearer credentials that gate write
// access to the API. Credentials are HS256-signed JWTs; nothing is stored
// server-side, so a token's validity is entirely self-contained.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pkordes/scorelive/internal/domain"
)

// DefaultTTL is the lifetime of an issued credential when none is configured.
const DefaultTTL = 60 * time.Minute

// TokenType is the OAuth2 token type reported alongside every issued token.
const TokenType = "bearer"

// ErrInvalidCredential is returned by Verify when a token is malformed, signed
// with the wrong key or algorithm, or missing required claims.
var ErrInvalidCredential = fmt.Errorf("%w: invalid credential", domain.ErrUnauthorized)

// ErrExpiredCredential is returned by Verify when a token's exp has passed.
var ErrExpiredCredential = fmt.Errorf("%w: expired credential", domain.ErrUnauthorized)

// Claims is the verified payload of a credential.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Token is an issued credential ready to hand back to the client.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// TokenService signs and verifies credentials with a shared secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a TokenService.
type Option func(*TokenService)

// WithTTL overrides DefaultTTL. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(s *TokenService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, for tests that need to move past expiry.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService constructs a TokenService signing with secret.
func NewTokenService(secret []byte, opts ...Option) *TokenService {
	s := &TokenService{
		secret: secret,
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a credential for subject that expires TTL from now.
// The subject is taken as asserted; no identity check happens here.
// Returns domain.ErrValidation if subject is blank.
func (s *TokenService) Issue(subject string) (Token, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return Token{}, fmt.Errorf("auth.TokenService.Issue: %w: username is required", domain.ErrValidation)
	}

	now := s.now().UTC().Truncate(time.Second)
	exp := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("auth.TokenService.Issue: sign: %w", err)
	}

	return Token{AccessToken: signed, TokenType: TokenType, ExpiresAt: exp}, nil
}

// Verify checks raw's signature and expiry and returns its claims.
// Only HS256 is accepted; "none" and every other algorithm are rejected.
// Returns ErrExpiredCredential or ErrInvalidCredential on failure; the
// parser's own error is dropped.
func (s *TokenService) Verify(raw string) (Claims, error) {
	var rc jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &rc, s.key,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrExpiredCredential
	case err != nil:
		return Claims{}, ErrInvalidCredential
	}

	if strings.TrimSpace(rc.Subject) == "" {
		return Claims{}, ErrInvalidCredential
	}

	c := Claims{Subject: rc.Subject, ExpiresAt: rc.ExpiresAt.Time}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	return c, nil
}

// key is the jwt.Keyfunc. The secret is only ever handed to an HMAC method.
func (s *TokenService) key(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
	}
	return s.secret, nil
}
