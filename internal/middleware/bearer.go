package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkordes/scorelive/internal/auth"
)

// Verifier checks a raw bearer token. *auth.TokenService satisfies it.
type Verifier interface {
	Verify(raw string) (auth.Claims, error)
}

// RejectFunc writes the response for a request whose credential failed.
// err wraps auth.ErrInvalidCredential or auth.ErrExpiredCredential.
type RejectFunc func(w http.ResponseWriter, r *http.Request, err error)

// NewBearerAuth returns a middleware that requires an
// "Authorization: Bearer <token>" header verified by v. On success the
// claims are placed on the request context (auth.ClaimsFromContext); on
// failure reject is called and next never runs.
func NewBearerAuth(v Verifier, reject RejectFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := bearerToken(r)
			if err != nil {
				reject(w, r, err)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				reject(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.NewContext(r.Context(), claims)))
		})
	}
}

// bearerToken extracts the token from the Authorization header.
// The scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", fmt.Errorf("%w: missing authorization header", auth.ErrInvalidCredential)
	}

	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", fmt.Errorf("%w: authorization scheme must be Bearer", auth.ErrInvalidCredential)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: empty bearer token", auth.ErrInvalidCredential)
	}
	return token, nil
}
