// Package middleware provides HTTP middleware for authentication,
// request identification, and rate limiting.
package middleware

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type principalKey struct{}

// WithPrincipal stores the authenticated principal name in the context.
func WithPrincipal(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, principalKey{}, name)
}

// PrincipalFromContext extracts the principal name from the context.
func PrincipalFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(principalKey{}).(string)
	return name, ok
}

// Auth returns a middleware guarding mutating endpoints. The bearer token is
// accepted either as the static service API key or, when jwtSecret is
// non-empty, as an HS256-signed JWT whose "sub" claim names the caller.
// Anything else gets 401.
func Auth(apiKey string, jwtSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || token == "" {
				writeUnauthorized(w)
				return
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) == 1 {
				next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), "api-key")))
				return
			}

			if len(jwtSecret) > 0 {
				if sub, err := validateHS256(token, jwtSecret); err == nil {
					next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), sub)))
					return
				}
			}

			writeUnauthorized(w)
		})
	}
}

// validateHS256 verifies an HS256 JWT and returns its subject claim.
func validateHS256(tokenStr string, secret []byte) (string, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", jwt.ErrTokenRequiredClaimMissing
	}
	return sub, nil
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": "Invalid API key",
	})
}
