// Package middleware provides HTTP middleware for recruiter authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// recruiterKey is the context key for the authenticated recruiter identity.
const recruiterKey ContextKey = "recruiter"

// TokenValidator validates a bearer token and returns the recruiter identity
// it carries. Keeping this an interface avoids an import cycle with the JWT
// service living in the server package.
type TokenValidator interface {
	ValidateToken(tokenString string) (SubjectGetter, error)
}

// SubjectGetter exposes the subject claim of a validated token.
type SubjectGetter interface {
	GetSubject() string
}

// RequireAuth wraps a handler so it only runs with a valid Bearer token. The
// recruiter identity is added to the request context.
func RequireAuth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// "Bearer" is matched case-insensitively.
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimSpace(parts[1])
			if tokenString == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), recruiterKey, claims.GetSubject())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Recruiter extracts the authenticated recruiter identity from the request
// context.
func Recruiter(r *http.Request) (string, error) {
	subject, ok := r.Context().Value(recruiterKey).(string)
	if !ok {
		return "", fmt.Errorf("recruiter identity not found in request context")
	}
	return subject, nil
}
