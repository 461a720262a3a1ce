package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/forgo/places/api/internal/model"
	"github.com/forgo/places/api/pkg/jwt"
)

// TokenValidator defines the interface for credential validation
type TokenValidator interface {
	Validate(token string) (*jwt.Claims, error)
}

// Auth returns a middleware that validates bearer credentials before any
// route logic runs. Every failure, missing header included, rejects with
// the same 403 so callers learn nothing about which check tripped.
// OPTIONS requests pass through untouched for CORS preflight.
func Auth(validator TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				model.NewAuthFailedError("authentication failed").WriteJSON(w)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				model.NewAuthFailedError("authentication failed").WriteJSON(w)
				return
			}

			claims, err := validator.Validate(parts[1])
			if err != nil {
				model.NewAuthFailedError("authentication failed").WriteJSON(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
			ctx = context.WithValue(ctx, ClaimsKey, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsKey is the context key for JWT claims
const ClaimsKey contextKey = "claims"

// UserEmailKey is the context key for user email
const UserEmailKey contextKey = "userEmail"

// GetUserID extracts the user ID from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// GetUserEmail extracts the user email from context
func GetUserEmail(ctx context.Context) string {
	if email, ok := ctx.Value(UserEmailKey).(string); ok {
		return email
	}
	return ""
}

// GetClaims extracts the JWT claims from context
func GetClaims(ctx context.Context) *jwt.Claims {
	if claims, ok := ctx.Value(ClaimsKey).(*jwt.Claims); ok {
		return claims
	}
	return nil
}
