package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"tastygram/globals"
	"tastygram/utils"

	"github.com/julienschmidt/httprouter"
)

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func withClaims(r *http.Request, claims *Claims) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, globals.UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, globals.UsernameKey, claims.Username)
	ctx = context.WithValue(ctx, globals.RoleKey, claims.Role)
	return r.WithContext(ctx)
}

// Authenticate rejects requests without a valid token.
func Authenticate(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token := bearerToken(r)
		if token == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		claims, err := ValidateToken(token)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		h(w, withClaims(r, claims), ps)
	}
}

// OptionalAuth attaches user identity when a valid token is present but
// lets anonymous requests through.
func OptionalAuth(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if token := bearerToken(r); token != "" {
			if claims, err := ValidateToken(token); err == nil {
				r = withClaims(r, claims)
			}
		}
		h(w, r, ps)
	}
}

// RequireAdmin layers an admin role check on top of Authenticate.
func RequireAdmin(h httprouter.Handle) httprouter.Handle {
	return Authenticate(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		role, _ := r.Context().Value(globals.RoleKey).(string)
		if role != "admin" {
			utils.RespondWithError(w, http.StatusForbidden, "admin access required")
			return
		}
		h(w, r, ps)
	})
}

func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("🔥 Panic recovered: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
