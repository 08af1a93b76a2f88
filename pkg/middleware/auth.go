package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/paddock-dev/paddock/app/models"
	"github.com/paddock-dev/paddock/pkg/auth"
	"github.com/paddock-dev/paddock/pkg/response"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "paddock_session"

type claimsKey struct{}

// Authenticate resolves the caller's session from the Authorization header
// or the session cookie and stores the claims in the request context. It
// never rejects: public routes run with an anonymous context, and the
// Require* middlewares below enforce access.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			if c, err := r.Cookie(SessionCookie); err == nil {
				token = c.Value
			}
		}

		if token != "" {
			if claims, err := auth.ValidateToken(token); err == nil {
				ctx := context.WithValue(r.Context(), claimsKey{}, claims)
				r = r.WithContext(ctx)
			}
		}

		next.ServeHTTP(w, r)
	})
}

// RequireUser rejects unauthenticated requests with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsFromCtx(r.Context()); !ok {
			response.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSeller rejects unauthenticated requests with 401 and authenticated
// callers whose role cannot sell with 403.
func RequireSeller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromCtx(r.Context())
		if !ok {
			response.Unauthorized(w)
			return
		}
		if !models.Role(claims.Role).CanSell() {
			response.Forbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFromCtx returns the session claims stored by Authenticate.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

// UserIDFromCtx returns the authenticated user's ID.
func UserIDFromCtx(ctx context.Context) (uint, bool) {
	claims, ok := ClaimsFromCtx(ctx)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}

// RoleFromCtx returns the authenticated user's role.
func RoleFromCtx(ctx context.Context) (models.Role, bool) {
	claims, ok := ClaimsFromCtx(ctx)
	if !ok {
		return "", false
	}
	return models.Role(claims.Role), true
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
