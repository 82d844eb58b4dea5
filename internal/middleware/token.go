package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mriera/bloglist-backend/internal/api/httpx"
	"github.com/mriera/bloglist-backend/internal/models"
	"github.com/mriera/bloglist-backend/internal/services"
)

type ctxKey int

const (
	tokenKey ctxKey = iota
	userKey
)

// TokenFrom returns the bearer token extracted from the request, or ""
// when the Authorization header was absent or not bearer-formatted.
func TokenFrom(ctx context.Context) string {
	if v, ok := ctx.Value(tokenKey).(string); ok {
		return v
	}
	return ""
}

// UserFrom returns the authenticated user bound by RequireUser.
func UserFrom(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey).(models.User)
	return u, ok
}

// TokenExtractor runs on every request. It never rejects: a missing or
// ill-formed header just leaves the token empty and lets the request
// proceed, so read-only routes stay open.
func TokenExtractor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if len(ah) > 7 && strings.EqualFold(ah[:7], "bearer ") {
			token := strings.TrimSpace(ah[7:])
			r = r.WithContext(context.WithValue(r.Context(), tokenKey, token))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser gates mutating routes: the extracted token must verify
// and resolve to an existing user, which is then bound to the request
// context for the handler.
func RequireUser(us *services.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := us.UserFromToken(r.Context(), TokenFrom(r.Context()))
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, "missing or invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
		})
	}
}
