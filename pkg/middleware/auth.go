package middleware

import (
	"net/http"
	"strings"

	"github.com/ruangkopi/cafe/pkg/auth"
	"github.com/ruangkopi/cafe/pkg/logger"
	"github.com/ruangkopi/cafe/pkg/response"
	"github.com/ruangkopi/cafe/pkg/session"
)

// Session keys written on login and read by Authenticate.
const (
	SessionUserID = "user_id"
	SessionRole   = "role"
)

// Authenticate resolves the caller from an "Authorization: Bearer" token,
// falling back to the session cookie. It never rejects a request; routes
// that need a caller add RequireAuth or rbac.HasRole.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := fromBearer(r); ok {
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
			return
		}
		if id, ok := fromSession(r); ok {
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func fromBearer(r *http.Request) (auth.Identity, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return auth.Identity{}, false
	}

	id, err := auth.ValidateToken(strings.TrimSpace(token))
	if err != nil {
		logger.WithCtx(r.Context()).Debug("auth: bearer token rejected", "error", err)
		return auth.Identity{}, false
	}
	return id, true
}

func fromSession(r *http.Request) (auth.Identity, bool) {
	sess := session.FromCtx(r)
	if sess == nil {
		return auth.Identity{}, false
	}
	uid, ok := sess.GetUint(SessionUserID)
	if !ok {
		return auth.Identity{}, false
	}
	role, _ := sess.GetString(SessionRole)
	if !auth.ValidRole(role) {
		return auth.Identity{}, false
	}
	return auth.Identity{UserID: uid, Role: role}, true
}

// RequireAuth rejects requests without a resolved identity with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.FromContext(r.Context()); !ok {
			response.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
