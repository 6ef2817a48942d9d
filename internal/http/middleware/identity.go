package middleware

import (
	"net/http"

	"github.com/davidbz/sophie/internal/observability"
)

// UserHeader carries the verified identity supplied by the authentication
// collaborator in front of this service.
const UserHeader = "X-User-Id"

// Identity propagates the authenticated user id from the request header into
// the context for downstream logging and session lookup. Enforcement (401 on
// the session-bound routes) happens in the handler; health and report
// endpoints do not require an identity.
func Identity() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := r.Header.Get(UserHeader); user != "" {
				r = r.WithContext(observability.WithUser(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}
