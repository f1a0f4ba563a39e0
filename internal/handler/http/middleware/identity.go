package middleware

import (
	"net/http"

	"github.com/datavista/hris-backend-go/internal/domain/auth"
)

// Identity resolves the bearer token into an auth.Identity on the request
// context. Requests without a valid token continue as anonymous; the
// resolvers decide what anonymous callers may do.
func Identity(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			identity := auth.ResolveIdentity(verifier, r.Header.Get("Authorization"))
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		}
		return http.HandlerFunc(hfn)
	}
}
