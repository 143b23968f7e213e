package http

import (
	"net/http"
	"strings"

	"github.com/mwhitfield/spendlog/internal/auth"
	"github.com/mwhitfield/spendlog/internal/contextutil"
)

// authenticate rejects requests without a valid bearer token and stashes the
// token's user ID in the request context.
func authenticate(authSvc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			userID, err := authSvc.VerifyToken(token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(contextutil.WithUserID(r.Context(), userID)))
		})
	}
}
