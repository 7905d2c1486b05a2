package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/raskraski/storefront/internal/auth"
)

// Verifier turns a bearer token into a principal.
type Verifier interface {
	Verify(raw string) (auth.Principal, error)
}

// RequireAdmin lets the request through only when the bearer token verifies
// and the policy grants admin rights to its principal.
func RequireAdmin(verifier Verifier, policy auth.Policy, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := verifier.Verify(r.Header.Get("Authorization"))
			if err != nil {
				msg := auth.ErrInvalidToken.Error()
				if errors.Is(err, auth.ErrMissingToken) {
					msg = auth.ErrMissingToken.Error()
				}
				writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", msg)
				return
			}

			if !policy.CanAdminister(principal) {
				logger.WarnContext(r.Context(), "admin access denied",
					slog.String("user_id", principal.UserID),
					slog.String("email", principal.Email),
				)
				writeAuthError(w, http.StatusForbidden, "FORBIDDEN", "admin access required")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": code, "message": message})
}
