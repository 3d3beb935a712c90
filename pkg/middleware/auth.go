package middleware

import (
	"errors"
	"net/http"
	"strings"

	"audioathlete/pkg/token"
	"audioathlete/pkg/utils"

	"go.uber.org/zap"
)

// TokenVerifier checks a raw bearer token.
type TokenVerifier interface {
	Verify(raw string) (*token.Identity, error)
}

// AuthJWT validates the "Authorization: Bearer <jwt>" header and stores the
// caller's id and role on the request context.
func AuthJWT(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			scheme, raw, found := strings.Cut(authHeader, " ")
			raw = strings.TrimSpace(raw)
			if !found || !strings.EqualFold(scheme, "Bearer") || raw == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			// Verify signature and claims, no store access
			identity, err := verifier.Verify(raw)
			if err != nil {
				logger.Warn("Rejected bearer token",
					zap.Error(err),
					zap.String("path", r.URL.Path),
					zap.String("request_id", utils.GetRequestIDFromContext(r.Context())),
				)
				if errors.Is(err, token.ErrExpiredToken) {
					utils.ResponseUnauthorized(w, "Token expired")
					return
				}
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), identity.UserID, identity.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
