package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/bizkeeper/internal/server/handlers"
	"github.com/iudanet/bizkeeper/pkg/api"
)

// AuthMiddleware создает middleware для проверки JWT access token.
// Используется и для websocket handshake: отказ возвращается до upgrade.
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := handlers.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				logger.Warn("Missing or malformed Authorization header", "path", r.URL.Path)
				unauthorized(w, "missing token")
				return
			}

			claims, err := handlers.ValidateAccessToken(jwtConfig, tokenString)
			if err != nil {
				logger.Warn("Invalid access token", "path", r.URL.Path, "error", err)
				unauthorized(w, "invalid token")
				return
			}

			logger.Debug("User authenticated", "user_id", claims.UserID, "username", claims.Username)

			ctx := handlers.WithUser(r.Context(), claims.UserID, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="bizkeeper"`)
	writeJSONError(w, http.StatusUnauthorized, message)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}
