package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/username/gainledger/src/database"
	"github.com/username/gainledger/src/logger"
	"github.com/username/gainledger/src/model"
	"github.com/username/gainledger/src/utils"
)

// contextKey is unexported so no other package can collide with our keys.
type contextKey string

const userIDContextKey contextKey = "userID"

// GetUserIDFromContext retrieves the authenticated user id set by
// AuthMiddleware.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int64)
	return userID, ok
}

// AuthMiddleware validates the bearer token and its backing session, then
// stores the user id on the request context.
func (h *UserHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logger.L.Debug("AuthMiddleware: Authorization header missing", "path", r.URL.Path)
			utils.SendJSONError(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			utils.SendJSONError(w, "Malformed token", http.StatusUnauthorized)
			return
		}

		userIDStr, err := h.authService.ValidateToken(tokenString)
		if err != nil {
			logger.L.Warn("AuthMiddleware: Token validation failed", "path", r.URL.Path, "error", err)
			utils.SendJSONError(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		userIDInt, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil {
			logger.L.Error("AuthMiddleware: Invalid user ID format in token", "userIDStr", userIDStr, "error", err)
			utils.SendJSONError(w, "Invalid user ID in token", http.StatusInternalServerError)
			return
		}

		if _, err := model.GetSessionByToken(database.DB, tokenString); err != nil {
			// OAuth users authenticate without a local session row; only
			// local accounts require one.
			user, userErr := model.GetUserByID(database.DB, userIDInt)
			if userErr != nil {
				logger.L.Warn("AuthMiddleware: User not found after session check failed", "userID", userIDStr, "error", userErr)
				utils.SendJSONError(w, "Invalid session or user", http.StatusUnauthorized)
				return
			}
			if user.AuthProvider == "local" {
				logger.L.Warn("AuthMiddleware: Session validation failed for local user", "path", r.URL.Path, "error", err)
				utils.SendJSONError(w, "Invalid or expired session", http.StatusUnauthorized)
				return
			}
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userIDInt)
		next(w, r.WithContext(ctx))
	}
}
