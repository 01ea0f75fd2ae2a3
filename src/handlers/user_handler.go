package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/username/gainledger/src/config"
	"github.com/username/gainledger/src/database"
	"github.com/username/gainledger/src/logger"
	"github.com/username/gainledger/src/model"
	"github.com/username/gainledger/src/security"
	"github.com/username/gainledger/src/services"
	"github.com/username/gainledger/src/utils"
)

type UserHandler struct {
	authService  *security.AuthService
	emailService services.EmailService
}

func NewUserHandler(authService *security.AuthService, emailService services.EmailService) *UserHandler {
	return &UserHandler{
		authService:  authService,
		emailService: emailService,
	}
}

func (h *UserHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	credentials.Username = strings.TrimSpace(credentials.Username)
	credentials.Email = strings.TrimSpace(credentials.Email)
	if credentials.Username == "" || credentials.Email == "" {
		utils.SendJSONError(w, "Username and email are required", http.StatusBadRequest)
		return
	}
	if _, err := mail.ParseAddress(credentials.Email); err != nil {
		utils.SendJSONError(w, "Invalid email address", http.StatusBadRequest)
		return
	}
	if len(credentials.Password) < 8 {
		utils.SendJSONError(w, "Password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	hashedPassword, err := h.authService.HashPassword(credentials.Password)
	if err != nil {
		utils.SendJSONError(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	user := &model.User{
		Username: credentials.Username,
		Email:    credentials.Email,
		Password: hashedPassword,
	}
	if err := user.CreateUser(database.DB); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			utils.SendJSONError(w, "Username or email already exists", http.StatusConflict)
			return
		}
		logger.L.Error("Failed to create user", "error", err)
		utils.SendJSONError(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	token, err := security.GenerateSecureToken()
	if err != nil {
		logger.L.Error("Failed to generate verification token", "userID", user.ID, "error", err)
	} else {
		expiresAt := time.Now().Add(config.Cfg.VerificationTokenExpiry)
		if err := model.SetVerificationToken(database.DB, user.ID, token, expiresAt); err != nil {
			logger.L.Error("Failed to store verification token", "userID", user.ID, "error", err)
		} else if err := h.emailService.SendVerificationEmail(user.Email, user.Username, token); err != nil {
			logger.L.Error("Failed to send verification email", "userID", user.ID, "error", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"message": "User registered successfully. Please check your email to verify your account.",
	})
}

func (h *UserHandler) VerifyEmailHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		utils.SendJSONError(w, "Verification token is required", http.StatusBadRequest)
		return
	}
	if err := model.VerifyEmailByToken(database.DB, token); err != nil {
		utils.SendJSONError(w, "Invalid or expired verification token", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Email verified successfully"})
}

func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := model.GetUserByUsername(database.DB, credentials.Username)
	if err != nil {
		logger.L.Debug("Login: user lookup failed", "username", credentials.Username, "error", err)
		utils.SendJSONError(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}
	if err := user.CheckPassword(credentials.Password); err != nil {
		logger.L.Debug("Login: password check failed", "username", credentials.Username)
		utils.SendJSONError(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}
	if !user.IsEmailVerified {
		utils.SendJSONError(w, "Email address not verified", http.StatusForbidden)
		return
	}

	accessToken, refreshToken, err := h.issueSession(r, user.ID)
	if err != nil {
		logger.L.Error("Login: failed to issue session", "userID", user.ID, "error", err)
		utils.SendJSONError(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user": map[string]interface{}{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

func (h *UserHandler) RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if requestBody.RefreshToken == "" {
		utils.SendJSONError(w, "Refresh token is required", http.StatusBadRequest)
		return
	}

	session, err := model.GetSessionByRefreshToken(database.DB, requestBody.RefreshToken)
	if err != nil {
		logger.L.Warn("Refresh token validation failed", "error", err)
		utils.SendJSONError(w, "Invalid refresh token", http.StatusUnauthorized)
		return
	}
	if err := model.DeleteSessionByToken(database.DB, session.Token); err != nil {
		logger.L.Warn("Failed to drop rotated session", "sessionID", session.ID, "error", err)
	}

	accessToken, refreshToken, err := h.issueSession(r, session.UserID)
	if err != nil {
		logger.L.Error("Refresh: failed to issue session", "userID", session.UserID, "error", err)
		utils.SendJSONError(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (h *UserHandler) LogoutUserHandler(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		utils.SendJSONError(w, "Authorization header required", http.StatusUnauthorized)
		return
	}
	if err := model.DeleteSessionByToken(database.DB, tokenString); err != nil {
		logger.L.Warn("Logout: failed to delete session", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) RequestPasswordResetHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Always answer 200 so the endpoint cannot be used to probe for
	// registered addresses.
	respond := func() {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "If that email is registered, a password reset link has been sent.",
		})
	}

	user, err := model.GetUserByEmail(database.DB, strings.TrimSpace(requestBody.Email))
	if err != nil {
		logger.L.Debug("Password reset requested for unknown email", "email", requestBody.Email)
		respond()
		return
	}

	token, err := security.GenerateSecureToken()
	if err != nil {
		logger.L.Error("Failed to generate password reset token", "userID", user.ID, "error", err)
		respond()
		return
	}
	expiresAt := time.Now().Add(config.Cfg.PasswordResetTokenExpiry)
	if err := model.SetPasswordResetToken(database.DB, user.ID, token, expiresAt); err != nil {
		logger.L.Error("Failed to store password reset token", "userID", user.ID, "error", err)
		respond()
		return
	}
	if err := h.emailService.SendPasswordResetEmail(user.Email, user.Username, token); err != nil {
		logger.L.Error("Failed to send password reset email", "userID", user.ID, "error", err)
	}
	respond()
}

func (h *UserHandler) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if requestBody.Token == "" {
		utils.SendJSONError(w, "Reset token is required", http.StatusBadRequest)
		return
	}
	if len(requestBody.NewPassword) < 8 {
		utils.SendJSONError(w, "Password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	hashedPassword, err := h.authService.HashPassword(requestBody.NewPassword)
	if err != nil {
		utils.SendJSONError(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}
	if err := model.ResetPasswordByToken(database.DB, requestBody.Token, hashedPassword); err != nil {
		utils.SendJSONError(w, "Invalid or expired reset token", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Password reset successfully"})
}

// HandleCheckUserData reports whether the authenticated user has any
// transactions yet; the frontend uses this to decide between onboarding and
// the dashboard.
func (h *UserHandler) HandleCheckUserData(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}
	var count int64
	if err := database.DB.QueryRow(`SELECT COUNT(*) FROM transactions WHERE user_id = ?`, userID).Scan(&count); err != nil {
		utils.SendJSONError(w, fmt.Sprintf("Error checking data for userID %d: %v", userID, err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"has_data": count > 0})
}

// issueSession creates access and refresh tokens plus the backing session
// row for a user.
func (h *UserHandler) issueSession(r *http.Request, userID int64) (accessToken, refreshToken string, err error) {
	accessToken, err = h.authService.GenerateToken(strconv.FormatInt(userID, 10))
	if err != nil {
		return "", "", fmt.Errorf("generating access token: %w", err)
	}
	refreshToken, err = h.authService.GenerateRefreshToken()
	if err != nil {
		return "", "", fmt.Errorf("generating refresh token: %w", err)
	}
	session := &model.Session{
		UserID:       userID,
		Token:        accessToken,
		RefreshToken: refreshToken,
		UserAgent:    r.UserAgent(),
		ClientIP:     r.RemoteAddr,
		ExpiresAt:    time.Now().Add(config.Cfg.RefreshTokenExpiry),
	}
	if err := model.CreateSession(database.DB, session); err != nil {
		return "", "", fmt.Errorf("creating session: %w", err)
	}
	return accessToken, refreshToken, nil
}
