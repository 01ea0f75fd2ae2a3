package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/username/gainledger/src/logger"
	"github.com/username/gainledger/src/security"
	"github.com/username/gainledger/src/utils"
)

const csrfCookieName = "_csrf_token"

// GetCSRFToken issues a fresh token using the double-submit cookie pattern:
// the same value goes into an HttpOnly cookie and the response body, and
// state-changing requests must echo it back in the X-CSRF-Token header.
func GetCSRFToken(authKey []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := security.GenerateSecureToken()
		if err != nil {
			utils.SendJSONError(w, "failed to generate CSRF token", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     csrfCookieName,
			Value:    signToken(authKey, token),
			Path:     "/",
			SameSite: http.SameSiteLaxMode,
			HttpOnly: true,
			Secure:   false, // set true behind HTTPS
			MaxAge:   3600,
		})

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-CSRF-Token", token)
		json.NewEncoder(w).Encode(map[string]string{"csrfToken": token})
	}
}

// CSRFMiddleware validates the double-submit pair on state-changing
// requests. The cookie carries an HMAC over the token so it cannot be
// forged client-side.
func CSRFMiddleware(authKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			headerToken := r.Header.Get("X-CSRF-Token")
			cookie, err := r.Cookie(csrfCookieName)
			if headerToken == "" || err != nil {
				logger.L.Warn("CSRF check failed: token or cookie missing", "path", r.URL.Path)
				utils.SendJSONError(w, "CSRF token missing", http.StatusForbidden)
				return
			}

			if !hmac.Equal([]byte(cookie.Value), []byte(signToken(authKey, headerToken))) {
				logger.L.Warn("CSRF check failed: token mismatch", "path", r.URL.Path)
				utils.SendJSONError(w, "CSRF token invalid", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func signToken(authKey []byte, token string) string {
	mac := hmac.New(sha256.New, authKey)
	mac.Write([]byte(token))
	sig := hex.EncodeToString(mac.Sum(nil))
	return base64.RawURLEncoding.EncodeToString([]byte(token)) + "." + sig
}
