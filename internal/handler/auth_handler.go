package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/morphofolio/backend/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles admin login and logout.
type AuthHandler struct {
	adminEmail    string
	passwordHash  []byte
	sessionSecret []byte
	secureCookie  bool
	now           func() time.Time
}

// AuthConfig configures AuthHandler.
type AuthConfig struct {
	AdminEmail        string
	AdminPasswordHash string
	SessionSecret     string
	FrontendURL       string
}

// NewAuthHandler creates an AuthHandler. Cookies are marked Secure when the
// frontend is served over https.
func NewAuthHandler(cfg AuthConfig) *AuthHandler {
	return &AuthHandler{
		adminEmail:    strings.TrimSpace(cfg.AdminEmail),
		passwordHash:  []byte(cfg.AdminPasswordHash),
		sessionSecret: auth.SessionSecretBytes(cfg.SessionSecret),
		secureCookie:  strings.HasPrefix(cfg.FrontendURL, "https://"),
		now:           time.Now,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/admin/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if !h.checkCredentials(req.Email, req.Password) {
		slog.Warn("admin login rejected", "email", req.Email, "remote_addr", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}

	expires := h.now().Add(auth.SessionTTL)
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    auth.CreateSessionToken(h.adminEmail, expires, h.sessionSecret),
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(auth.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookie,
	})
	writeJSON(w, http.StatusOK, map[string]string{"email": h.adminEmail})
}

func (h *AuthHandler) checkCredentials(email, password string) bool {
	if h.adminEmail == "" || len(h.passwordHash) == 0 {
		return false
	}
	// Always run bcrypt so a wrong email costs the same as a wrong password.
	pwErr := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(password))
	return strings.EqualFold(strings.TrimSpace(email), h.adminEmail) && pwErr == nil
}

// Logout handles POST /api/admin/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		Secure:   h.secureCookie,
	})
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}
