package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/adzibilal/kondanginbackend/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// SessionCookieName carries the signed admin session token. The admin surface
// has a single shared password and no per-user identity; the cookie asserts
// only "is authenticated".
const SessionCookieName = "admin_session"

type AuthHandler struct {
	passwordHash []byte
	jwtKey       []byte
	sessionTTL   time.Duration
	secureCookie bool
	Logger       zerolog.Logger
}

// NewAuthHandler hashes the configured shared password once at startup so the
// plaintext never sticks around for comparisons.
func NewAuthHandler(cfg config.Config, logger zerolog.Logger) (*AuthHandler, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &AuthHandler{
		passwordHash: hash,
		jwtKey:       []byte(cfg.SessionSecret),
		sessionTTL:   time.Duration(cfg.SessionHours) * time.Hour,
		secureCookie: strings.HasPrefix(cfg.BaseURL, "https://"),
		Logger:       logger,
	}, nil
}

type LoginPayload struct {
	Password string `json:"password"`
}

// Login verifies the shared admin password and sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "Invalid request payload")
		return
	}
	if payload.Password == "" {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "Password is required")
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(payload.Password)); err != nil {
		WriteAPIError(w, http.StatusUnauthorized, CodeUnauthorized, "Invalid password")
		return
	}

	expirationTime := time.Now().Add(h.sessionTTL)
	claims := &jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(expirationTime),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Issuer:    "kondanginbackend",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(h.jwtKey)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to sign session token")
		WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    tokenString,
		Path:     "/",
		Expires:  expirationTime,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
	})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out successfully",
	})
}

// Me reports whether the request carries a valid session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{
		"authenticated": h.isAuthenticated(r) == nil,
	})
}

func (h *AuthHandler) isAuthenticated(r *http.Request) error {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return fmt.Errorf("no session cookie")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return h.jwtKey, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return fmt.Errorf("invalid session token")
	}
	return nil
}
