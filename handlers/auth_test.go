package handlers

import (
	"net/http"
	"testing"
)

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"password": "nope"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName && c.MaxAge >= 0 && c.Value != "" {
			t.Error("failed login must not set a session cookie")
		}
	}
}

func TestLoginSetsHTTPOnlyCookie(t *testing.T) {
	env := newTestEnv(t)

	cookie := env.login(t)
	if !cookie.HttpOnly {
		t.Error("session cookie must be httpOnly")
	}
	if cookie.Value == "" {
		t.Error("session cookie has no value")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite=Lax, got %v", cookie.SameSite)
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/admin/guests", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", rec.Code)
	}

	cookie := env.login(t)
	rec = env.do(t, http.MethodGet, "/api/admin/guests", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with a session, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminRoutesRejectForgedToken(t *testing.T) {
	env := newTestEnv(t)

	forged := &http.Cookie{Name: SessionCookieName, Value: "not-a-jwt"}
	rec := env.do(t, http.MethodGet, "/api/admin/guests", nil, forged)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for a forged token, got %d", rec.Code)
	}
}
