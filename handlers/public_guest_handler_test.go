package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/adzibilal/kondanginbackend/models"
)

func createTestGuest(t *testing.T, env *testEnv, name string) *models.Guest {
	t.Helper()
	guest := &models.Guest{Name: name, Session: 1, TotalGuest: 2, Whatsapp: "628123456"}
	if err := env.guestRepo.Create(guest); err != nil {
		t.Fatalf("failed to create guest %q: %v", name, err)
	}
	return guest
}

func TestGetGuestBySlugOmitsPrivateFields(t *testing.T) {
	env := newTestEnv(t)
	guest := createTestGuest(t, env, "Budi")

	rec := env.do(t, http.MethodGet, "/api/guests/"+guest.Slug, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	view, ok := body["guest"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing guest object in response: %v", body)
	}
	if view["name"] != "Budi" || view["slug"] != guest.Slug {
		t.Errorf("unexpected guest view: %v", view)
	}
	for _, private := range []string{"whatsapp", "id"} {
		if _, present := view[private]; present {
			t.Errorf("public guest view leaks %q: %v", private, view)
		}
	}
}

func TestGetGuestBySlugNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/guests/no-such-slug", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestResolveTokenSlug(t *testing.T) {
	env := newTestEnv(t)
	guest := createTestGuest(t, env, "Budi")

	rec := env.do(t, http.MethodGet, "/api/guests/resolve?token="+guest.Slug, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	view := body["guest"].(map[string]interface{})
	if view["name"] != "Budi" || view["slug"] != guest.Slug {
		t.Errorf("unexpected resolved view: %v", view)
	}
}

func TestResolveTokenLegacyJSON(t *testing.T) {
	env := newTestEnv(t)

	token := url.QueryEscape(`{"name":"Pak Joko","total_guest":3}`)
	rec := env.do(t, http.MethodGet, "/api/guests/resolve?token="+token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	view := body["guest"].(map[string]interface{})
	if view["name"] != "Pak Joko" || view["totalGuest"] != float64(3) {
		t.Errorf("unexpected legacy view: %v", view)
	}
	if slug, _ := view["slug"].(string); slug != "" {
		t.Errorf("legacy view must not carry a slug: %v", view)
	}
}

func TestResolveTokenMissing(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/guests/resolve", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a token, got %d", rec.Code)
	}
}
