package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adzibilal/kondanginbackend/config"
	"github.com/adzibilal/kondanginbackend/models"
	"github.com/adzibilal/kondanginbackend/repository"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	guestRepo   repository.GuestRepository
	rsvpRepo    repository.RSVPRepository
	wishRepo    repository.WishRepository
	settingRepo repository.SettingRepository
	auth        *AuthHandler
	router      chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Guest{}, &models.RSVP{}, &models.Wish{}, &models.Setting{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := config.Config{
		AdminPassword: "test-password",
		SessionSecret: "test-secret",
		SessionHours:  1,
		BaseURL:       "http://localhost:3000",
	}

	log := zerolog.Nop()
	env := &testEnv{
		guestRepo:   repository.NewGormGuestRepository(db),
		rsvpRepo:    repository.NewGormRSVPRepository(db),
		wishRepo:    repository.NewGormWishRepository(db),
		settingRepo: repository.NewGormSettingRepository(db),
	}

	env.auth, err = NewAuthHandler(cfg, log)
	if err != nil {
		t.Fatalf("failed to build auth handler: %v", err)
	}

	adminGuest := NewAdminGuestHandler(env.guestRepo, env.settingRepo, cfg.BaseURL, log)
	publicGuest := NewPublicGuestHandler(env.guestRepo, log)
	rsvp := NewRSVPHandler(env.rsvpRepo, env.guestRepo, log)
	wish := NewWishHandler(env.wishRepo, env.guestRepo, log)
	settings := NewAdminSettingsHandler(env.settingRepo, log)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", env.auth.Login)
		r.Route("/guests", func(r chi.Router) {
			r.Get("/resolve", publicGuest.ResolveToken)
			r.Get("/{slug}", publicGuest.GetGuestBySlug)
		})
		r.Get("/rsvp", rsvp.CheckExisting)
		r.Post("/rsvp", rsvp.Submit)
		r.Get("/wishes", wish.ListWishes)
		r.Post("/wishes", wish.Submit)

		r.Route("/admin", func(r chi.Router) {
			r.Use(env.auth.RequireAuth)
			r.Route("/guests", func(r chi.Router) {
				r.Get("/", adminGuest.ListGuests)
				r.Post("/", adminGuest.CreateGuest)
				r.Post("/import", adminGuest.ImportGuests)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", adminGuest.GetGuest)
					r.Put("/", adminGuest.UpdateGuest)
					r.Delete("/", adminGuest.DeleteGuest)
				})
			})
			r.Get("/rsvp", rsvp.ListRSVPs)
			r.Delete("/rsvp", rsvp.DeleteRSVP)
			r.Get("/wishes", wish.ListWishesAdmin)
			r.Delete("/wishes", wish.DeleteWish)
			r.Route("/settings", func(r chi.Router) {
				r.Get("/", settings.ListSettings)
				r.Post("/", settings.UpsertSetting)
				r.Get("/{key}", settings.GetSetting)
			})
		})
	})
	env.router = r

	return env
}

// do runs a request against the test router, JSON-encoding body when non-nil.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// login performs a real login and returns the session cookie.
func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/auth/login", map[string]string{"password": "test-password"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatal("login response did not set a session cookie")
	return nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return body
}
