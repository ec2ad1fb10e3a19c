package handlers

import (
	"errors"
	"net/http"

	"github.com/adzibilal/kondanginbackend/invite"
	"github.com/adzibilal/kondanginbackend/repository"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type PublicGuestHandler struct {
	GuestRepo repository.GuestRepository
	Logger    zerolog.Logger
}

func NewPublicGuestHandler(guestRepo repository.GuestRepository, logger zerolog.Logger) *PublicGuestHandler {
	return &PublicGuestHandler{GuestRepo: guestRepo, Logger: logger}
}

// GetGuestBySlug serves the invitation page's guest lookup. Only public
// fields leave this endpoint; whatsapp and the internal id never do.
func (h *PublicGuestHandler) GetGuestBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "Slug is required")
		return
	}

	guest, err := h.GuestRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, CodeNotFound, "Guest not found")
		} else {
			h.Logger.Error().Err(err).Str("slug", slug).Msg("failed to fetch guest by slug")
			WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to fetch guest")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"guest": guest.Public()})
}

// ResolveToken resolves a raw guest URL parameter through the three-tier
// fallback: stored slug, then legacy inline JSON, then bare display name.
// It always answers 200 for a non-empty token; the legacy tiers cannot fail.
func (h *PublicGuestHandler) ResolveToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "Token is required")
		return
	}

	view, err := invite.Resolve(token, h.slugLookup)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to resolve guest token")
		WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to resolve guest")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"guest": view})
}

func (h *PublicGuestHandler) slugLookup(slug string) (invite.GuestView, bool, error) {
	guest, err := h.GuestRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invite.GuestView{}, false, nil
		}
		return invite.GuestView{}, false, err
	}
	return invite.GuestView{
		Name:       guest.Name,
		Session:    guest.Session,
		TotalGuest: guest.TotalGuest,
		Slug:       guest.Slug,
	}, true, nil
}
