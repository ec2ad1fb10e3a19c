package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/adzibilal/kondanginbackend/models"
	"github.com/adzibilal/kondanginbackend/repository"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type WishHandler struct {
	WishRepo  repository.WishRepository
	GuestRepo repository.GuestRepository
	Logger    zerolog.Logger
}

func NewWishHandler(wishRepo repository.WishRepository, guestRepo repository.GuestRepository, logger zerolog.Logger) *WishHandler {
	return &WishHandler{WishRepo: wishRepo, GuestRepo: guestRepo, Logger: logger}
}

type WishResponseDTO struct {
	ID         uint                `json:"id"`
	Name       string              `json:"name"`
	AudioURL   string              `json:"audioUrl"`
	Duration   string              `json:"duration"`
	GuestParam string              `json:"guestParam"`
	GuestSlug  *string             `json:"guestSlug,omitempty"`
	CreatedAt  string              `json:"createdAt"`
	Guest      *models.GuestPublic `json:"guest,omitempty"`
}

func toWishResponseDTO(wish *models.Wish, guest *models.GuestPublic) WishResponseDTO {
	return WishResponseDTO{
		ID:         wish.ID,
		Name:       wish.Name,
		AudioURL:   wish.AudioURL,
		Duration:   wish.Duration,
		GuestParam: wish.GuestParam,
		GuestSlug:  wish.GuestSlug,
		CreatedAt:  wish.CreatedAt.Format(time.RFC3339),
		Guest:      guest,
	}
}

// ListWishes serves the public wishes wall, newest first.
func (h *WishHandler) ListWishes(w http.ResponseWriter, r *http.Request) {
	wishes, err := h.WishRepo.ListAll()
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list wishes")
		WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to fetch wishes")
		return
	}

	dtos := make([]WishResponseDTO, len(wishes))
	for i := range wishes {
		dtos[i] = toWishResponseDTO(&wishes[i], nil)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"wishes": dtos})
}

// ListWishesAdmin is the review view: same rows, with guest references
// resolved best-effort.
func (h *WishHandler) ListWishesAdmin(w http.ResponseWriter, r *http.Request) {
	wishes, err := h.WishRepo.ListAll()
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list wishes")
		WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to fetch wishes")
		return
	}

	dtos := make([]WishResponseDTO, len(wishes))
	for i := range wishes {
		dtos[i] = toWishResponseDTO(&wishes[i], h.resolveGuest(wishes[i].GuestSlug))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"wishes": dtos})
}

type WishSubmitPayload struct {
	Name       string `json:"name"`
	AudioURL   string `json:"audioUrl"`
	Duration   string `json:"duration"`
	GuestParam string `json:"guestParam"`
	GuestSlug  string `json:"guestSlug"`
}

// Submit stores a voice-wish reference. There is no duplicate check: a guest
// may leave as many wishes as they like. The audio is assumed already hosted;
// only the URL is stored.
func (h *WishHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var payload WishSubmitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "Invalid request payload: "+err.Error())
		return
	}

	name := strings.TrimSpace(payload.Name)
	slug := strings.TrimSpace(payload.GuestSlug)
	if name == "" || payload.AudioURL == "" || payload.Duration == "" || slug == "" {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "Missing required fields")
		return
	}

	wish := &models.Wish{
		Name:       name,
		AudioURL:   payload.AudioURL,
		Duration:   payload.Duration,
		GuestParam: payload.GuestParam,
		GuestSlug:  &slug,
	}
	if err := h.WishRepo.Create(wish); err != nil {
		h.Logger.Error().Err(err).Msg("failed to create wish")
		WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to submit wish")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      wish.ID,
		"message": "Wish submitted successfully",
	})
}

func (h *WishHandler) DeleteWish(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "ID is required")
		return
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "Invalid wish ID format")
		return
	}

	if err := h.WishRepo.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, CodeNotFound, "Wish not found")
		} else {
			h.Logger.Error().Err(err).Uint64("id", id).Msg("failed to delete wish")
			WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to delete wish")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Wish deleted successfully",
	})
}

func (h *WishHandler) resolveGuest(slug *string) *models.GuestPublic {
	if slug == nil || *slug == "" {
		return nil
	}
	guest, err := h.GuestRepo.GetBySlug(*slug)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			h.Logger.Warn().Err(err).Str("slug", *slug).Msg("failed to resolve wish guest reference")
		}
		return nil
	}
	public := guest.Public()
	return &public
}
