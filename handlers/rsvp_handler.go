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

type RSVPHandler struct {
	RSVPRepo  repository.RSVPRepository
	GuestRepo repository.GuestRepository
	Logger    zerolog.Logger
}

func NewRSVPHandler(rsvpRepo repository.RSVPRepository, guestRepo repository.GuestRepository, logger zerolog.Logger) *RSVPHandler {
	return &RSVPHandler{RSVPRepo: rsvpRepo, GuestRepo: guestRepo, Logger: logger}
}

type RSVPResponseDTO struct {
	ID          uint                `json:"id"`
	Name        string              `json:"name"`
	Attendance  string              `json:"attendance"`
	GuestCount  int                 `json:"guestCount"`
	GuestParam  string              `json:"guestParam"`
	GuestSlug   *string             `json:"guestSlug,omitempty"`
	SubmittedAt string              `json:"submittedAt"`
	Guest       *models.GuestPublic `json:"guest,omitempty"` // resolved best-effort; nil when the slug is legacy or orphaned
}

func toRSVPResponseDTO(rsvp *models.RSVP, guest *models.GuestPublic) RSVPResponseDTO {
	return RSVPResponseDTO{
		ID:          rsvp.ID,
		Name:        rsvp.Name,
		Attendance:  rsvp.Attendance,
		GuestCount:  rsvp.GuestCount,
		GuestParam:  rsvp.GuestParam,
		GuestSlug:   rsvp.GuestSlug,
		SubmittedAt: rsvp.SubmittedAt.Format(time.RFC3339),
		Guest:       guest,
	}
}

// CheckExisting reports whether a confirmation already exists for a slug.
// An empty slug always reports none: legacy submissions are never considered
// "existing" for duplicate-checking purposes.
func (h *RSVPHandler) CheckExisting(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		writeJSON(w, http.StatusOK, map[string]interface{}{"exists": false})
		return
	}

	rsvp, err := h.RSVPRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusOK, map[string]interface{}{"exists": false})
			return
		}
		h.Logger.Error().Err(err).Str("slug", slug).Msg("failed to check existing RSVP")
		WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to check RSVP")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"exists": true,
		"rsvp":   toRSVPResponseDTO(rsvp, nil),
	})
}

type RSVPSubmitPayload struct {
	Name       string  `json:"name"`
	Attendance string  `json:"attendance"`
	GuestCount flexInt `json:"guestCount"`
	GuestParam string  `json:"guestParam"`
	GuestSlug  string  `json:"guestSlug"`
}

// Submit records an attendance confirmation. Slugged submissions get a fast
// existence check for a friendly conflict message, but the unique index on
// guest_slug is what actually closes the race between two concurrent
// submissions. Slug-less legacy submissions always insert.
func (h *RSVPHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var payload RSVPSubmitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "Invalid request payload: "+err.Error())
		return
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" || payload.Attendance == "" {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "Missing required fields")
		return
	}
	if payload.Attendance != models.AttendanceYes && payload.Attendance != models.AttendanceNo {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "Attendance must be 'yes' or 'no'")
		return
	}

	guestCount := int(payload.GuestCount)
	if guestCount < 1 {
		guestCount = 1
	}

	rsvp := &models.RSVP{
		Name:       name,
		Attendance: payload.Attendance,
		GuestCount: guestCount,
		GuestParam: payload.GuestParam,
	}

	slug := strings.TrimSpace(payload.GuestSlug)
	if slug != "" {
		if _, err := h.RSVPRepo.GetBySlug(slug); err == nil {
			WriteAPIError(w, http.StatusConflict, CodeDuplicateRSVP, "An RSVP has already been submitted for this invitation")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			h.Logger.Error().Err(err).Str("slug", slug).Msg("failed to check existing RSVP before insert")
			WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to submit RSVP")
			return
		}
		rsvp.GuestSlug = &slug
	}

	if err := h.RSVPRepo.Create(rsvp); err != nil {
		if errors.Is(err, repository.ErrDuplicateRSVP) {
			// lost the race against a concurrent submission with the same slug
			WriteAPIError(w, http.StatusConflict, CodeDuplicateRSVP, "An RSVP has already been submitted for this invitation")
			return
		}
		h.Logger.Error().Err(err).Msg("failed to create RSVP")
		WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to submit RSVP")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      rsvp.ID,
		"message": "RSVP submitted successfully",
	})
}

// ListRSVPs serves the admin review table. Guest references resolve
// best-effort: a deleted guest leaves the RSVP behind with guest = null.
func (h *RSVPHandler) ListRSVPs(w http.ResponseWriter, r *http.Request) {
	rsvps, err := h.RSVPRepo.ListAll()
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list RSVPs")
		WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to fetch RSVPs")
		return
	}

	dtos := make([]RSVPResponseDTO, len(rsvps))
	for i := range rsvps {
		dtos[i] = toRSVPResponseDTO(&rsvps[i], h.resolveGuest(rsvps[i].GuestSlug))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rsvps": dtos})
}

func (h *RSVPHandler) DeleteRSVP(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "ID is required")
		return
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "Invalid RSVP ID format")
		return
	}

	if err := h.RSVPRepo.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, CodeNotFound, "RSVP not found")
		} else {
			h.Logger.Error().Err(err).Uint64("id", id).Msg("failed to delete RSVP")
			WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to delete RSVP")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "RSVP deleted successfully",
	})
}

func (h *RSVPHandler) resolveGuest(slug *string) *models.GuestPublic {
	if slug == nil || *slug == "" {
		return nil
	}
	guest, err := h.GuestRepo.GetBySlug(*slug)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			h.Logger.Warn().Err(err).Str("slug", *slug).Msg("failed to resolve RSVP guest reference")
		}
		return nil
	}
	public := guest.Public()
	return &public
}
