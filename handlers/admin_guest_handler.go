package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/adzibilal/kondanginbackend/importer"
	"github.com/adzibilal/kondanginbackend/invite"
	"github.com/adzibilal/kondanginbackend/models"
	"github.com/adzibilal/kondanginbackend/repository"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type AdminGuestHandler struct {
	GuestRepo   repository.GuestRepository
	SettingRepo repository.SettingRepository
	BaseURL     string
	Logger      zerolog.Logger
}

func NewAdminGuestHandler(guestRepo repository.GuestRepository, settingRepo repository.SettingRepository, baseURL string, logger zerolog.Logger) *AdminGuestHandler {
	return &AdminGuestHandler{GuestRepo: guestRepo, SettingRepo: settingRepo, BaseURL: baseURL, Logger: logger}
}

// flexInt accepts both JSON numbers and numeric strings, since the admin form
// historically submitted either.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

type GuestPayload struct {
	Name       string  `json:"name"`
	Session    flexInt `json:"session"`
	TotalGuest flexInt `json:"totalGuest"`
	Whatsapp   string  `json:"whatsapp"`
}

func (p *GuestPayload) validate() string {
	if strings.TrimSpace(p.Name) == "" || p.Session == 0 || p.TotalGuest == 0 {
		return "Missing required fields"
	}
	if p.Session != 1 && p.Session != 2 {
		return "Session must be 1 or 2"
	}
	if p.TotalGuest < 1 {
		return "totalGuest must be at least 1"
	}
	return ""
}

// GuestResponseDTO is the admin view of a guest, including the generated
// invitation link and a ready-to-send WhatsApp URL.
type GuestResponseDTO struct {
	ID             uint   `json:"id"`
	Slug           string `json:"slug"`
	Name           string `json:"name"`
	Session        int    `json:"session"`
	TotalGuest     int    `json:"totalGuest"`
	Whatsapp       string `json:"whatsapp"`
	InvitationLink string `json:"invitationLink"`
	WhatsappURL    string `json:"whatsappUrl,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// messageTemplate returns the stored outreach template, or empty to signal the
// built-in default. A missing setting row is the normal pre-configuration
// state, not an error.
func (h *AdminGuestHandler) messageTemplate() string {
	setting, err := h.SettingRepo.Get(models.SettingKeyMessageTemplate)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			h.Logger.Warn().Err(err).Msg("failed to load message template setting")
		}
		return ""
	}
	return setting.Value
}

func (h *AdminGuestHandler) toGuestResponseDTO(g *models.Guest, template string) GuestResponseDTO {
	link := invite.InvitationLink(h.BaseURL, g.Slug)
	dto := GuestResponseDTO{
		ID:             g.ID,
		Slug:           g.Slug,
		Name:           g.Name,
		Session:        g.Session,
		TotalGuest:     g.TotalGuest,
		Whatsapp:       g.Whatsapp,
		InvitationLink: link,
		CreatedAt:      g.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      g.UpdatedAt.Format(time.RFC3339),
	}
	if g.Whatsapp != "" {
		message := invite.RenderMessage(template, g.Name, link)
		dto.WhatsappURL = invite.WhatsAppURL(g.Whatsapp, message)
	}
	return dto
}

func (h *AdminGuestHandler) ListGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := h.GuestRepo.ListAll()
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list guests")
		WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to fetch guests")
		return
	}

	template := h.messageTemplate()
	dtos := make([]GuestResponseDTO, len(guests))
	for i := range guests {
		dtos[i] = h.toGuestResponseDTO(&guests[i], template)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"guests": dtos})
}

func (h *AdminGuestHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var payload GuestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "Invalid request payload: "+err.Error())
		return
	}
	if reason := payload.validate(); reason != "" {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, reason)
		return
	}

	guest := &models.Guest{
		Name:       strings.TrimSpace(payload.Name),
		Session:    int(payload.Session),
		TotalGuest: int(payload.TotalGuest),
		Whatsapp:   strings.TrimSpace(payload.Whatsapp),
	}
	if err := h.GuestRepo.Create(guest); err != nil {
		h.Logger.Error().Err(err).Str("name", guest.Name).Msg("failed to create guest")
		WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to create guest")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      guest.ID,
		"guest":   h.toGuestResponseDTO(guest, h.messageTemplate()),
		"message": "Guest created successfully",
	})
}

func (h *AdminGuestHandler) GetGuest(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "Invalid guest ID format")
		return
	}

	guest, err := h.GuestRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, CodeNotFound, "Guest not found")
		} else {
			h.Logger.Error().Err(err).Uint("id", id).Msg("failed to fetch guest")
			WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to fetch guest")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"guest": h.toGuestResponseDTO(guest, h.messageTemplate())})
}

func (h *AdminGuestHandler) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "Invalid guest ID format")
		return
	}

	var payload GuestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "Invalid request payload: "+err.Error())
		return
	}
	if reason := payload.validate(); reason != "" {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, reason)
		return
	}

	// the slug is never part of the update set, whatever the caller sent
	err = h.GuestRepo.Update(id, strings.TrimSpace(payload.Name), int(payload.Session), int(payload.TotalGuest), strings.TrimSpace(payload.Whatsapp))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, CodeNotFound, "Guest not found")
		} else {
			h.Logger.Error().Err(err).Uint("id", id).Msg("failed to update guest")
			WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to update guest")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Guest updated successfully",
	})
}

// DeleteGuest removes the guest record only; RSVPs and wishes that reference
// its slug stay behind and display as unknown.
func (h *AdminGuestHandler) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "Invalid guest ID format")
		return
	}

	if err := h.GuestRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, CodeNotFound, "Guest not found")
		} else {
			h.Logger.Error().Err(err).Uint("id", id).Msg("failed to delete guest")
			WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to delete guest")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Guest deleted successfully",
	})
}

type ImportPayload struct {
	Guests []importer.Row `json:"guests"`
	CSV    string         `json:"csv"`
}

// ImportGuests bulk-creates guests from parsed rows or raw CSV text. Partial
// success is expected and reported per row, never retried.
func (h *AdminGuestHandler) ImportGuests(w http.ResponseWriter, r *http.Request) {
	var payload ImportPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "Invalid request payload: "+err.Error())
		return
	}

	rows := payload.Guests
	if len(rows) == 0 && payload.CSV != "" {
		parsed, err := importer.ParseCSV(strings.NewReader(payload.CSV))
		if err != nil {
			WriteAPIError(w, http.StatusBadRequest, CodeValidationError, err.Error())
			return
		}
		rows = parsed
	}
	if len(rows) == 0 {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "Invalid guests data")
		return
	}

	result := importer.Import(h.GuestRepo, rows)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Imported " + strconv.Itoa(len(result.Succeeded)) + " guests successfully",
		"results": result,
	})
}

func parseIDParam(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	return uint(id), err
}
