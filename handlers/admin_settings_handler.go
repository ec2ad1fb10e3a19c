package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/adzibilal/kondanginbackend/invite"
	"github.com/adzibilal/kondanginbackend/models"
	"github.com/adzibilal/kondanginbackend/repository"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type AdminSettingsHandler struct {
	SettingRepo repository.SettingRepository
	Logger      zerolog.Logger
}

func NewAdminSettingsHandler(settingRepo repository.SettingRepository, logger zerolog.Logger) *AdminSettingsHandler {
	return &AdminSettingsHandler{SettingRepo: settingRepo, Logger: logger}
}

type SettingResponseDTO struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
	Default     bool   `json:"default,omitempty"` // true when serving a built-in value, not a stored row
}

func toSettingResponseDTO(s *models.Setting) SettingResponseDTO {
	return SettingResponseDTO{
		Key:         s.Key,
		Value:       s.Value,
		Description: s.Description,
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *AdminSettingsHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.SettingRepo.ListAll()
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list settings")
		WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to fetch settings")
		return
	}

	dtos := make([]SettingResponseDTO, len(settings))
	for i := range settings {
		dtos[i] = toSettingResponseDTO(&settings[i])
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"settings": dtos})
}

type SettingUpsertPayload struct {
	Key         string  `json:"key"`
	Value       *string `json:"value"`
	Description string  `json:"description"`
}

func (h *AdminSettingsHandler) UpsertSetting(w http.ResponseWriter, r *http.Request) {
	var payload SettingUpsertPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "Invalid request payload: "+err.Error())
		return
	}
	if strings.TrimSpace(payload.Key) == "" || payload.Value == nil {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "Key and value are required")
		return
	}

	setting := &models.Setting{
		Key:         strings.TrimSpace(payload.Key),
		Value:       *payload.Value,
		Description: payload.Description,
	}
	if err := h.SettingRepo.Upsert(setting); err != nil {
		h.Logger.Error().Err(err).Str("key", setting.Key).Msg("failed to upsert setting")
		WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to update setting")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Setting updated successfully",
		"key":     setting.Key,
		"value":   setting.Value,
	})
}

// GetSetting fetches one setting by key. The message template key falls back
// to the built-in default so the admin preview always has something to show.
func (h *AdminSettingsHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	setting, err := h.SettingRepo.Get(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if key == models.SettingKeyMessageTemplate {
				writeJSON(w, http.StatusOK, SettingResponseDTO{
					Key:         key,
					Value:       invite.DefaultMessageTemplate,
					Description: "Built-in default message template",
					Default:     true,
				})
				return
			}
			WriteAPIError(w, http.StatusNotFound, CodeNotFound, "Setting not found")
			return
		}
		h.Logger.Error().Err(err).Str("key", key).Msg("failed to fetch setting")
		WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to fetch setting")
		return
	}

	writeJSON(w, http.StatusOK, toSettingResponseDTO(setting))
}
