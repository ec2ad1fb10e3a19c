package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/adzibilal/kondanginbackend/config"
	"github.com/rs/zerolog"
)

const maxAudioUploadBytes = 20 << 20 // 20 MiB

type UploadHandler struct {
	Cfg    config.Config
	Client *http.Client
	Logger zerolog.Logger
}

func NewUploadHandler(cfg config.Config, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		Cfg:    cfg,
		Client: &http.Client{Timeout: 30 * time.Second},
		Logger: logger,
	}
}

type cloudinaryUploadResponse struct {
	SecureURL string  `json:"secure_url"`
	Duration  float64 `json:"duration"`
}

// UploadAudio proxies a recorded voice message to Cloudinary and returns the
// hosted URL plus the duration Cloudinary reports. The media bytes are never
// persisted locally; the wish submission that follows stores only the URL.
func (h *UploadHandler) UploadAudio(w http.ResponseWriter, r *http.Request) {
	if h.Cfg.CloudinaryCloudName == "" || h.Cfg.CloudinaryUploadPreset == "" {
		WriteAPIError(w, http.StatusInternalServerError, CodeUpstreamError, "Cloudinary configuration missing")
		return
	}

	if err := r.ParseMultipartForm(maxAudioUploadBytes); err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeValidationError, "No audio file provided")
		return
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", header.Filename)
	if err == nil {
		_, err = io.Copy(part, file)
	}
	if err == nil {
		err = writer.WriteField("upload_preset", h.Cfg.CloudinaryUploadPreset)
	}
	if err == nil {
		// Cloudinary treats audio as a video resource
		err = writer.WriteField("resource_type", "video")
	}
	if err == nil {
		err = writer.Close()
	}
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to build upstream upload request")
		WriteAPIError(w, http.StatusInternalServerError, CodeUpstreamError, "Failed to upload audio")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.Cfg.CloudinaryUploadURL(), &body)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, CodeUpstreamError, "Failed to upload audio")
		return
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := h.Client.Do(req)
	if err != nil {
		h.Logger.Error().Err(err).Msg("cloudinary upload request failed")
		WriteAPIError(w, http.StatusBadGateway, CodeUpstreamError, "Failed to upload audio to Cloudinary")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		h.Logger.Error().Int("status", resp.StatusCode).Str("body", string(respBody)).Msg("cloudinary rejected upload")
		WriteAPIError(w, http.StatusBadGateway, CodeUpstreamError, "Failed to upload audio to Cloudinary")
		return
	}

	var uploadResp cloudinaryUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		h.Logger.Error().Err(err).Msg("failed to decode cloudinary response")
		WriteAPIError(w, http.StatusBadGateway, CodeUpstreamError, "Failed to upload audio to Cloudinary")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"audioUrl": uploadResp.SecureURL,
		"duration": formatDuration(uploadResp.Duration),
	})
}

// formatDuration renders seconds as the m:ss display string stored on wishes.
func formatDuration(seconds float64) string {
	total := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
