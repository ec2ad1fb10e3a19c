package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/facette/natsort"
	"github.com/rs/zerolog"
)

var supportedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// GalleryRoutePrefix is where the asset server mounts the gallery files.
const GalleryRoutePrefix = "/api/gallery-assets/"

type GalleryHandler struct {
	GalleryPath string
	Logger      zerolog.Logger
}

func NewGalleryHandler(galleryPath string, logger zerolog.Logger) *GalleryHandler {
	return &GalleryHandler{GalleryPath: galleryPath, Logger: logger}
}

type GalleryImageDTO struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ListImages returns the gallery contents in natural filename order, so
// photo_2 sorts before photo_10.
func (h *GalleryHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(h.GalleryPath)
	if err != nil {
		if os.IsNotExist(err) {
			writeJSON(w, http.StatusOK, map[string]interface{}{"images": []GalleryImageDTO{}})
			return
		}
		h.Logger.Error().Err(err).Str("path", h.GalleryPath).Msg("failed to read gallery directory")
		WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to list gallery")
		return
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if supportedImageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			names = append(names, entry.Name())
		}
	}
	natsort.Sort(names)

	images := make([]GalleryImageDTO, len(names))
	for i, name := range names {
		images[i] = GalleryImageDTO{Name: name, URL: GalleryRoutePrefix + name}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"images": images})
}
