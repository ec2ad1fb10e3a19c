package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// AssetServer creates a handler serving static files from assetDir for routes
// mounted at routePrefix (e.g. GalleryRoutePrefix + "*"). Paths are cleaned
// and confined to the asset directory.
func AssetServer(assetDir, routePrefix string, logger zerolog.Logger) http.HandlerFunc {
	assetDir = filepath.Clean(assetDir)

	return func(w http.ResponseWriter, r *http.Request) {
		relativePath := strings.TrimPrefix(r.URL.Path, routePrefix)
		if relativePath == "" || strings.Contains(relativePath, "..") {
			http.Error(w, "Invalid asset path", http.StatusBadRequest)
			return
		}

		requestedPath := filepath.Clean(filepath.Join(assetDir, relativePath))
		if !strings.HasPrefix(requestedPath, assetDir) {
			logger.Warn().Str("request", r.URL.Path).Str("resolved", requestedPath).Msg("attempted asset access outside asset directory")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		if _, err := os.Stat(requestedPath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		} else if err != nil {
			logger.Error().Err(err).Str("path", requestedPath).Msg("failed to stat asset file")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		cacheDuration := 24 * time.Hour
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(cacheDuration.Seconds())))
		w.Header().Set("Expires", time.Now().Add(cacheDuration).Format(http.TimeFormat))

		http.ServeFile(w, r, requestedPath)
	}
}
