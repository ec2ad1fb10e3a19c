package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultPort            = "8080"
	defaultDatabasePath    = "kondangin.db"
	defaultGalleryPath     = "./gallery"
	defaultBaseURL         = "http://localhost:3000"
	defaultSessionHours    = 24 * 7
	defaultAllowedOrigins  = "http://localhost:3000"
	cloudinaryUploadFormat = "https://api.cloudinary.com/v1_1/%s/upload"
)

type Config struct {
	// HTTP server
	Port           string
	AllowedOrigins []string

	// database path (sqlite file)
	DatabasePath string

	// admin auth
	AdminPassword string // shared secret; hashed at startup, compared at login
	SessionSecret string // JWT signing key for the admin session cookie
	SessionHours  int

	// public link generation
	BaseURL string

	// cloudinary upload proxy
	CloudinaryCloudName    string
	CloudinaryUploadPreset string

	// gallery assets directory
	GalleryPath string
}

// CloudinaryUploadURL returns the unsigned upload endpoint for the configured cloud.
func (c Config) CloudinaryUploadURL() string {
	return fmt.Sprintf(cloudinaryUploadFormat, c.CloudinaryCloudName)
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD must be set")
	}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET must be set")
	}

	galleryPath := getEnvOrDefault("GALLERY_PATH", defaultGalleryPath)
	absGalleryPath, err := filepath.Abs(galleryPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for gallery directory '%s': %w", galleryPath, err)
	}

	origins := strings.Split(getEnvOrDefault("ALLOWED_ORIGINS", defaultAllowedOrigins), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	cfg := Config{
		Port:                   getEnvOrDefault("PORT", defaultPort),
		AllowedOrigins:         origins,
		DatabasePath:           getEnvOrDefault("DATABASE_PATH", defaultDatabasePath),
		AdminPassword:          adminPassword,
		SessionSecret:          sessionSecret,
		SessionHours:           getEnvIntOrDefault("SESSION_HOURS", defaultSessionHours),
		BaseURL:                strings.TrimRight(getEnvOrDefault("BASE_URL", defaultBaseURL), "/"),
		CloudinaryCloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryUploadPreset: os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
		GalleryPath:            absGalleryPath,
	}

	return cfg, nil
}
