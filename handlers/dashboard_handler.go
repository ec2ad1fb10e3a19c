package handlers

import (
	"database/sql"
	"net/http"

	"github.com/adzibilal/kondanginbackend/database"
	"github.com/rs/zerolog"
)

type DashboardHandler struct {
	DB     *sql.DB
	Logger zerolog.Logger
}

func NewDashboardHandler(db *sql.DB, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{DB: db, Logger: logger}
}

// GetStats serves the aggregate counters on the admin landing page.
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := database.GetDashboardStats(h.DB)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to compute dashboard stats")
		WriteAPIError(w, http.StatusInternalServerError, CodePersistenceError, "Failed to fetch dashboard stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
