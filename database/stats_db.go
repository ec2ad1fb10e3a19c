package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// DashboardStats aggregates the counters shown on the admin dashboard.
type DashboardStats struct {
	TotalGuests     int `json:"totalGuests"`     // guest records (invitations sent)
	TotalInvited    int `json:"totalInvited"`    // sum of totalGuest across invitations
	RSVPYes         int `json:"rsvpYes"`         // confirmations with attendance = yes
	RSVPNo          int `json:"rsvpNo"`          // confirmations with attendance = no
	ConfirmedGuests int `json:"confirmedGuests"` // sum of guestCount on attending RSVPs
	TotalWishes     int `json:"totalWishes"`
}

// GetDashboardStats runs the aggregate queries behind the admin dashboard.
// These are hand-built against the raw connection rather than going through
// the repositories, since GORM models give us nothing for cross-table sums.
func GetDashboardStats(db *sql.DB) (DashboardStats, error) {
	var stats DashboardStats

	guestQuery := sq.Select("COUNT(*)", "COALESCE(SUM(total_guest), 0)").From("guests")
	query, args, err := guestQuery.ToSql()
	if err != nil {
		return stats, fmt.Errorf("failed to build guest stats query: %w", err)
	}
	if err := db.QueryRow(query, args...).Scan(&stats.TotalGuests, &stats.TotalInvited); err != nil {
		return stats, fmt.Errorf("failed to query guest stats: %w", err)
	}

	rsvpQuery := sq.Select(
		"COALESCE(SUM(CASE WHEN attendance = 'yes' THEN 1 ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN attendance = 'no' THEN 1 ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN attendance = 'yes' THEN guest_count ELSE 0 END), 0)",
	).From("rsvps")
	query, args, err = rsvpQuery.ToSql()
	if err != nil {
		return stats, fmt.Errorf("failed to build rsvp stats query: %w", err)
	}
	if err := db.QueryRow(query, args...).Scan(&stats.RSVPYes, &stats.RSVPNo, &stats.ConfirmedGuests); err != nil {
		return stats, fmt.Errorf("failed to query rsvp stats: %w", err)
	}

	wishQuery := sq.Select("COUNT(*)").From("wishes")
	query, args, err = wishQuery.ToSql()
	if err != nil {
		return stats, fmt.Errorf("failed to build wish stats query: %w", err)
	}
	if err := db.QueryRow(query, args...).Scan(&stats.TotalWishes); err != nil {
		return stats, fmt.Errorf("failed to query wish stats: %w", err)
	}

	return stats, nil
}
