package models

import "time"

// RSVP represents one attendance confirmation. GuestSlug is a weak reference
// to guests.slug: it is nil for legacy submissions that predate the slug
// scheme, and carries a unique index so the store itself rejects a second
// confirmation for the same slug. SQLite unique indexes ignore NULLs, which
// keeps legacy rows exempt from the constraint.
type RSVP struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Attendance  string    `json:"attendance" gorm:"not null"` // "yes" or "no"
	GuestCount  int       `json:"guestCount" gorm:"not null"`
	GuestParam  string    `json:"guestParam"` // raw token as received, kept for audit
	GuestSlug   *string   `json:"guestSlug,omitempty" gorm:"uniqueIndex"`
	SubmittedAt time.Time `json:"submittedAt" gorm:"autoCreateTime"`
}

const (
	AttendanceYes = "yes"
	AttendanceNo  = "no"
)
