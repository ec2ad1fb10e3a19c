package models

import "time"

// Wish represents one voice message. A guest may leave any number of wishes,
// so GuestSlug is indexed but not unique. AudioURL points at the externally
// hosted recording; the media bytes are never stored here. Duration is a
// display string (e.g. "1:23") supplied by the uploader, not canonical seconds.
type Wish struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null"`
	AudioURL   string    `json:"audioUrl" gorm:"not null"`
	Duration   string    `json:"duration"`
	GuestParam string    `json:"guestParam"`
	GuestSlug  *string   `json:"guestSlug,omitempty" gorm:"index"`
	CreatedAt  time.Time `json:"createdAt"`
}
