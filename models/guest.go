package models

import (
	"time"

	"github.com/adzibilal/kondanginbackend/invite"
	"gorm.io/gorm"
)

// Guest represents one invited party. The slug is the guest's identity token:
// minted once at creation, never reassigned, and never recycled after delete.
type Guest struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Slug       string    `json:"slug" gorm:"uniqueIndex;not null"`
	Name       string    `json:"name" gorm:"not null"`
	Session    int       `json:"session" gorm:"not null"` // event sitting, 1 or 2
	TotalGuest int       `json:"totalGuest" gorm:"not null"`
	Whatsapp   string    `json:"whatsapp"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate mints a fresh slug if none was provided.
func (g *Guest) BeforeCreate(tx *gorm.DB) (err error) {
	if g.Slug == "" {
		g.Slug = invite.NewSlug()
	}
	return
}

// GuestPublic is the unauthenticated view of a guest. It deliberately omits
// the internal id and whatsapp number.
type GuestPublic struct {
	Name       string `json:"name"`
	Session    int    `json:"session"`
	TotalGuest int    `json:"totalGuest"`
	Slug       string `json:"slug"`
}

// Public returns the guest-safe fields served to invitation links.
func (g *Guest) Public() GuestPublic {
	return GuestPublic{
		Name:       g.Name,
		Session:    g.Session,
		TotalGuest: g.TotalGuest,
		Slug:       g.Slug,
	}
}
