package repository

import (
	"errors"

	"github.com/adzibilal/kondanginbackend/models"
)

// ErrDuplicateRSVP is returned when a confirmation already exists for a guest
// slug. Legacy submissions (nil slug) never trigger it.
var ErrDuplicateRSVP = errors.New("an RSVP already exists for this guest")

// GuestRepository defines the methods for guest data operations
type GuestRepository interface {
	Create(guest *models.Guest) error
	GetByID(id uint) (*models.Guest, error)
	GetBySlug(slug string) (*models.Guest, error)
	ListAll() ([]models.Guest, error)
	Update(guestID uint, name string, session, totalGuest int, whatsapp string) error
	Delete(id uint) error
}

// RSVPRepository defines the methods for attendance-confirmation operations
type RSVPRepository interface {
	Create(rsvp *models.RSVP) error
	GetBySlug(guestSlug string) (*models.RSVP, error)
	ListAll() ([]models.RSVP, error)
	Delete(id uint) error
}

// WishRepository defines the methods for voice-wish operations
type WishRepository interface {
	Create(wish *models.Wish) error
	ListAll() ([]models.Wish, error)
	Delete(id uint) error
}

// SettingRepository defines the methods for keyed settings operations
type SettingRepository interface {
	Get(key string) (*models.Setting, error)
	ListAll() ([]models.Setting, error)
	Upsert(setting *models.Setting) error
}
