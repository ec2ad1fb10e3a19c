package repository

import (
	"errors"

	"github.com/adzibilal/kondanginbackend/models"
	"gorm.io/gorm"
)

type GormRSVPRepository struct {
	db *gorm.DB
}

func NewGormRSVPRepository(db *gorm.DB) RSVPRepository {
	return &GormRSVPRepository{db: db}
}

// Create inserts a confirmation. The unique index on guest_slug is the
// authoritative duplicate guard: two concurrent submissions with the same slug
// can both pass the handler's existence check, but only one insert lands.
func (r *GormRSVPRepository) Create(rsvp *models.RSVP) error {
	err := r.db.Create(rsvp).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateRSVP
	}
	return err
}

func (r *GormRSVPRepository) GetBySlug(guestSlug string) (*models.RSVP, error) {
	var rsvp models.RSVP
	err := r.db.Where("guest_slug = ?", guestSlug).First(&rsvp).Error
	if err != nil {
		return nil, err
	}
	return &rsvp, nil
}

func (r *GormRSVPRepository) ListAll() ([]models.RSVP, error) {
	var rsvps []models.RSVP
	err := r.db.Order("submitted_at DESC").Find(&rsvps).Error
	return rsvps, err
}

func (r *GormRSVPRepository) Delete(id uint) error {
	result := r.db.Delete(&models.RSVP{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
