package repository

import (
	"github.com/adzibilal/kondanginbackend/models"
	"gorm.io/gorm"
)

type GormGuestRepository struct {
	db *gorm.DB
}

func NewGormGuestRepository(db *gorm.DB) GuestRepository {
	return &GormGuestRepository{db: db}
}

func (r *GormGuestRepository) Create(guest *models.Guest) error {
	return r.db.Create(guest).Error
}

func (r *GormGuestRepository) GetByID(id uint) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.First(&guest, id).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *GormGuestRepository) GetBySlug(slug string) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.Where("slug = ?", slug).First(&guest).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *GormGuestRepository) ListAll() ([]models.Guest, error) {
	var guests []models.Guest
	err := r.db.Order("created_at DESC").Find(&guests).Error
	return guests, err
}

// Update edits the admin-editable fields. The slug is deliberately not part of
// the update set: once issued it is preserved across every edit.
func (r *GormGuestRepository) Update(guestID uint, name string, session, totalGuest int, whatsapp string) error {
	result := r.db.Model(&models.Guest{}).Where("id = ?", guestID).Updates(map[string]interface{}{
		"name":        name,
		"session":     session,
		"total_guest": totalGuest,
		"whatsapp":    whatsapp,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the guest only. RSVPs and wishes referencing its slug are
// left in place and resolve to an unknown-guest placeholder on display.
func (r *GormGuestRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Guest{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
