package repository

import (
	"github.com/adzibilal/kondanginbackend/models"
	"gorm.io/gorm"
)

type GormWishRepository struct {
	db *gorm.DB
}

func NewGormWishRepository(db *gorm.DB) WishRepository {
	return &GormWishRepository{db: db}
}

func (r *GormWishRepository) Create(wish *models.Wish) error {
	return r.db.Create(wish).Error
}

func (r *GormWishRepository) ListAll() ([]models.Wish, error) {
	var wishes []models.Wish
	err := r.db.Order("created_at DESC").Find(&wishes).Error
	return wishes, err
}

func (r *GormWishRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Wish{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
