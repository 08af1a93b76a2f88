package repositories

import (
	"gorm.io/gorm"

	"github.com/paddock-dev/paddock/app/models"
)

// HorseRepository handles database operations for Horse listings.
type HorseRepository struct {
	db *gorm.DB
}

func NewHorseRepository(db *gorm.DB) *HorseRepository {
	return &HorseRepository{db: db}
}

// WithTx returns a repository bound to the given transaction. The checkout
// unit of work uses this to keep all its reads and writes on one tx.
func (r *HorseRepository) WithTx(tx *gorm.DB) *HorseRepository {
	return &HorseRepository{db: tx}
}

// Create persists a new listing.
func (r *HorseRepository) Create(horse *models.Horse) error {
	return r.db.Create(horse).Error
}

// FindByID looks up a listing by primary key.
func (r *HorseRepository) FindByID(id uint) (models.Horse, error) {
	var horse models.Horse
	err := r.db.First(&horse, id).Error
	return horse, err
}

// ListAvailable returns all AVAILABLE listings, newest first.
// This is the public marketplace view.
func (r *HorseRepository) ListAvailable() ([]models.Horse, error) {
	var horses []models.Horse
	err := r.db.
		Where("status = ?", models.HorseAvailable).
		Order("created_at DESC").
		Find(&horses).Error
	return horses, err
}

// ListBySeller returns all of one seller's listings regardless of status,
// newest first. Used for the seller's management view.
func (r *HorseRepository) ListBySeller(sellerID uint) ([]models.Horse, error) {
	var horses []models.Horse
	err := r.db.
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&horses).Error
	return horses, err
}

// Save persists changes to an existing listing.
func (r *HorseRepository) Save(horse *models.Horse) error {
	return r.db.Save(horse).Error
}

// Delete permanently removes a listing.
func (r *HorseRepository) Delete(horse *models.Horse) error {
	return r.db.Unscoped().Delete(horse).Error
}
