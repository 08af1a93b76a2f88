package repositories

import (
	"gorm.io/gorm"

	"github.com/paddock-dev/paddock/app/models"
)

// OrderRepository handles database operations for Orders.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

// Create persists a new order. The unique index on horse_id makes the
// second of two concurrent checkouts fail with gorm.ErrDuplicatedKey.
func (r *OrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// FindByID looks up an order with its listing preloaded.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := r.db.Preload("Horse").First(&order, id).Error
	return order, err
}

// ListByBuyer returns all of one buyer's orders, newest first.
func (r *OrderRepository) ListByBuyer(buyerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Preload("Horse").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// CountByHorse returns how many orders reference a listing.
func (r *OrderRepository) CountByHorse(horseID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.Order{}).Where("horse_id = ?", horseID).Count(&n).Error
	return n, err
}
