package models

import "gorm.io/gorm"

// OrderStatus is the purchase lifecycle state. CANCELLED is declared for a
// future refund flow; no route sets it today.
type OrderStatus string

const (
	OrderPaid      OrderStatus = "PAID"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Order links one buyer to one listing. The unique index on HorseID is the
// invariant enforcer: at most one order may ever reference a listing, and a
// concurrent double-checkout loses on this constraint.
type Order struct {
	gorm.Model
	BuyerID         uint        `gorm:"not null;index" json:"buyer_id"`
	HorseID         uint        `gorm:"not null;uniqueIndex" json:"horse_id"`
	PriceAtPurchase float64     `gorm:"not null" json:"price_at_purchase"`
	FullName        string      `gorm:"size:255;not null" json:"full_name"`
	Address         string      `gorm:"size:500;not null" json:"address"`
	Phone           string      `gorm:"size:50" json:"phone,omitempty"`
	Status          OrderStatus `gorm:"size:20;not null;default:PAID" json:"status"`

	Horse Horse `gorm:"foreignKey:HorseID" json:"horse,omitempty"`
}
