package models

import "gorm.io/gorm"

// HorseStatus is the listing lifecycle state. The two states are mutually
// exclusive: a horse is SOLD exactly when one order references it.
type HorseStatus string

const (
	HorseAvailable HorseStatus = "AVAILABLE"
	HorseSold      HorseStatus = "SOLD"
)

// Horse is a listing offered for sale by a seller.
type Horse struct {
	gorm.Model
	Name        string      `gorm:"size:100;not null" json:"name"`
	Breed       string      `gorm:"size:100;not null" json:"breed"`
	Age         int         `gorm:"not null" json:"age"`
	Price       float64     `gorm:"not null" json:"price"`
	Description string      `gorm:"type:text" json:"description,omitempty"`
	Location    string      `gorm:"size:255" json:"location,omitempty"`
	Status      HorseStatus `gorm:"size:20;not null;default:AVAILABLE" json:"status"`
	SellerID    *uint       `gorm:"index" json:"seller_id,omitempty"`
	ImageURL    string      `gorm:"size:500" json:"image_url,omitempty"`
}
