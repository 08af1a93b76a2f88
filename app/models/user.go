package models

import "gorm.io/gorm"

// Role is the closed set of account roles. Buyer and seller are chosen at
// registration; admin accounts are seeded, never self-assigned.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// ParseRole maps untrusted input onto the closed role set. Anything outside
// the registrable roles falls back to buyer.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleSeller:
		return RoleSeller
	default:
		return RoleBuyer
	}
}

// CanSell reports whether the role may create and manage listings.
func (r Role) CanSell() bool { return r == RoleSeller || r == RoleAdmin }

// User is the primary account model.
type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Role     Role   `gorm:"size:50;not null;default:buyer" json:"role"`

	Horses []Horse `gorm:"foreignKey:SellerID" json:"-"`
	Orders []Order `gorm:"foreignKey:BuyerID" json:"-"`
}

// CanEditListing gates listing mutation: admins always, sellers only on
// their own listings.
func (u *User) CanEditListing(h *Horse) bool {
	if u == nil {
		return false
	}
	if u.Role == RoleAdmin {
		return true
	}
	return h.SellerID != nil && *h.SellerID == u.ID
}
