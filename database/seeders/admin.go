package seeders

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/paddock-dev/paddock/app/models"
	"github.com/paddock-dev/paddock/config"
	"github.com/paddock-dev/paddock/pkg/auth"
)

func init() {
	Register("admin", SeedAdmin)
}

// SeedAdmin creates the administrator account from ADMIN_EMAIL and
// ADMIN_PASSWORD. It is a no-op when the variables are unset or the
// account already exists, so reseeding is safe.
func SeedAdmin(db *gorm.DB) error {
	email := strings.ToLower(strings.TrimSpace(config.AdminEmail()))
	password := config.AdminPassword()
	if email == "" || password == "" {
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    email,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	return db.Create(&admin).Error
}
