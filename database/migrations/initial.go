package migrations

import (
	"github.com/paddock-dev/paddock/app/models"
	"github.com/paddock-dev/paddock/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260301000001_create_horses_table", &CreateHorsesTable{})
	migration.Register("20260301000002_create_orders_table", &CreateOrdersTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: horses --------

type CreateHorsesTable struct{}

func (m *CreateHorsesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Horse{})
}

func (m *CreateHorsesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("horses")
}

// -------- 0003: orders --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("orders")
}
