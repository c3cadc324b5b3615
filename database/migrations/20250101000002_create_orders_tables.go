package migrations

import (
	"github.com/ruangkopi/cafe/app/models"
	"github.com/ruangkopi/cafe/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20250101000002_create_orders_tables", &CreateOrdersTables{})
}

// CreateOrdersTables creates orders and their items together; neither is
// useful without the other.
type CreateOrdersTables struct{}

func (m *CreateOrdersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *CreateOrdersTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.OrderItem{}, &models.Order{})
}
