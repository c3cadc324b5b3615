package migrations

import (
	"github.com/ruangkopi/cafe/app/models"
	"github.com/ruangkopi/cafe/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20250101000001_create_menu_items_table", &CreateMenuItemsTable{})
}

type CreateMenuItemsTable struct{}

func (m *CreateMenuItemsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.MenuItem{})
}

func (m *CreateMenuItemsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.MenuItem{})
}
