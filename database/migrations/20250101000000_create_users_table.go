package migrations

import (
	"github.com/ruangkopi/cafe/app/models"
	"github.com/ruangkopi/cafe/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20250101000000_create_users_table", &CreateUsersTable{})
}

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.User{})
}
