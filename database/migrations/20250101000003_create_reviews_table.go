package migrations

import (
	"github.com/ruangkopi/cafe/app/models"
	"github.com/ruangkopi/cafe/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20250101000003_create_reviews_table", &CreateReviewsTable{})
}

type CreateReviewsTable struct{}

func (m *CreateReviewsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Review{})
}

func (m *CreateReviewsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Review{})
}
