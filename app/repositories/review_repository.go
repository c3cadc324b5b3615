package repositories

import (
	"context"
	"fmt"

	"github.com/ruangkopi/cafe/app/models"
	"gorm.io/gorm"
)

// ReviewRepository handles database operations for Review.
type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// ReviewFilter narrows List; nil fields are ignored.
type ReviewFilter struct {
	MenuItemID *uint
	OrderID    *uint
}

func (r *ReviewRepository) withNames(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User").Preload("MenuItem")
}

func (r *ReviewRepository) List(ctx context.Context, f ReviewFilter) ([]models.Review, error) {
	q := r.withNames(ctx).Order("created_at DESC").Order("id DESC")
	if f.MenuItemID != nil {
		q = q.Where("menu_item_id = ?", *f.MenuItemID)
	}
	if f.OrderID != nil {
		q = q.Where("order_id = ?", *f.OrderID)
	}
	reviews := []models.Review{}
	if err := q.Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.withNames(ctx).First(&review, id).Error; err != nil {
		return nil, fmt.Errorf("find review %d: %w", id, err)
	}
	return &review, nil
}

// Exists reports whether the user already reviewed the item for the order.
func (r *ReviewRepository) Exists(ctx context.Context, userID, menuItemID, orderID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("user_id = ? AND menu_item_id = ? AND order_id = ?", userID, menuItemID, orderID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check review: %w", err)
	}
	return n > 0, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}
