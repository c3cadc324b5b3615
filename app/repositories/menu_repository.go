package repositories

import (
	"context"
	"fmt"

	"github.com/ruangkopi/cafe/app/models"
	"gorm.io/gorm"
)

// MenuRepository handles database operations for MenuItem.
type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

func (r *MenuRepository) WithTx(tx *gorm.DB) *MenuRepository {
	return &MenuRepository{db: tx}
}

// List returns menu items newest first, optionally restricted to category.
func (r *MenuRepository) List(ctx context.Context, category *models.Category) ([]models.MenuItem, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if category != nil {
		q = q.Where("category = ?", *category)
	}
	items := []models.MenuItem{}
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	return items, nil
}

func (r *MenuRepository) FindByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, fmt.Errorf("find menu item %d: %w", id, err)
	}
	return &item, nil
}

// FindByIDs loads the given items keyed by id. Missing ids are simply absent.
func (r *MenuRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]models.MenuItem, error) {
	out := make(map[uint]models.MenuItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var items []models.MenuItem
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("find menu items: %w", err)
	}
	for _, it := range items {
		out[it.ID] = it
	}
	return out, nil
}

func (r *MenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create menu item: %w", err)
	}
	return nil
}

// Save writes every column of item.
func (r *MenuRepository) Save(ctx context.Context, item *models.MenuItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("save menu item %d: %w", item.ID, err)
	}
	return nil
}

// Delete removes the item. Order items keep their snapshot with a NULL
// reference; reviews of the item cascade.
func (r *MenuRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.MenuItem{}, id)
	if res.Error != nil {
		return 0, fmt.Errorf("delete menu item %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

func (r *MenuRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.MenuItem{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count menu items: %w", err)
	}
	return n, nil
}
