package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ruangkopi/cafe/app/models"
	"gorm.io/gorm"
)

// OrderRepository handles database operations for Order and OrderItem.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

// HistoryFilter narrows the terminal-order listing. From and To are
// inclusive bounds on created_at.
type HistoryFilter struct {
	Query string
	From  *time.Time
	To    *time.Time
}

// Stats are aggregate totals over all orders.
type Stats struct {
	TotalOrders    int64
	TotalItemsSold int64
	TotalRevenue   int64
}

func (r *OrderRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id ASC") }).
		Preload("Items.MenuItem").
		Preload("User")
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("orders.created_at DESC").Order("orders.id DESC")
}

// Create inserts the order and its items.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// FindByID loads an order with its items, their menu items and the owner.
func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.withRelations(ctx).First(&order, id).Error; err != nil {
		return nil, fmt.Errorf("find order %d: %w", id, err)
	}
	return &order, nil
}

// FindStatus loads only the fields needed for authorization and lifecycle
// checks.
func (r *OrderRepository) FindStatus(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Select("id", "user_id", "status").First(&order, id).Error
	if err != nil {
		return nil, fmt.Errorf("find order %d: %w", id, err)
	}
	return &order, nil
}

// HasItem reports whether the order contains menuItemID.
func (r *OrderRepository) HasItem(ctx context.Context, orderID, menuItemID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Where("order_id = ? AND menu_item_id = ?", orderID, menuItemID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check order item: %w", err)
	}
	return n > 0, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := newestFirst(r.withRelations(ctx)).Where("orders.user_id = ?", userID).Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders of user %d: %w", userID, err)
	}
	return orders, nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if err := newestFirst(r.withRelations(ctx)).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// ListActive returns non-terminal orders, newest first, at most limit.
func (r *OrderRepository) ListActive(ctx context.Context, limit int) ([]models.Order, error) {
	orders := []models.Order{}
	err := newestFirst(r.withRelations(ctx)).
		Where("orders.status NOT IN ?", models.TerminalStatuses()).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list active orders: %w", err)
	}
	return orders, nil
}

// History returns terminal orders, newest first. Query matches the owner's
// name or email as a literal, case-insensitive substring. It is applied
// after loading so that LIKE wildcards carry no meaning and case folding is
// the same on every driver.
func (r *OrderRepository) History(ctx context.Context, f HistoryFilter) ([]models.Order, error) {
	q := newestFirst(r.withRelations(ctx)).
		Where("orders.status IN ?", models.TerminalStatuses())

	if f.From != nil {
		q = q.Where("orders.created_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("orders.created_at <= ?", f.To.UTC())
	}

	orders := []models.Order{}
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("order history: %w", err)
	}

	term := strings.ToLower(strings.TrimSpace(f.Query))
	if term == "" {
		return orders, nil
	}
	matched := orders[:0]
	for _, o := range orders {
		if ownerMatches(o.User, term) {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

func ownerMatches(u *models.User, term string) bool {
	if u == nil {
		return false
	}
	return strings.Contains(strings.ToLower(u.Name), term) ||
		strings.Contains(strings.ToLower(u.Email), term)
}

// TransitionStatus moves the order from -> to only if it is still in from.
// Zero rows affected means another writer got there first.
func (r *OrderRepository) TransitionStatus(ctx context.Context, id uint, from, to models.Status) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return 0, fmt.Errorf("transition order %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// Stats sums quantities and snapshot line totals over every order.
func (r *OrderRepository) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Order{}).Count(&s.TotalOrders).Error; err != nil {
		return Stats{}, fmt.Errorf("count orders: %w", err)
	}

	var sums struct {
		Items   int64
		Revenue int64
	}
	err := db.Model(&models.OrderItem{}).
		Select("COALESCE(SUM(quantity), 0) AS items, COALESCE(SUM(price * quantity), 0) AS revenue").
		Scan(&sums).Error
	if err != nil {
		return Stats{}, fmt.Errorf("sum order items: %w", err)
	}
	s.TotalItemsSold = sums.Items
	s.TotalRevenue = sums.Revenue
	return s, nil
}
