package services

import (
	"context"
	"strings"
	"time"

	"github.com/ruangkopi/cafe/app/models"
	"github.com/ruangkopi/cafe/app/repositories"
	"github.com/ruangkopi/cafe/config"
	"github.com/ruangkopi/cafe/pkg/auth"
)

const dateLayout = "2006-01-02"

// DashboardStats are computed fresh on every request. Revenue uses the
// price snapshots on order items.
type DashboardStats struct {
	TotalOrders    int64 `json:"totalOrders"`
	TotalUsers     int64 `json:"totalUsers"`
	TotalMenuItems int64 `json:"totalMenuItems"`
	TotalItemsSold int64 `json:"totalItemsSold"`
	TotalRevenue   int64 `json:"totalRevenue"`
}

type Dashboard struct {
	Stats  DashboardStats `json:"stats"`
	Orders []models.Order `json:"orders"`
}

// HistoryQuery holds the raw history filters as received.
type HistoryQuery struct {
	Q    string
	From string
	To   string
}

type DashboardService struct {
	orders *repositories.OrderRepository
	users  *repositories.UserRepository
	menu   *repositories.MenuRepository
}

func NewDashboardService(orders *repositories.OrderRepository, users *repositories.UserRepository, menu *repositories.MenuRepository) *DashboardService {
	return &DashboardService{orders: orders, users: users, menu: menu}
}

// Dashboard returns totals and the active queue.
func (s *DashboardService) Dashboard(ctx context.Context, actor auth.Identity) (*Dashboard, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	sums, err := s.orders.Stats(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.menu.Count(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.orders.ListActive(ctx, config.DashboardActiveLimit())
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Stats: DashboardStats{
			TotalOrders:    sums.TotalOrders,
			TotalUsers:     users,
			TotalMenuItems: items,
			TotalItemsSold: sums.TotalItemsSold,
			TotalRevenue:   sums.TotalRevenue,
		},
		Orders: active,
	}, nil
}

// History lists completed and cancelled orders newest first.
func (s *DashboardService) History(ctx context.Context, actor auth.Identity, q HistoryQuery) ([]models.Order, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	from, err := parseBound(q.From, false)
	if err != nil {
		return nil, invalidInput("Invalid from date")
	}
	to, err := parseBound(q.To, true)
	if err != nil {
		return nil, invalidInput("Invalid to date")
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, invalidInput("from must not be after to")
	}

	return s.orders.History(ctx, repositories.HistoryFilter{Query: q.Q, From: from, To: to})
}

// parseBound accepts YYYY-MM-DD or RFC3339. A date-only upper bound covers
// the whole day.
func parseBound(raw string, upper bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if d, err := time.ParseInLocation(dateLayout, raw, time.UTC); err == nil {
		if upper {
			d = d.Add(24*time.Hour - time.Nanosecond)
		}
		return &d, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
