package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ruangkopi/cafe/app/models"
	"github.com/ruangkopi/cafe/app/repositories"
	"github.com/ruangkopi/cafe/internal/testdb"
	"github.com/ruangkopi/cafe/pkg/auth"
	"github.com/ruangkopi/cafe/pkg/event"
	"github.com/ruangkopi/cafe/pkg/storage"
)

type fixture struct {
	ctx context.Context
	db  *gorm.DB
	bus *event.Bus

	userRepo  *repositories.UserRepository
	menuRepo  *repositories.MenuRepository
	orderRepo *repositories.OrderRepository

	auth      *AuthService
	users     *UserService
	menu      *MenuService
	orders    *OrderService
	reviews   *ReviewService
	dashboard *DashboardService
	disk      *storage.LocalDisk

	admin    auth.Identity
	customer auth.Identity
	other    auth.Identity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testdb.Open(t)
	disk, err := storage.NewLocalDisk(t.TempDir(), "http://cdn.test/storage")
	require.NoError(t, err)

	f := &fixture{
		ctx:       context.Background(),
		db:        db,
		bus:       event.New(),
		userRepo:  repositories.NewUserRepository(db),
		menuRepo:  repositories.NewMenuRepository(db),
		orderRepo: repositories.NewOrderRepository(db),
		disk:      disk,
	}
	reviewRepo := repositories.NewReviewRepository(db)

	f.auth = NewAuthService(f.userRepo)
	f.users = NewUserService(f.userRepo)
	f.menu = NewMenuService(f.menuRepo, disk)
	f.orders = NewOrderService(db, f.orderRepo, f.menuRepo, f.userRepo, f.bus)
	f.reviews = NewReviewService(reviewRepo, f.orderRepo)
	f.dashboard = NewDashboardService(f.orderRepo, f.userRepo, f.menuRepo)

	f.admin = f.user(t, "Admin", "admin@example.com", models.RoleAdmin)
	f.customer = f.user(t, "Budi Santoso", "budi@example.com", models.RoleCustomer)
	f.other = f.user(t, "Sari Dewi", "sari@example.com", models.RoleCustomer)
	return f
}

func (f *fixture) user(t *testing.T, name, email, role string) auth.Identity {
	t.Helper()
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	u := &models.User{Name: name, Email: email, Password: hash, Role: role}
	require.NoError(t, f.userRepo.Create(f.ctx, u))
	return auth.Identity{UserID: u.ID, Role: role}
}

func (f *fixture) menuItem(t *testing.T, name string, category models.Category, price int64) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{Name: name, Category: category, Price: price}
	require.NoError(t, f.menuRepo.Create(f.ctx, item))
	return item
}

// cart decodes a raw JSON cart the way a checkout body is decoded.
func cart(t *testing.T, raw string, args ...any) Cart {
	t.Helper()
	var c Cart
	require.NoError(t, json.Unmarshal([]byte(fmt.Sprintf(raw, args...)), &c))
	return c
}

func (f *fixture) order(t *testing.T, actor auth.Identity, items Cart) *models.Order {
	t.Helper()
	o, err := f.orders.Create(f.ctx, actor, CreateOrderInput{Items: items})
	require.NoError(t, err)
	return o
}

func (f *fixture) advance(t *testing.T, id uint, statuses ...models.Status) {
	t.Helper()
	for _, s := range statuses {
		_, err := f.orders.Transition(f.ctx, f.admin, id, StatusInput{Status: string(s)})
		require.NoError(t, err)
	}
}

func strPtr(s string) *string { return &s }

func ptrFlex(n int64) *FlexInt {
	v := flex(n)
	return &v
}
