// Package services holds the café's business rules. Every operation takes
// the caller's auth.Identity explicitly and reports failures as *Error
// values whose Kind the HTTP layer maps to a status code.
package services

import (
	"github.com/ruangkopi/cafe/app/repositories"
	"github.com/ruangkopi/cafe/pkg/event"
	"github.com/ruangkopi/cafe/pkg/storage"
	"gorm.io/gorm"
)

// Services bundles every service over one database handle.
type Services struct {
	Auth      *AuthService
	Users     *UserService
	Menu      *MenuService
	Orders    *OrderService
	Reviews   *ReviewService
	Dashboard *DashboardService
}

// New wires repositories and services. disk stores menu images; events
// receives order events and may be nil.
func New(db *gorm.DB, disk storage.Disk, events *event.Bus) *Services {
	users := repositories.NewUserRepository(db)
	menu := repositories.NewMenuRepository(db)
	orders := repositories.NewOrderRepository(db)
	reviews := repositories.NewReviewRepository(db)

	return &Services{
		Auth:      NewAuthService(users),
		Users:     NewUserService(users),
		Menu:      NewMenuService(menu, disk),
		Orders:    NewOrderService(db, orders, menu, users, events),
		Reviews:   NewReviewService(reviews, orders),
		Dashboard: NewDashboardService(orders, users, menu),
	}
}
