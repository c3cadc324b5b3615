package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/ruangkopi/cafe/app/models"
	"github.com/ruangkopi/cafe/app/repositories"
	"github.com/ruangkopi/cafe/pkg/auth"
	"github.com/ruangkopi/cafe/pkg/event"
	"github.com/ruangkopi/cafe/pkg/logger"
	"gorm.io/gorm"
)

// Order events fired after the change is committed.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the payload of both order events. PreviousStatus is empty
// for order.created.
type OrderEvent struct {
	Type           string        `json:"type"`
	OrderID        uint          `json:"orderId"`
	UserID         uint          `json:"userId"`
	Status         models.Status `json:"status"`
	PreviousStatus models.Status `json:"previousStatus,omitempty"`
	TotalPrice     int64         `json:"totalPrice"`
	PaymentMethod  string        `json:"paymentMethod,omitempty"`
	Order          *models.Order `json:"order"`
}

// CreateOrderInput is the checkout body.
type CreateOrderInput struct {
	Items         Cart    `json:"items"`
	Notes         *string `json:"notes"`
	PaymentMethod *string `json:"paymentMethod"`
}

type StatusInput struct {
	Status string `json:"status" validate:"required"`
}

type OrderService struct {
	db     *gorm.DB
	orders *repositories.OrderRepository
	menu   *repositories.MenuRepository
	users  *repositories.UserRepository
	events *event.Bus
}

func NewOrderService(db *gorm.DB, orders *repositories.OrderRepository, menu *repositories.MenuRepository, users *repositories.UserRepository, events *event.Bus) *OrderService {
	return &OrderService{db: db, orders: orders, menu: menu, users: users, events: events}
}

// Create prices every line from the catalog as it is now and stores the
// order with its items in one transaction. Client prices are never read.
func (s *OrderService) Create(ctx context.Context, actor auth.Identity, in CreateOrderInput) (*models.Order, error) {
	if actor.UserID == 0 {
		return nil, unauthenticated()
	}
	if err := in.Items.Validate(); err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:        actor.UserID,
		Status:        models.StatusPending,
		Notes:         trimmedOrNil(in.Notes),
		PaymentMethod: trimmedOrNil(in.PaymentMethod),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A token or session can outlive its account.
		if _, err := s.users.WithTx(tx).FindByID(ctx, actor.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return unauthenticated()
			}
			return err
		}

		catalog, err := s.menu.WithTx(tx).FindByIDs(ctx, in.Items.MenuItemIDs())
		if err != nil {
			return err
		}

		order.Items = make([]models.OrderItem, 0, len(in.Items))
		order.TotalPrice = 0
		for i, line := range in.Items {
			item, ok := catalog[line.MenuItemID]
			if !ok {
				return invalidInput("Item %d: Menu item %d not found", i+1, line.MenuItemID)
			}
			id := item.ID
			oi := models.OrderItem{MenuItemID: &id, Quantity: line.Quantity, Price: item.Price}
			if item.Price > 0 && int64(oi.Quantity) > math.MaxInt64/item.Price {
				return invalidInput("Item %d: Line total is too large", i+1)
			}
			total := oi.LineTotal()
			if order.TotalPrice > math.MaxInt64-total {
				return invalidInput("Order total is too large")
			}
			order.TotalPrice += total
			order.Items = append(order.Items, oi)
		}

		return s.orders.WithTx(tx).Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.orders.FindByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	logger.WithCtx(ctx).Info("order created",
		"order_id", created.ID, "user_id", created.UserID,
		"items", len(created.Items), "total", created.TotalPrice)

	s.events.Fire(ctx, EventOrderCreated, newOrderEvent(EventOrderCreated, created, ""))
	return created, nil
}

// Transition moves an order along the lifecycle. The write only succeeds
// if the status is still the one that was checked.
func (s *OrderService) Transition(ctx context.Context, actor auth.Identity, id uint, in StatusInput) (*models.Order, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	to := models.Status(strings.ToUpper(strings.TrimSpace(in.Status)))
	if !to.Valid() {
		return nil, invalidInput("Invalid status")
	}

	current, err := s.orders.FindStatus(ctx, id)
	if err != nil {
		return nil, lookup(err, "Order not found")
	}
	from := current.Status
	if from.Terminal() {
		return nil, invalidState("Order is already %s", from)
	}
	if !from.CanTransition(to) {
		return nil, invalidState("Cannot change order status from %s to %s", from, to)
	}

	n, err := s.orders.TransitionStatus(ctx, id, from, to)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, invalidState("Order status was changed by another request")
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.WithCtx(ctx).Info("order status changed",
		"order_id", id, "from", from, "to", to, "by", actor.UserID)

	s.events.Fire(ctx, EventOrderStatusChanged, newOrderEvent(EventOrderStatusChanged, order, from))
	return order, nil
}

// Get returns one order to its owner or an admin.
func (s *OrderService) Get(ctx context.Context, actor auth.Identity, id uint) (*models.Order, error) {
	if actor.UserID == 0 {
		return nil, unauthenticated()
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "Order not found")
	}
	if !actor.CanAccessUser(order.UserID) {
		return nil, forbidden("You can only view your own orders")
	}
	return order, nil
}

// ListForUser returns a user's orders newest first.
func (s *OrderService) ListForUser(ctx context.Context, actor auth.Identity, userID uint) ([]models.Order, error) {
	if actor.UserID == 0 {
		return nil, unauthenticated()
	}
	if !actor.CanAccessUser(userID) {
		return nil, forbidden("You can only view your own orders")
	}
	return s.orders.ListByUser(ctx, userID)
}

// ListAll returns every order newest first. Admin only.
func (s *OrderService) ListAll(ctx context.Context, actor auth.Identity) ([]models.Order, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.orders.ListAll(ctx)
}

func newOrderEvent(kind string, o *models.Order, previous models.Status) OrderEvent {
	ev := OrderEvent{
		Type:           kind,
		OrderID:        o.ID,
		UserID:         o.UserID,
		Status:         o.Status,
		PreviousStatus: previous,
		TotalPrice:     o.TotalPrice,
		Order:          o,
	}
	if o.PaymentMethod != nil {
		ev.PaymentMethod = *o.PaymentMethod
	}
	return ev
}
