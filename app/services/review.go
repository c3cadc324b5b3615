package services

import (
	"context"

	"github.com/ruangkopi/cafe/app/models"
	"github.com/ruangkopi/cafe/app/repositories"
	"github.com/ruangkopi/cafe/pkg/auth"
	"github.com/ruangkopi/cafe/pkg/logger"
	"github.com/ruangkopi/cafe/pkg/metrics"
)

// ReviewInput is the review body. Ids and rating may arrive as numbers or
// numeric strings.
type ReviewInput struct {
	MenuItemID FlexInt `json:"menuItemId"`
	OrderID    FlexInt `json:"orderId"`
	Rating     FlexInt `json:"rating"`
	Comment    *string `json:"comment"`
}

type ReviewService struct {
	reviews *repositories.ReviewRepository
	orders  *repositories.OrderRepository
}

func NewReviewService(reviews *repositories.ReviewRepository, orders *repositories.OrderRepository) *ReviewService {
	return &ReviewService{reviews: reviews, orders: orders}
}

// Create records one review per (user, item, order). The order must be the
// caller's own, completed, and contain the item.
func (s *ReviewService) Create(ctx context.Context, actor auth.Identity, in ReviewInput) (*models.Review, error) {
	if actor.UserID == 0 {
		return nil, unauthenticated()
	}

	menuItemID, ok := in.MenuItemID.ID()
	if !ok {
		return nil, invalidInput("menuItemId is required")
	}
	orderID, ok := in.OrderID.ID()
	if !ok {
		return nil, invalidInput("orderId is required")
	}
	if !in.Rating.Present {
		return nil, invalidInput("rating is required")
	}
	if !in.Rating.OK || in.Rating.Value < 1 || in.Rating.Value > 5 {
		return nil, invalidInput("Rating must be between 1 and 5")
	}

	order, err := s.orders.FindStatus(ctx, orderID)
	if err != nil {
		return nil, lookup(err, "Order not found")
	}
	if order.UserID != actor.UserID {
		return nil, forbidden("You can only review your own orders")
	}
	if order.Status != models.StatusCompleted {
		return nil, invalidState("Only completed orders can be reviewed")
	}

	has, err := s.orders.HasItem(ctx, orderID, menuItemID)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, invalidInput("Menu item is not part of this order")
	}

	exists, err := s.reviews.Exists(ctx, actor.UserID, menuItemID, orderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, conflict("You have already reviewed this item for this order")
	}

	review := &models.Review{
		UserID:     actor.UserID,
		MenuItemID: menuItemID,
		OrderID:    orderID,
		Rating:     int(in.Rating.Value),
		Comment:    trimmedOrNil(in.Comment),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if isDuplicate(err) {
			return nil, conflict("You have already reviewed this item for this order")
		}
		return nil, err
	}

	metrics.ReviewsCreated.Inc()
	logger.WithCtx(ctx).Info("review created",
		"review_id", review.ID, "order_id", orderID, "menu_item_id", menuItemID, "rating", review.Rating)

	created, err := s.reviews.FindByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// List is public; either filter may be nil.
func (s *ReviewService) List(ctx context.Context, menuItemID, orderID *uint) ([]models.Review, error) {
	return s.reviews.List(ctx, repositories.ReviewFilter{MenuItemID: menuItemID, OrderID: orderID})
}
