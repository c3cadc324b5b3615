package controllers

import (
	"github.com/ruangkopi/cafe/app/services"
	"github.com/ruangkopi/cafe/pkg/ctx"
)

type ReviewController struct {
	reviews *services.ReviewService
}

// Index handles GET /reviews[?menuItemId=&orderId=].
func (r *ReviewController) Index(c *ctx.Context) {
	menuItemID, ok := c.QueryUint("menuItemId")
	if !ok {
		return
	}
	orderID, ok := c.QueryUint("orderId")
	if !ok {
		return
	}
	reviews, err := r.reviews.List(c.Context(), menuItemID, orderID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(reviews)
}

// Store handles POST /reviews.
func (r *ReviewController) Store(c *ctx.Context) {
	var in services.ReviewInput
	if !c.BindJSON(&in) {
		return
	}
	review, err := r.reviews.Create(c.Context(), identity(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(review)
}
