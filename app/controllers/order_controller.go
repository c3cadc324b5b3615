package controllers

import (
	"github.com/ruangkopi/cafe/app/services"
	"github.com/ruangkopi/cafe/pkg/ctx"
)

type OrderController struct {
	orders *services.OrderService
}

// Store handles POST /order.
func (o *OrderController) Store(c *ctx.Context) {
	var in services.CreateOrderInput
	if !c.BindJSON(&in) {
		return
	}
	order, err := o.orders.Create(c.Context(), identity(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(order)
}

// Show handles GET /order/{id}.
func (o *OrderController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	order, err := o.orders.Get(c.Context(), identity(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(order)
}

// ForUser handles GET /order/user/{id}.
func (o *OrderController) ForUser(c *ctx.Context) {
	userID, ok := c.ParamUint("id")
	if !ok {
		return
	}
	orders, err := o.orders.ListForUser(c.Context(), identity(c), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(orders)
}

// UpdateStatus handles PUT /order/{id}.
func (o *OrderController) UpdateStatus(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	var in services.StatusInput
	if !c.BindJSON(&in) {
		return
	}
	order, err := o.orders.Transition(c.Context(), identity(c), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(order)
}
