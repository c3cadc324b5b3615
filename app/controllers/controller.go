package controllers

import (
	"errors"
	"net/http"

	"github.com/ruangkopi/cafe/app/services"
	"github.com/ruangkopi/cafe/pkg/auth"
	"github.com/ruangkopi/cafe/pkg/ctx"
	"github.com/ruangkopi/cafe/pkg/logger"
	"github.com/ruangkopi/cafe/pkg/sse"
	"github.com/ruangkopi/cafe/pkg/ws"
)

// Controllers groups every HTTP controller.
type Controllers struct {
	Auth   *AuthController
	User   *UserController
	Menu   *MenuController
	Order  *OrderController
	Review *ReviewController
	Admin  *AdminController
}

// New builds the controllers over svc. hub and broker carry the admin live
// feed over websocket and server-sent events; either may be nil.
func New(svc *services.Services, hub *ws.Hub, broker *sse.Broker) *Controllers {
	return &Controllers{
		Auth:   &AuthController{auth: svc.Auth},
		User:   &UserController{users: svc.Users},
		Menu:   &MenuController{menu: svc.Menu},
		Order:  &OrderController{orders: svc.Orders},
		Review: &ReviewController{reviews: svc.Reviews},
		Admin:  &AdminController{dashboard: svc.Dashboard, orders: svc.Orders, hub: hub, broker: broker},
	}
}

// statusOf maps a service error kind to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrInvalidState):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// fail writes err as {"error"}. Unexpected errors are logged and their
// message is passed through.
func fail(c *ctx.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logger.WithCtx(c.Context()).Error("request failed",
			"method", c.R.Method, "path", c.R.URL.Path, "error", err)
	}
	c.Error(status, err.Error())
}

// identity returns the caller, or the zero identity for anonymous requests;
// services reject the latter where a caller is required.
func identity(c *ctx.Context) auth.Identity {
	id, _ := c.Identity()
	return id
}
