package controllers

import (
	"net/http"
	"time"

	"github.com/ruangkopi/cafe/app/services"
	"github.com/ruangkopi/cafe/pkg/ctx"
	"github.com/ruangkopi/cafe/pkg/sse"
	"github.com/ruangkopi/cafe/pkg/ws"
)

// AdminController serves the dashboard endpoints. Routes are already
// behind rbac.Admin; services check the role again.
type AdminController struct {
	dashboard *services.DashboardService
	orders    *services.OrderService
	hub       *ws.Hub
	broker    *sse.Broker
}

// Dashboard handles GET /admin/dashboard.
func (a *AdminController) Dashboard(c *ctx.Context) {
	dash, err := a.dashboard.Dashboard(c.Context(), identity(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(dash)
}

// History handles GET /admin/history[?q=&from=&to=].
func (a *AdminController) History(c *ctx.Context) {
	orders, err := a.dashboard.History(c.Context(), identity(c), services.HistoryQuery{
		Q:    c.Query("q"),
		From: c.Query("from"),
		To:   c.Query("to"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(orders)
}

// Orders handles GET /admin/orders.
func (a *AdminController) Orders(c *ctx.Context) {
	orders, err := a.orders.ListAll(c.Context(), identity(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(orders)
}

// Live handles GET /admin/orders/live, a websocket stream of order events.
func (a *AdminController) Live(c *ctx.Context) {
	if a.hub == nil {
		c.Error(http.StatusServiceUnavailable, "Live feed is not available")
		return
	}
	ws.Upgrade(c.W, c.R, a.hub)
}

// Stream handles GET /admin/orders/stream, the same feed as server-sent
// events.
func (a *AdminController) Stream(c *ctx.Context) {
	if a.broker == nil {
		c.Error(http.StatusServiceUnavailable, "Live feed is not available")
		return
	}
	sse.Serve(c.W, c.R, a.broker, 30*time.Second)
}
