package routes

import (
	"github.com/ruangkopi/cafe/app/controllers"
	"github.com/ruangkopi/cafe/pkg/ctx"
	"github.com/ruangkopi/cafe/pkg/middleware"
	"github.com/ruangkopi/cafe/pkg/rbac"
	"github.com/ruangkopi/cafe/pkg/router"
)

// RegisterAPI mounts every JSON endpoint. Identity is resolved globally by
// middleware.Authenticate; groups below only decide who may pass.
func RegisterAPI(r *router.Router, c *controllers.Controllers) {
	authRoutes := r.Group("/auth")
	authRoutes.Post("/register", "auth.register", ctx.Wrap(c.Auth.Register))
	authRoutes.Post("/login", "auth.login", ctx.Wrap(c.Auth.Login))
	authRoutes.Post("/logout", "auth.logout", ctx.Wrap(c.Auth.Logout))
	authRoutes.Get("/me", "auth.me", ctx.Wrap(c.Auth.Me), middleware.RequireAuth)

	signedIn := r.Group("", middleware.RequireAuth)
	signedIn.Get("/profile", "profile.show", ctx.Wrap(c.User.Profile))
	signedIn.Post("/profile", "profile.update", ctx.Wrap(c.User.UpdateProfile))

	users := r.Group("/users", middleware.RequireAuth)
	users.Get("/{id}", "users.show", ctx.Wrap(c.User.Show))
	users.Put("/{id}", "users.update", ctx.Wrap(c.User.Update))
	users.Delete("/{id}", "users.destroy", ctx.Wrap(c.User.Destroy), rbac.Admin)

	menu := r.Group("/menu")
	menu.Get("", "menu.index", ctx.Wrap(c.Menu.Index))
	menu.Get("/{id}", "menu.show", ctx.Wrap(c.Menu.Show))
	menu.Post("", "menu.store", ctx.Wrap(c.Menu.Store), rbac.Admin)
	menu.Patch("/{id}", "menu.update", ctx.Wrap(c.Menu.Update), rbac.Admin)
	menu.Delete("/{id}", "menu.destroy", ctx.Wrap(c.Menu.Destroy), rbac.Admin)

	orders := r.Group("/order", middleware.RequireAuth)
	orders.Post("", "orders.store", ctx.Wrap(c.Order.Store))
	orders.Get("/user/{id}", "orders.user", ctx.Wrap(c.Order.ForUser))
	orders.Get("/{id}", "orders.show", ctx.Wrap(c.Order.Show))
	orders.Put("/{id}", "orders.status", ctx.Wrap(c.Order.UpdateStatus), rbac.Admin)

	reviews := r.Group("/reviews")
	reviews.Get("", "reviews.index", ctx.Wrap(c.Review.Index))
	reviews.Post("", "reviews.store", ctx.Wrap(c.Review.Store), middleware.RequireAuth)

	admin := r.Group("/admin", rbac.Admin)
	admin.Get("/dashboard", "admin.dashboard", ctx.Wrap(c.Admin.Dashboard))
	admin.Get("/history", "admin.history", ctx.Wrap(c.Admin.History))
	admin.Get("/orders", "admin.orders", ctx.Wrap(c.Admin.Orders))
	admin.Get("/orders/live", "admin.orders.live", ctx.Wrap(c.Admin.Live))
	admin.Get("/orders/stream", "admin.orders.stream", ctx.Wrap(c.Admin.Stream))
}
