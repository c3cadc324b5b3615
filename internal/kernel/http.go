// Package kernel assembles the HTTP handler: global middleware, the API
// routes and the operational endpoints.
package kernel

import (
	"context"
	"net/http"
	"time"

	appgraphql "github.com/ruangkopi/cafe/app/graphql"
	"github.com/ruangkopi/cafe/app/controllers"
	"github.com/ruangkopi/cafe/app/routes"
	"github.com/ruangkopi/cafe/app/services"
	"github.com/ruangkopi/cafe/config"
	"github.com/ruangkopi/cafe/pkg/cache"
	"github.com/ruangkopi/cafe/pkg/event"
	"github.com/ruangkopi/cafe/pkg/graphql"
	"github.com/ruangkopi/cafe/pkg/logger"
	"github.com/ruangkopi/cafe/pkg/metrics"
	"github.com/ruangkopi/cafe/pkg/middleware"
	"github.com/ruangkopi/cafe/pkg/reqid"
	"github.com/ruangkopi/cafe/pkg/response"
	"github.com/ruangkopi/cafe/pkg/router"
	"github.com/ruangkopi/cafe/pkg/session"
	"github.com/ruangkopi/cafe/pkg/sse"
	"github.com/ruangkopi/cafe/pkg/storage"
	"github.com/ruangkopi/cafe/pkg/ws"
	"gorm.io/gorm"
)

// Deps are the booted collaborators. Nil Store falls back to an in-memory
// session store; nil Hub disables the live feed.
type Deps struct {
	DB     *gorm.DB
	Store  cache.Store
	Disk   storage.Disk
	Hub    *ws.Hub
	Events *event.Bus
}

// HTTPKernel owns the router and the services behind it.
type HTTPKernel struct {
	router   *router.Router
	Services *services.Services
	Broker   *sse.Broker
}

// NewHTTPKernel builds the full handler from deps.
func NewHTTPKernel(d Deps) (*HTTPKernel, error) {
	if d.Store == nil {
		d.Store = cache.NewMemory()
	}
	if d.Events == nil {
		d.Events = event.New()
	}
	broker := sse.NewBroker()
	registerListeners(d.Events, d.Hub, broker)

	svc := services.New(d.DB, d.Disk, d.Events)
	schema, err := appgraphql.Schema(svc)
	if err != nil {
		return nil, err
	}

	r := router.New()

	// Global middleware, outermost first:
	//  1. metrics   total latency including everything below
	//  2. recovery  turn panics into 500 {error}
	//  3. reqid     before anything logs
	//  4. logger    one line per request, tagged with request_id
	//  5. session   load or create the session cookie
	//  6. CORS
	//  7. rate limit
	//  8. authenticate  bearer token or session -> identity in context
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(session.NewManager(d.Store, session.DefaultOptions()).Middleware)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(config.RateLimitPerMinute(), time.Minute))
	r.Use(middleware.Authenticate)

	r.Get("/health", "health", health(d.DB))
	r.Get("/metrics", "metrics", metrics.Handler())
	r.Handle("/graphql", "graphql", graphql.Handler(schema))
	if local, ok := d.Disk.(*storage.LocalDisk); ok {
		r.Handle("/storage/*", "storage", local.FileServer("/storage"))
	}

	routes.RegisterAPI(r, controllers.New(svc, d.Hub, broker))

	return &HTTPKernel{router: r, Services: svc, Broker: broker}, nil
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

// Routes lists every registered route.
func (k *HTTPKernel) Routes() []router.RouteInfo { return k.router.Routes() }

// registerListeners counts order events and forwards them to the live feeds.
func registerListeners(bus *event.Bus, hub *ws.Hub, broker *sse.Broker) {
	forward := func(ctx context.Context, ev services.OrderEvent) {
		if err := broker.Publish(ev.Type, ev); err != nil {
			logger.WithCtx(ctx).Warn("live feed: publish failed", "order_id", ev.OrderID, "error", err)
			return
		}
		if hub == nil {
			return
		}
		if err := hub.Publish(ev); err != nil {
			logger.WithCtx(ctx).Warn("live feed: publish failed", "order_id", ev.OrderID, "error", err)
		}
	}

	bus.Listen(services.EventOrderCreated, func(ctx context.Context, payload any) {
		ev, ok := payload.(services.OrderEvent)
		if !ok {
			return
		}
		metrics.RecordOrderCreated(ev.PaymentMethod, ev.TotalPrice)
		forward(ctx, ev)
	})
	bus.Listen(services.EventOrderStatusChanged, func(ctx context.Context, payload any) {
		ev, ok := payload.(services.OrderEvent)
		if !ok {
			return
		}
		metrics.RecordTransition(string(ev.PreviousStatus), string(ev.Status))
		forward(ctx, ev)
	})
}

func health(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
				err = sqlDB.PingContext(ctx)
				cancel()
			}
			if err != nil {
				logger.WithCtx(r.Context()).Error("health: database unreachable", "error", err)
				response.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		response.Success(w, map[string]string{"status": "ok"})
	}
}
