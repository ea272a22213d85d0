package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sj23z/Puzur-Cataloge/api/controllers"
	"github.com/sj23z/Puzur-Cataloge/api/middleware"
	authsvc "github.com/sj23z/Puzur-Cataloge/internal/auth"
	"github.com/sj23z/Puzur-Cataloge/internal/catalog"
	"github.com/sj23z/Puzur-Cataloge/internal/identity"
	"github.com/sj23z/Puzur-Cataloge/internal/orders"
	"github.com/sj23z/Puzur-Cataloge/pkg/auth/session"
	"github.com/sj23z/Puzur-Cataloge/pkg/config"
	"github.com/sj23z/Puzur-Cataloge/pkg/enums"
	"github.com/sj23z/Puzur-Cataloge/pkg/logger"
	"github.com/sj23z/Puzur-Cataloge/pkg/metrics"
)

// Deps collects everything the router wires together.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	DBPinger   controllers.Pinger
	RedisP     controllers.Pinger
	Sessions   session.Checker
	Auth       authsvc.Service
	Catalog    catalog.Service
	Identities identity.Service
	Orders     orders.Service
	Metrics    *metrics.HTTPMetrics
	Gatherer   prometheus.Gatherer
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(d.Logger),
		middleware.RequestID(d.Logger),
		middleware.Logging(d.Logger),
		middleware.Metrics(d.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(d.Config))
		r.Get("/ready", controllers.HealthReady(d.Config, d.Logger, d.DBPinger, d.RedisP))
	})

	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(d.Auth, d.Logger))
		r.Post("/logout", controllers.AuthLogout(d.Auth, d.Logger))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(d.Config.JWT, d.Sessions, d.Identities, d.Logger))

		r.Group(func(r chi.Router) {
			r.Get("/brands", controllers.ListBrands(d.Catalog, d.Logger))
			r.Get("/products", controllers.ListProducts(d.Catalog, d.Logger))
			r.Get("/orders", controllers.ListOrders(d.Orders, d.Logger))
			r.Post("/orders", controllers.CreateOrder(d.Orders, d.Logger))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRoles(d.Logger, enums.RoleAdmin))
			r.Put("/brands", controllers.UpsertBrand(d.Catalog, d.Logger))
			r.Put("/products", controllers.UpsertProduct(d.Catalog, d.Logger))
			r.Delete("/products/{id}", controllers.DeleteProduct(d.Catalog, d.Logger))
			r.Get("/users", controllers.ListUsers(d.Identities, d.Logger))
			r.Put("/users", controllers.UpsertUser(d.Identities, d.Logger))
			r.Patch("/orders/{id}/status", controllers.UpdateOrderStatus(d.Orders, d.Logger))
		})
	})

	return r
}
