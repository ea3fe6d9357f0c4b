package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/madhavavarma/storeadminnom/api/controllers"
	"github.com/madhavavarma/storeadminnom/api/middleware"
	internalauth "github.com/madhavavarma/storeadminnom/internal/auth"
	"github.com/madhavavarma/storeadminnom/internal/catalog"
	"github.com/madhavavarma/storeadminnom/internal/dashboard"
	"github.com/madhavavarma/storeadminnom/internal/orders"
	"github.com/madhavavarma/storeadminnom/internal/settings"
	"github.com/madhavavarma/storeadminnom/pkg/auth/session"
	"github.com/madhavavarma/storeadminnom/pkg/config"
	"github.com/madhavavarma/storeadminnom/pkg/db"
	"github.com/madhavavarma/storeadminnom/pkg/logger"
	"github.com/madhavavarma/storeadminnom/pkg/metrics"
	"github.com/madhavavarma/storeadminnom/pkg/redis"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           redis.Pinger
	SessionChecker  session.AccessSessionChecker
	HTTPMetrics     *metrics.HTTPMetrics
	MetricsHandler  http.Handler
	AuthService     internalauth.Service
	OrdersService   orders.Service
	CatalogService  catalog.Service
	SettingsService settings.Service
	Dashboard       *dashboard.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))
			r.Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
			r.Get("/me", controllers.AuthMe(logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(deps.OrdersService, logg))
			r.Post("/", controllers.OrdersCreate(deps.OrdersService, logg))
			r.Get("/{orderId}", controllers.OrdersDetail(deps.OrdersService, logg))
			r.Post("/{orderId}/advance", controllers.OrdersAdvance(deps.OrdersService, logg))
			r.Put("/{orderId}/status", controllers.OrdersSetStatus(deps.OrdersService, logg))
			r.Put("/{orderId}/checkout-data", controllers.OrdersUpdateCheckoutData(deps.OrdersService, logg))
			r.Put("/{orderId}/items", controllers.OrdersUpdateItems(deps.OrdersService, logg))
			r.Delete("/{orderId}", controllers.OrdersDelete(deps.OrdersService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(deps.CatalogService, logg))
			r.Post("/", controllers.ProductsCreate(deps.CatalogService, logg))
			r.Get("/{productId}", controllers.ProductsDetail(deps.CatalogService, logg))
			r.Put("/{productId}", controllers.ProductsUpdate(deps.CatalogService, logg))
			r.Delete("/{productId}", controllers.ProductsDelete(deps.CatalogService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoriesList(deps.CatalogService, logg))
			r.Post("/", controllers.CategoriesCreate(deps.CatalogService, logg))
			r.Put("/{categoryId}", controllers.CategoriesUpdate(deps.CatalogService, logg))
			r.Delete("/{categoryId}", controllers.CategoriesDelete(deps.CatalogService, logg))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/checkout-schema", controllers.CheckoutSchemaGet(deps.SettingsService, logg))
			r.Put("/checkout-schema", controllers.CheckoutSchemaPut(deps.SettingsService, logg))
		})

		r.Get("/dashboard/summary", controllers.DashboardSummary(deps.Dashboard, logg))
	})

	return r
}
