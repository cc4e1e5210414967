package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/liquiverde/liquiverde-backend/api/controllers"
	"github.com/liquiverde/liquiverde-backend/api/middleware"
	"github.com/liquiverde/liquiverde-backend/internal/catalog"
	"github.com/liquiverde/liquiverde-backend/internal/engine/optimize"
	"github.com/liquiverde/liquiverde-backend/internal/engine/score"
	"github.com/liquiverde/liquiverde-backend/internal/engine/substitute"
	"github.com/liquiverde/liquiverde-backend/pkg/config"
	"github.com/liquiverde/liquiverde-backend/pkg/db"
	"github.com/liquiverde/liquiverde-backend/pkg/logger"
	"github.com/liquiverde/liquiverde-backend/pkg/metrics"
	"github.com/liquiverde/liquiverde-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	DB         db.Pinger
	Redis      *redis.Client
	Catalog    catalog.Service
	Scorer     *score.Scorer
	Substitute *substitute.Engine
	Optimizer  *optimize.Optimizer
	Metrics    *metrics.OptimizerMetrics
	Registry   *prometheus.Registry
}

// NewRouter assembles the full HTTP handler: health probes, the product and
// recommendation API, and the Prometheus scrape endpoint.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(),
	)

	var redisPinger redis.Pinger
	if deps.Redis != nil {
		redisPinger = deps.Redis
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.DB, redisPinger))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Catalog, deps.Logger))
			r.Get("/barcode/{barcode}", controllers.ProductByBarcode(deps.Catalog, deps.Logger))
			r.Post("/compare", controllers.ProductCompare(deps.Catalog, deps.Scorer, deps.Logger))
			r.Route("/{productId}", func(r chi.Router) {
				r.Get("/", controllers.ProductDetail(deps.Catalog, deps.Logger))
				r.Get("/score", controllers.ProductScore(deps.Catalog, deps.Scorer, deps.Logger))
				r.Get("/substitutions", controllers.ProductSubstitutes(deps.Catalog, deps.Substitute, deps.Logger))
			})
		})

		optimizeHandler := controllers.OptimizeShoppingList(deps.Catalog, deps.Optimizer, deps.Metrics, deps.Logger)
		if deps.Redis != nil {
			policy := middleware.NewRateLimitPolicy("optimize",
				deps.Config.RateLimit.Window, deps.Config.RateLimit.OptimizeLimit)
			r.With(middleware.RateLimit(policy, deps.Redis, deps.Logger)).
				Post("/shopping-list/optimize", optimizeHandler)
		} else {
			r.Post("/shopping-list/optimize", optimizeHandler)
		}
	})

	return r
}
