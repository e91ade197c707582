package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lisatcreative/printshop-backend/api/controllers"
	"github.com/lisatcreative/printshop-backend/api/middleware"
	"github.com/lisatcreative/printshop-backend/internal/cart"
	"github.com/lisatcreative/printshop-backend/internal/catalog"
	checkoutsvc "github.com/lisatcreative/printshop-backend/internal/checkout"
	"github.com/lisatcreative/printshop-backend/internal/orders"
	"github.com/lisatcreative/printshop-backend/internal/pricing"
	"github.com/lisatcreative/printshop-backend/internal/shipping"
	"github.com/lisatcreative/printshop-backend/pkg/config"
	"github.com/lisatcreative/printshop-backend/pkg/db"
	"github.com/lisatcreative/printshop-backend/pkg/logger"
	pkgredis "github.com/lisatcreative/printshop-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *pkgredis.Client
	Registry *prometheus.Registry

	Catalog  catalog.Service
	Pricing  pricing.Service
	Cart     cart.Service
	Shipping shipping.Service
	Checkout checkoutsvc.Service
	Orders   orders.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.Ping())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Cart.SessionCookie, cfg.Cart.TTL, cfg.App.IsProd(), logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Route("/photos", func(r chi.Router) {
			r.Get("/", controllers.ListPhotos(deps.Catalog, logg))
			r.Get("/featured", controllers.FeaturedPhotos(deps.Catalog, logg))
			r.Get("/{photoID}", controllers.GetPhoto(deps.Catalog, logg))
			r.Get("/{photoID}/related", controllers.RelatedPhotos(deps.Catalog, logg))
			r.Get("/{photoID}/price", controllers.QuotePrintPrice(deps.Pricing, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.Cart, logg))
			r.Delete("/", controllers.ClearCart(deps.Cart, logg))
			r.Post("/items", controllers.AddCartItem(deps.Cart, logg))
			r.Patch("/items/{photoID}/{size}/{frame}", controllers.UpdateCartItem(deps.Cart, logg))
			r.Delete("/items/{photoID}/{size}/{frame}", controllers.RemoveCartItem(deps.Cart, logg))
		})

		r.Post("/shipping/quote", controllers.QuoteShipping(deps.Shipping, deps.Cart, logg))

		r.Get("/checkout/totals", controllers.CheckoutTotals(deps.Checkout, logg))
		r.Post("/checkout", controllers.SubmitCheckout(deps.Checkout, logg))

		r.Get("/orders/{orderNumber}", controllers.GetOrder(deps.Orders, logg))
	})

	return r
}
