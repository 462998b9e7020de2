package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atelier-ng/atelier-backend/api/controllers"
	"github.com/atelier-ng/atelier-backend/api/middleware"
	authsvc "github.com/atelier-ng/atelier-backend/internal/auth"
	cartsvc "github.com/atelier-ng/atelier-backend/internal/cart"
	"github.com/atelier-ng/atelier-backend/internal/catalog"
	checkoutsvc "github.com/atelier-ng/atelier-backend/internal/checkout"
	ordersvc "github.com/atelier-ng/atelier-backend/internal/orders"
	paymentsvc "github.com/atelier-ng/atelier-backend/internal/payments"
	"github.com/atelier-ng/atelier-backend/pkg/config"
	"github.com/atelier-ng/atelier-backend/pkg/db"
	"github.com/atelier-ng/atelier-backend/pkg/logger"
	"github.com/atelier-ng/atelier-backend/pkg/metrics"
	pkgredis "github.com/atelier-ng/atelier-backend/pkg/redis"
)

type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *pkgredis.Client
	HTTPMetrics *metrics.HTTPMetrics

	Auth     authsvc.Service
	Catalog  catalog.Service
	Cart     cartsvc.Service
	Checkout checkoutsvc.Service
	Orders   ordersvc.Service
	Payments paymentsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CartSession(logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Catalog, logg))
			r.Get("/{productID}", controllers.GetProduct(deps.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.Cart, logg))
			r.Post("/items", controllers.AddCartItem(deps.Cart, logg))
			r.Put("/items/{itemID}", controllers.UpdateCartItem(deps.Cart, logg))
			r.Delete("/items/{itemID}", controllers.RemoveCartItem(deps.Cart, logg))
			r.Delete("/", controllers.ClearCart(deps.Cart, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", controllers.GetCheckout(deps.Checkout, logg))
			r.Post("/info", controllers.SubmitCheckoutInfo(deps.Checkout, logg))
			r.Post("/measurements", controllers.SubmitCheckoutMeasurements(deps.Checkout, logg))
			r.Post("/back", controllers.CheckoutBack(deps.Checkout, logg))
			r.Post("/submit", controllers.SubmitOrder(deps.Checkout, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/initialize", controllers.InitializePayment(deps.Payments, logg))
			r.Get("/verify", controllers.VerifyPayment(deps.Payments, logg))
		})

		r.Get("/orders/track/{token}", controllers.TrackOrder(deps.Orders, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.AdminLogin(deps.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(deps.Auth, logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminListProducts(deps.Catalog, logg))
				r.Post("/", controllers.AdminCreateProduct(deps.Catalog, logg))
				r.Get("/{productID}", controllers.AdminGetProduct(deps.Catalog, logg))
				r.Put("/{productID}", controllers.AdminUpdateProduct(deps.Catalog, logg))
				r.Delete("/{productID}", controllers.AdminDeleteProduct(deps.Catalog, logg))
				r.Put("/{productID}/published", controllers.AdminSetProductPublished(deps.Catalog, logg))
				r.Put("/{productID}/featured", controllers.AdminSetProductFeatured(deps.Catalog, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminListOrders(deps.Orders, logg))
				r.Get("/{orderID}", controllers.AdminGetOrder(deps.Orders, logg))
				r.Put("/{orderID}/status", controllers.AdminUpdateOrderStatus(deps.Orders, logg))
				r.Put("/{orderID}/delivery-date", controllers.AdminSetDeliveryDate(deps.Orders, logg))
			})
		})
	})

	return r
}
