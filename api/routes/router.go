package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rmarchetti/posplus-backend/api/controllers"
	"github.com/rmarchetti/posplus-backend/api/middleware"
	cartsvc "github.com/rmarchetti/posplus-backend/internal/cart"
	"github.com/rmarchetti/posplus-backend/internal/catalog"
	checkoutsvc "github.com/rmarchetti/posplus-backend/internal/checkout"
	"github.com/rmarchetti/posplus-backend/internal/employees"
	ordersvc "github.com/rmarchetti/posplus-backend/internal/orders"
	"github.com/rmarchetti/posplus-backend/pkg/config"
	"github.com/rmarchetti/posplus-backend/pkg/logger"
)

type dbPinger interface {
	Ping(ctx context.Context) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP dbPinger,
	employeeService employees.Service,
	catalogService catalog.Service,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	orderService ordersvc.Service,
	promRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, logg))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.Login(employeeService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(catalogService, logg))
			r.Get("/{productID}", controllers.GetProduct(catalogService, logg))
		})

		r.Route("/carts", func(r chi.Router) {
			r.Post("/", controllers.CreateCart(cartService, logg))
			r.Get("/", controllers.ListActiveCarts(cartService, logg))

			r.Route("/{cartID}", func(r chi.Router) {
				r.Get("/", controllers.GetCart(cartService, logg))
				r.Post("/confirm", controllers.ConfirmCart(checkoutService, logg))
				r.Post("/reject", controllers.RejectCart(checkoutService, logg))

				r.Route("/items", func(r chi.Router) {
					r.Post("/", controllers.AddCartItem(cartService, logg))
					r.Put("/{productID}", controllers.UpdateCartItem(cartService, logg))
					r.Delete("/{productID}", controllers.RemoveCartItem(cartService, logg))
				})
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", controllers.ListTransactions(orderService, logg))
			r.Get("/{cartID}", controllers.GetTransaction(orderService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/{orderID}", controllers.GetOrder(orderService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/analytics", controllers.Analytics(logg))
		})
	})

	return r
}
