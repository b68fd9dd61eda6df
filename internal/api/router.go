package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nikolayk812/storefront/internal/api/middleware"
	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/port"
)

type RouterParams struct {
	Logger   *logger.Logger
	Catalog  port.Catalog
	Cart     *cart.Store
	Checkout CheckoutService
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

func NewRouter(p RouterParams) http.Handler {
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Get("/health/live", HealthLive())
	if p.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", p.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", ProductList(p.Catalog, logg))
			r.Get("/{productId}", ProductDetail(p.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", CartFetch(p.Cart))
			r.Post("/items", CartAddItem(p.Cart, p.Catalog, logg))
			r.Delete("/items/{productId}", CartAction(p.Cart, (*cart.Store).RemoveItem, logg))
			r.Post("/items/{productId}/increase", CartAction(p.Cart, (*cart.Store).IncreaseQuantity, logg))
			r.Post("/items/{productId}/decrease", CartAction(p.Cart, (*cart.Store).DecreaseQuantity, logg))
		})

		r.Post("/checkout", Checkout(p.Checkout, logg))
		r.Get("/orders/{orderId}", OrderDetail(p.Checkout, logg))
	})

	return r
}
