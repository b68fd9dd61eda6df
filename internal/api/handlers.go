package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nikolayk812/storefront/internal/api/responses"
	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/domain"
	pkgerrors "github.com/nikolayk812/storefront/internal/errors"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/port"
)

// CheckoutService is the subset of checkout.Service the gateway calls.
type CheckoutService interface {
	Checkout(ctx context.Context) (domain.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
}

var validate = validator.New()

func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// ProductList returns the catalog, narrowed by the optional ?q= title search.
func ProductList(products port.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		all, err := products.List(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, dependencyError(err, "failed to fetch products, please try again later"))
			return
		}

		responses.WriteSuccess(w, catalog.Filter(all, r.URL.Query().Get("q")))
	}
}

func ProductDetail(products port.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := products.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, dependencyError(err, "failed to fetch product details"))
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func CartFetch(store *cart.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		responses.WriteSuccess(w, newCartResponse(store.Snapshot()))
	}
}

// CartAddItem resolves the product through the catalog and adds it to the cart
// quantity times.
func CartAddItem(store *cart.Store, products port.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req addItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid json body"))
			return
		}
		if err := validate.Struct(req); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error()))
			return
		}

		product, err := products.Get(ctx, req.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, dependencyError(err, "failed to fetch product details"))
			return
		}

		store.AddItems(product, req.Quantity)

		if logg != nil {
			ctx = logg.WithSessionID(ctx, store.SessionID())
			logg.Debug(logg.WithFields(ctx, map[string]any{"product_id": product.ID, "quantity": max(req.Quantity, 1)}), "cart.add")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newCartResponse(store.Snapshot()))
	}
}

// CartAction applies one of the id-keyed cart mutations. Unknown IDs are a
// no-op and still answer with the current cart.
func CartAction(store *cart.Store, action func(*cart.Store, int), logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		action(store, id)

		if logg != nil {
			ctx := logg.WithSessionID(r.Context(), store.SessionID())
			logg.Debug(logg.WithField(ctx, "product_id", id), "cart.update")
		}
		responses.WriteSuccess(w, newCartResponse(store.Snapshot()))
	}
}

func Checkout(svc CheckoutService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		order, err := svc.Checkout(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithField(ctx, "order_id", order.ID.String()), "checkout.complete")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderResponse(order))
	}
}

func OrderDetail(svc CheckoutService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		order, err := svc.GetOrder(ctx, orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderResponse(order))
	}
}

func productIDParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "productId")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id "+strconv.Quote(raw))
	}
	return id, nil
}

// dependencyError keeps not-found and already coded errors, and gives
// anything else a user-facing message.
func dependencyError(err error, msg string) error {
	if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}
