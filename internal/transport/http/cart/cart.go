package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/quickbite/oms/internal/service/models/cartitem"
	"github.com/quickbite/oms/internal/transport/http/resp"
	"github.com/quickbite/oms/pkg/auth"
)

type service interface {
	AddItem(ctx context.Context, customerID, foodID int64, deltaQty int) ([]cartitem.CartItem, error)
	Snapshot(ctx context.Context, customerID int64) ([]cartitem.CartItem, error)
	Clear(ctx context.Context, customerID int64) error
}

// addToCartRequest applies a signed quantity delta to one cart line.
type addToCartRequest struct {
	FoodID   int64 `json:"foodId"   validate:"gt=0"`
	Quantity int   `json:"quantity" validate:"required"`
}

// Validate validates the add to cart request.
func (r *addToCartRequest) Validate() error {
	return validator.New().Struct(r)
}

// AddToCart handles the cart mutation request.
func AddToCart(w http.ResponseWriter, r *http.Request, service service) {
	claims, err := auth.ClaimsFromContext(r.Context())
	if err != nil {
		resp.Error(w, err)

		return
	}

	req := addToCartRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for add to cart", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for add to cart", "error", err)

		return
	}

	items, err := service.AddItem(r.Context(), claims.UserID, req.FoodID, req.Quantity)
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, items)
}

// GetCart returns the customer's current cart lines.
func GetCart(w http.ResponseWriter, r *http.Request, service service) {
	claims, err := auth.ClaimsFromContext(r.Context())
	if err != nil {
		resp.Error(w, err)

		return
	}

	items, err := service.Snapshot(r.Context(), claims.UserID)
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, items)
}

// ClearCart empties the customer's cart.
func ClearCart(w http.ResponseWriter, r *http.Request, service service) {
	claims, err := auth.ClaimsFromContext(r.Context())
	if err != nil {
		resp.Error(w, err)

		return
	}

	if err := service.Clear(r.Context(), claims.UserID); err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, []cartitem.CartItem{})
}
