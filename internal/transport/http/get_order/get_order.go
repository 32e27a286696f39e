package getorder

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quickbite/oms/internal/service/models/order"
	"github.com/quickbite/oms/internal/transport/http/resp"
)

type service interface {
	GetOrderByID(ctx context.Context, orderID string) (*order.Order, error)
}

// GetOrder returns one order with its items by opaque id.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	o, err := service.GetOrderByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, o)
}
