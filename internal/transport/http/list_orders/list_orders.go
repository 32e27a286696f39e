package listorders

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/quickbite/oms/internal/service/models/order"
	"github.com/quickbite/oms/internal/transport/http/resp"
	"github.com/quickbite/oms/pkg/auth"
)

type service interface {
	GetOrders(ctx context.Context, customerID int64, limit, offset int) ([]order.Order, error)
}

type listOrdersRequest struct {
	Limit  int `schema:"limit,omitempty"`
	Offset int `schema:"offset,omitempty"`
}

// ListOrders returns the authenticated customer's orders, oldest first.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	claims, err := auth.ClaimsFromContext(r.Context())
	if err != nil {
		resp.Error(w, err)

		return
	}

	decoder := schema.NewDecoder()
	query := &listOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	orders, err := service.GetOrders(r.Context(), claims.UserID, query.Limit, query.Offset)
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, orders)
}
