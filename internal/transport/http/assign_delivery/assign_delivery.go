package assigndelivery

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quickbite/oms/internal/service/models/deliveryuser"
	"github.com/quickbite/oms/internal/service/models/order"
	"github.com/quickbite/oms/internal/transport/http/resp"
)

type orderService interface {
	GetOrderByID(ctx context.Context, orderID string) (*order.Order, error)
}

type assignService interface {
	Assign(ctx context.Context, orderRowID, vendorID int64) (*deliveryuser.DeliveryUser, error)
}

type assignDeliveryResponse struct {
	Order   *order.Order               `json:"order"`
	Courier *deliveryuser.DeliveryUser `json:"courier"`
}

// AssignDelivery retries courier matching for one order. Safe to call on an
// already assigned order; the existing courier is returned.
func AssignDelivery(w http.ResponseWriter, r *http.Request, orders orderService, assigns assignService) {
	o, err := orders.GetOrderByID(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		resp.Error(w, err)

		return
	}

	courier, err := assigns.Assign(r.Context(), o.ID, o.VendorID)
	if err != nil {
		resp.Error(w, err)

		return
	}

	o.DeliveryUserID = &courier.ID

	resp.JSON(w, http.StatusOK, assignDeliveryResponse{
		Order:   o,
		Courier: courier,
	})
}
