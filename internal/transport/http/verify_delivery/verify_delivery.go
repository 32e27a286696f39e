package verifydelivery

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/quickbite/oms/internal/service/models/deliveryuser"
	"github.com/quickbite/oms/internal/transport/http/resp"
	"github.com/quickbite/oms/pkg/apperr"
)

type service interface {
	VerifyDeliveryUser(ctx context.Context, courierID int64, verified bool) (*deliveryuser.DeliveryUser, error)
}

// verifyDeliveryRequest flips the admin-controlled verification flag.
type verifyDeliveryRequest struct {
	Verified bool `json:"verified"`
}

// VerifyDelivery handles the admin courier verification request.
func VerifyDelivery(w http.ResponseWriter, r *http.Request, service service) {
	courierID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		resp.Error(w, apperr.Validation("delivery user id must be an integer"))

		return
	}

	req := verifyDeliveryRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for verify delivery", "error", err)

		return
	}

	d, err := service.VerifyDeliveryUser(r.Context(), courierID, req.Verified)
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, d)
}
