package deliverystatus

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/quickbite/oms/internal/service/models/deliveryuser"
	"github.com/quickbite/oms/internal/transport/http/resp"
	"github.com/quickbite/oms/pkg/auth"
)

type service interface {
	UpdateDeliveryStatus(ctx context.Context, courierID int64, available bool, lat, lng *float64) (*deliveryuser.DeliveryUser, error)
}

// deliveryStatusRequest toggles availability and optionally moves the
// courier's reported location. Lat and lng come together or not at all.
type deliveryStatusRequest struct {
	IsAvailable bool     `json:"isAvailable"`
	Lat         *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng         *float64 `json:"lng" validate:"omitempty,longitude,required_with=Lat"`
}

// Validate validates the delivery status request.
func (r *deliveryStatusRequest) Validate() error {
	return validator.New().Struct(r)
}

// UpdateStatus handles the courier availability request.
func UpdateStatus(w http.ResponseWriter, r *http.Request, service service) {
	claims, err := auth.ClaimsFromContext(r.Context())
	if err != nil {
		resp.Error(w, err)

		return
	}

	req := deliveryStatusRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for delivery status", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for delivery status", "error", err)

		return
	}

	d, err := service.UpdateDeliveryStatus(r.Context(), claims.UserID, req.IsAvailable, req.Lat, req.Lng)
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, d)
}
