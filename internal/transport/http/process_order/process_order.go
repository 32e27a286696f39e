package processorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/quickbite/oms/internal/service/models/order"
	"github.com/quickbite/oms/internal/transport/http/resp"
	"github.com/quickbite/oms/pkg/apperr"
)

type service interface {
	ProcessOrder(
		ctx context.Context,
		orderID string,
		requested order.Status,
		remarks string,
		readyTime *int,
	) (*order.Order, error)
}

// processOrderRequest represents a vendor-side status change request.
type processOrderRequest struct {
	Status    string `json:"status"    validate:"required"`
	Remarks   string `json:"remarks"`
	ReadyTime *int   `json:"readyTime" validate:"omitempty,gt=0"`
}

// Validate validates the process order request.
func (r *processOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// ProcessOrder handles the vendor-side order status change.
func ProcessOrder(w http.ResponseWriter, r *http.Request, service service) {
	req := processOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for process order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for process order", "error", err)

		return
	}

	requested, err := order.ParseStatus(req.Status)
	if err != nil {
		resp.Error(w, apperr.Validation("unknown order status %q", req.Status))

		return
	}

	updated, err := service.ProcessOrder(r.Context(), chi.URLParam(r, "id"), requested, req.Remarks, req.ReadyTime)
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, updated)
}
