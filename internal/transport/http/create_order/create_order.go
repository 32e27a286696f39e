package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/quickbite/oms/internal/service/models/order"
	"github.com/quickbite/oms/internal/service/services/ordersvc"
	"github.com/quickbite/oms/internal/transport/http/resp"
	"github.com/quickbite/oms/pkg/auth"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(
		ctx context.Context,
		customerID int64,
		lines []ordersvc.OrderLine,
		transactionID int64,
		paidAmountCents int64,
	) (*order.Order, error)
}

// itemInCreateOrderRequest represents an item in a create order request.
// Only the food id and quantity are taken from the client; prices come from
// the catalog.
type itemInCreateOrderRequest struct {
	FoodID   int64 `json:"foodId"   validate:"gt=0"`
	Quantity int   `json:"quantity" validate:"gt=0"`
}

// createOrderRequest represents a create order request.
type createOrderRequest struct {
	TransactionID   int64                      `json:"transactionId"   validate:"gt=0"`
	PaidAmountCents int64                      `json:"paidAmountCents" validate:"gte=0"`
	Items           []itemInCreateOrderRequest `json:"items"           validate:"required,min=1,dive"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

func (r *createOrderRequest) toLines() []ordersvc.OrderLine {
	lines := make([]ordersvc.OrderLine, len(r.Items))
	for i, item := range r.Items {
		lines[i] = ordersvc.OrderLine{
			FoodID:   item.FoodID,
			Quantity: item.Quantity,
		}
	}

	return lines
}

type createOrderResponse struct {
	Order           *order.Order `json:"order"`
	AssignmentError string       `json:"assignmentError,omitempty"`
}

// CreateOrder handles the create order request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	claims, err := auth.ClaimsFromContext(r.Context())
	if err != nil {
		resp.Error(w, err)

		return
	}

	orderReq := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&orderReq); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	if err := orderReq.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for create order", "error", err)

		return
	}

	created, err := service.CreateOrder(
		r.Context(),
		claims.UserID,
		orderReq.toLines(),
		orderReq.TransactionID,
		orderReq.PaidAmountCents,
	)
	if err != nil {
		// The order may have committed even though assignment failed; it is
		// returned with the failure rather than discarded.
		if created == nil {
			resp.Error(w, err)

			return
		}

		resp.JSON(w, http.StatusCreated, createOrderResponse{
			Order:           created,
			AssignmentError: err.Error(),
		})

		return
	}

	resp.JSON(w, http.StatusCreated, createOrderResponse{Order: created})
}
