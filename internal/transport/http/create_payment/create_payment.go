package createpayment

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/quickbite/oms/internal/service/models/transaction"
	"github.com/quickbite/oms/internal/transport/http/resp"
	"github.com/quickbite/oms/pkg/apperr"
	"github.com/quickbite/oms/pkg/auth"
)

type service interface {
	CreatePayment(
		ctx context.Context,
		customerID, amountCents int64,
		mode transaction.PaymentMode,
		offerID *int64,
	) (*transaction.Transaction, error)
}

// createPaymentRequest opens a payment transaction for a cart total.
type createPaymentRequest struct {
	AmountCents int64  `json:"amountCents" validate:"gt=0"`
	PaymentMode string `json:"paymentMode" validate:"required"`
	OfferID     *int64 `json:"offerId"     validate:"omitempty,gt=0"`
}

// Validate validates the create payment request.
func (r *createPaymentRequest) Validate() error {
	return validator.New().Struct(r)
}

// CreatePayment handles the create payment request.
func CreatePayment(w http.ResponseWriter, r *http.Request, service service) {
	claims, err := auth.ClaimsFromContext(r.Context())
	if err != nil {
		resp.Error(w, err)

		return
	}

	req := createPaymentRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for create payment", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for create payment", "error", err)

		return
	}

	mode, err := transaction.ParsePaymentMode(req.PaymentMode)
	if err != nil {
		resp.Error(w, apperr.Validation("unknown payment mode %q", req.PaymentMode))

		return
	}

	t, err := service.CreatePayment(r.Context(), claims.UserID, req.AmountCents, mode, req.OfferID)
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusCreated, t)
}
