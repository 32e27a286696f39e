package verifyaccount

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/quickbite/oms/internal/service/models/customer"
	"github.com/quickbite/oms/internal/transport/http/resp"
	"github.com/quickbite/oms/pkg/auth"
)

type service interface {
	VerifyAccount(ctx context.Context, customerID int64, otp int) (*customer.Customer, string, error)
}

// verifyAccountRequest redeems the OTP sent at signup.
type verifyAccountRequest struct {
	OTP int `json:"otp" validate:"required,min=100000,max=999999"`
}

// Validate validates the verify account request.
func (r *verifyAccountRequest) Validate() error {
	return validator.New().Struct(r)
}

type verifyAccountResponse struct {
	Customer *customer.Customer `json:"customer"`
	Token    string             `json:"token"`
}

// VerifyAccount handles the OTP redemption request.
func VerifyAccount(w http.ResponseWriter, r *http.Request, service service) {
	claims, err := auth.ClaimsFromContext(r.Context())
	if err != nil {
		resp.Error(w, err)

		return
	}

	req := verifyAccountRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for verify account", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for verify account", "error", err)

		return
	}

	c, token, err := service.VerifyAccount(r.Context(), claims.UserID, req.OTP)
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, verifyAccountResponse{Customer: c, Token: token})
}
