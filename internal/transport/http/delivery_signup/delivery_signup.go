package deliverysignup

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/quickbite/oms/internal/service/models/deliveryuser"
	"github.com/quickbite/oms/internal/service/services/accountsvc"
	"github.com/quickbite/oms/internal/transport/http/resp"
)

type service interface {
	DeliverySignup(ctx context.Context, in accountsvc.DeliverySignupInput) (*deliveryuser.DeliveryUser, string, error)
}

// signupRequest opens a courier account.
type signupRequest struct {
	Email     string `json:"email"     validate:"required,email"`
	Phone     string `json:"phone"     validate:"required,min=7"`
	Password  string `json:"password"  validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Address   string `json:"address"   validate:"required"`
	Pincode   string `json:"pincode"   validate:"required"`
}

// Validate validates the signup request.
func (r *signupRequest) Validate() error {
	return validator.New().Struct(r)
}

type signupResponse struct {
	DeliveryUser *deliveryuser.DeliveryUser `json:"deliveryUser"`
	Token        string                     `json:"token"`
}

// Signup handles the courier signup request.
func Signup(w http.ResponseWriter, r *http.Request, service service) {
	req := signupRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for delivery signup", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for delivery signup", "error", err)

		return
	}

	d, token, err := service.DeliverySignup(r.Context(), accountsvc.DeliverySignupInput{
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		Pincode:   req.Pincode,
	})
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusCreated, signupResponse{DeliveryUser: d, Token: token})
}
