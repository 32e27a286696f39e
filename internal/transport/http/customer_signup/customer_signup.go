package customersignup

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/quickbite/oms/internal/service/models/customer"
	"github.com/quickbite/oms/internal/service/services/accountsvc"
	"github.com/quickbite/oms/internal/transport/http/resp"
)

type service interface {
	Signup(ctx context.Context, in accountsvc.SignupInput) (*customer.Customer, string, error)
}

// signupRequest opens a customer account.
type signupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"required,min=7"`
	Password string `json:"password" validate:"required,min=6"`
}

// Validate validates the signup request.
func (r *signupRequest) Validate() error {
	return validator.New().Struct(r)
}

type signupResponse struct {
	Customer *customer.Customer `json:"customer"`
	Token    string             `json:"token"`
}

// Signup handles the customer signup request.
func Signup(w http.ResponseWriter, r *http.Request, service service) {
	req := signupRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for signup", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for signup", "error", err)

		return
	}

	c, token, err := service.Signup(r.Context(), accountsvc.SignupInput{
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusCreated, signupResponse{Customer: c, Token: token})
}
