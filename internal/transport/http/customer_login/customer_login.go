package customerlogin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/quickbite/oms/internal/service/models/customer"
	"github.com/quickbite/oms/internal/transport/http/resp"
)

type service interface {
	Login(ctx context.Context, email, password string) (*customer.Customer, string, error)
}

// loginRequest authenticates a customer account.
type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate validates the login request.
func (r *loginRequest) Validate() error {
	return validator.New().Struct(r)
}

type loginResponse struct {
	Customer *customer.Customer `json:"customer"`
	Token    string             `json:"token"`
}

// Login handles the customer login request.
func Login(w http.ResponseWriter, r *http.Request, service service) {
	req := loginRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for login", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for login", "error", err)

		return
	}

	c, token, err := service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, loginResponse{Customer: c, Token: token})
}
