package deliverylogin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/quickbite/oms/internal/service/models/deliveryuser"
	"github.com/quickbite/oms/internal/transport/http/resp"
)

type service interface {
	DeliveryLogin(ctx context.Context, email, password string) (*deliveryuser.DeliveryUser, string, error)
}

// loginRequest authenticates a courier account.
type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate validates the login request.
func (r *loginRequest) Validate() error {
	return validator.New().Struct(r)
}

type loginResponse struct {
	DeliveryUser *deliveryuser.DeliveryUser `json:"deliveryUser"`
	Token        string                     `json:"token"`
}

// Login handles the courier login request.
func Login(w http.ResponseWriter, r *http.Request, service service) {
	req := loginRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for delivery login", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for delivery login", "error", err)

		return
	}

	d, token, err := service.DeliveryLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, loginResponse{DeliveryUser: d, Token: token})
}
