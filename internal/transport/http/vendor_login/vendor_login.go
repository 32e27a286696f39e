package vendorlogin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/quickbite/oms/internal/service/models/vendormodel"
	"github.com/quickbite/oms/internal/transport/http/resp"
)

type service interface {
	VendorLogin(ctx context.Context, email, password string) (*vendor.Vendor, string, error)
}

// loginRequest authenticates a vendor account.
type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate validates the login request.
func (r *loginRequest) Validate() error {
	return validator.New().Struct(r)
}

type loginResponse struct {
	Vendor *vendor.Vendor `json:"vendor"`
	Token  string         `json:"token"`
}

// Login handles the vendor login request.
func Login(w http.ResponseWriter, r *http.Request, service service) {
	req := loginRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for vendor login", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for vendor login", "error", err)

		return
	}

	v, token, err := service.VendorLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, loginResponse{Vendor: v, Token: token})
}
