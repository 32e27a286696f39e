package adminvendors

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/quickbite/oms/internal/service/models/vendormodel"
	"github.com/quickbite/oms/internal/service/services/vendorsvc"
	"github.com/quickbite/oms/internal/transport/http/resp"
)

type service interface {
	CreateVendor(ctx context.Context, in vendorsvc.CreateVendorInput) (*vendor.Vendor, error)
	ListVendors(ctx context.Context) ([]vendor.Vendor, error)
}

// createVendorRequest opens a restaurant account.
type createVendorRequest struct {
	Name      string `json:"name"      validate:"required"`
	OwnerName string `json:"ownerName" validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
	Address   string `json:"address"   validate:"required"`
	Pincode   string `json:"pincode"   validate:"required"`
}

// Validate validates the create vendor request.
func (r *createVendorRequest) Validate() error {
	return validator.New().Struct(r)
}

// CreateVendor handles the admin request to open a restaurant account.
func CreateVendor(w http.ResponseWriter, r *http.Request, service service) {
	req := createVendorRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for create vendor", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for create vendor", "error", err)

		return
	}

	v, err := service.CreateVendor(r.Context(), vendorsvc.CreateVendorInput{
		Name:      req.Name,
		OwnerName: req.OwnerName,
		Email:     req.Email,
		Password:  req.Password,
		Address:   req.Address,
		Pincode:   req.Pincode,
	})
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusCreated, v)
}

// ListVendors returns every restaurant on the marketplace.
func ListVendors(w http.ResponseWriter, r *http.Request, service service) {
	vendors, err := service.ListVendors(r.Context())
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, vendors)
}
