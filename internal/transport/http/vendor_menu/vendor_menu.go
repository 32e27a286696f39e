package vendormenu

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/quickbite/oms/internal/service/models/food"
	"github.com/quickbite/oms/internal/service/models/vendormodel"
	"github.com/quickbite/oms/internal/service/services/vendorsvc"
	"github.com/quickbite/oms/internal/transport/http/resp"
	"github.com/quickbite/oms/pkg/auth"
)

type service interface {
	AddFood(ctx context.Context, vendorID int64, in vendorsvc.AddFoodInput) (*food.Food, error)
	SetServiceAvailable(ctx context.Context, vendorID int64, available bool) (*vendor.Vendor, error)
}

// addFoodRequest appends one entry to the vendor's menu.
type addFoodRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	FoodType    string `json:"foodType"`
	PriceCents  int64  `json:"priceCents"  validate:"required,gt=0"`
	ReadyTime   int    `json:"readyTime"   validate:"required,gt=0"`
}

// Validate validates the add food request.
func (r *addFoodRequest) Validate() error {
	return validator.New().Struct(r)
}

// AddFood handles the vendor request to add a food to their menu.
func AddFood(w http.ResponseWriter, r *http.Request, service service) {
	claims, err := auth.ClaimsFromContext(r.Context())
	if err != nil {
		resp.Error(w, err)

		return
	}

	req := addFoodRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for add food", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for add food", "error", err)

		return
	}

	f, err := service.AddFood(r.Context(), claims.UserID, vendorsvc.AddFoodInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		FoodType:    req.FoodType,
		PriceCents:  req.PriceCents,
		ReadyTime:   req.ReadyTime,
	})
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusCreated, f)
}

// updateServiceRequest flips whether the vendor is taking orders.
type updateServiceRequest struct {
	ServiceAvailable *bool `json:"serviceAvailable" validate:"required"`
}

// Validate validates the update service request.
func (r *updateServiceRequest) Validate() error {
	return validator.New().Struct(r)
}

// UpdateService handles the vendor request to toggle order taking.
func UpdateService(w http.ResponseWriter, r *http.Request, service service) {
	claims, err := auth.ClaimsFromContext(r.Context())
	if err != nil {
		resp.Error(w, err)

		return
	}

	req := updateServiceRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for update service", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for update service", "error", err)

		return
	}

	v, err := service.SetServiceAvailable(r.Context(), claims.UserID, *req.ServiceAvailable)
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, v)
}
