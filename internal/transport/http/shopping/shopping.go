package shopping

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/quickbite/oms/internal/service/models/food"
	"github.com/quickbite/oms/internal/service/models/vendormodel"
	"github.com/quickbite/oms/internal/transport/http/resp"
	"github.com/quickbite/oms/pkg/apperr"
)

type service interface {
	FoodAvailability(ctx context.Context, pincode string) ([]vendor.Vendor, error)
	TopRestaurants(ctx context.Context, pincode string) ([]vendor.Vendor, error)
	FoodsIn30Min(ctx context.Context, pincode string) ([]food.Food, error)
	SearchFoods(ctx context.Context, pincode string) ([]food.Food, error)
	RestaurantByID(ctx context.Context, vendorID int64) (*vendor.Vendor, error)
}

// FoodAvailability lists the vendors serving a pincode with their menus.
func FoodAvailability(w http.ResponseWriter, r *http.Request, service service) {
	vendors, err := service.FoodAvailability(r.Context(), chi.URLParam(r, "pincode"))
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, vendors)
}

// TopRestaurants lists the best rated vendors serving a pincode.
func TopRestaurants(w http.ResponseWriter, r *http.Request, service service) {
	vendors, err := service.TopRestaurants(r.Context(), chi.URLParam(r, "pincode"))
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, vendors)
}

// FoodsIn30Min lists foods in a pincode ready within thirty minutes.
func FoodsIn30Min(w http.ResponseWriter, r *http.Request, service service) {
	foods, err := service.FoodsIn30Min(r.Context(), chi.URLParam(r, "pincode"))
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, foods)
}

// SearchFoods lists every food offered in a pincode.
func SearchFoods(w http.ResponseWriter, r *http.Request, service service) {
	foods, err := service.SearchFoods(r.Context(), chi.URLParam(r, "pincode"))
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, foods)
}

// RestaurantByID returns one vendor with its menu.
func RestaurantByID(w http.ResponseWriter, r *http.Request, service service) {
	vendorID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		resp.Error(w, apperr.Validation("restaurant id must be an integer"))

		return
	}

	v, err := service.RestaurantByID(r.Context(), vendorID)
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, v)
}
