package vendor

import (
	"time"

	"github.com/quickbite/oms/internal/service/models/food"
)

// Vendor represents a restaurant on the marketplace.
type Vendor struct {
	ID               int64       `json:"id"`
	Name             string      `json:"name"`
	OwnerName        string      `json:"ownerName"`
	Email            string      `json:"email"`
	Password         string      `json:"-"`
	Salt             string      `json:"-"`
	Address          string      `json:"address"`
	Pincode          string      `json:"pincode"`
	ServiceAvailable bool        `json:"serviceAvailable"`
	Rating           float64     `json:"rating"`
	Foods            []food.Food `json:"foods,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}
