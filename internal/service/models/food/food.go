package food

import (
	"time"
)

// Food represents a single catalog item sold by a vendor.
type Food struct {
	ID          int64     `json:"id"`
	VendorID    int64     `json:"vendorId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	FoodType    string    `json:"foodType"`
	PriceCents  int64     `json:"priceCents"`
	ReadyTime   int       `json:"readyTime"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
