package deliveryuser

import (
	"time"
)

// DeliveryUser represents a courier account. Verified is flipped by an
// admin, IsAvailable by the courier.
type DeliveryUser struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Password    string    `json:"-"`
	Salt        string    `json:"-"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Address     string    `json:"address"`
	Pincode     string    `json:"pincode"`
	Verified    bool      `json:"verified"`
	IsAvailable bool      `json:"isAvailable"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Assignable reports whether the courier may be matched to an order in the
// given service area.
func (d *DeliveryUser) Assignable(pincode string) bool {
	return d.Verified && d.IsAvailable && d.Pincode == pincode
}
