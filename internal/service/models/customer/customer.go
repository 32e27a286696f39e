package customer

import (
	"time"
)

// Customer represents a marketplace account that owns a cart and an
// append-only order history. Cart lines and orders are stored as separate
// rows keyed by the customer id, never embedded.
type Customer struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Password  string     `json:"-"`
	Salt      string     `json:"-"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Address   string     `json:"address"`
	Verified  bool       `json:"verified"`
	OTP       *int       `json:"-"`
	OTPExpiry *time.Time `json:"-"`
	Lat       float64    `json:"lat"`
	Lng       float64    `json:"lng"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
