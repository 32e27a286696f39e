package orderitem

import (
	"time"
)

// OrderItem is a priced line within an order, frozen at creation time.
type OrderItem struct {
	ID          int64     `json:"id"`
	OrderID     int64     `json:"orderId"`
	FoodID      int64     `json:"foodId"`
	Quantity    int       `json:"quantity"`
	AmountCents int64     `json:"amountCents"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
