package cartitem

import (
	"time"
)

// CartItem is one line in a customer's cart. AmountCents is quantity times
// the food's price as of the last mutation of this line.
type CartItem struct {
	CustomerID  int64     `json:"customerId"`
	FoodID      int64     `json:"foodId"`
	Quantity    int       `json:"quantity"`
	AmountCents int64     `json:"amountCents"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
