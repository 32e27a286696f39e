package icartrepo

import (
	"context"

	"github.com/quickbite/oms/internal/service/models/cartitem"
)

// ICartRepository stores a customer's cart lines.
type ICartRepository interface {
	// Items returns the current cart; an empty cart is an empty slice,
	// not an error.
	Items(ctx context.Context, customerID int64) ([]cartitem.CartItem, error)

	// ItemsForUpdate locks the customer's cart rows for the duration of
	// the surrounding transaction so concurrent mutations serialize.
	ItemsForUpdate(ctx context.Context, customerID int64) ([]cartitem.CartItem, error)

	// Upsert inserts or replaces the line for (customer, food).
	Upsert(ctx context.Context, item cartitem.CartItem) error

	// DeleteItem removes a single line; deleting an absent line is a no-op.
	DeleteItem(ctx context.Context, customerID, foodID int64) error

	// Clear removes every line of the customer's cart.
	Clear(ctx context.Context, customerID int64) error
}
