package iorderitemrepo

import (
	"context"

	"github.com/quickbite/oms/internal/service/models/orderitem"
)

// IOrderItemRepository persists the priced lines of orders.
type IOrderItemRepository interface {
	BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error)
	QueryByOrderIDs(ctx context.Context, orderIDs []int64) ([]orderitem.OrderItem, error)
}
