package iorderrepo

import (
	"context"

	"github.com/quickbite/oms/internal/service/models/order"
)

// IOrderRepository persists orders.
type IOrderRepository interface {
	// Insert stores a new order and returns it with its row id set.
	Insert(ctx context.Context, o order.Order) (*order.Order, error)

	// Query retrieves orders matching the filter, oldest first.
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)

	// GetByOrderID fails NotFound when no order has the opaque id.
	GetByOrderID(ctx context.Context, orderID string) (*order.Order, error)

	// UpdateProcessing overwrites status and remarks, and readyTime when
	// non-nil.
	UpdateProcessing(ctx context.Context, id int64, status order.Status, remarks string, readyTime *int) error

	// AssignDeliveryUser sets the courier only when none is set yet and
	// reports whether this call won the assignment.
	AssignDeliveryUser(ctx context.Context, id int64, deliveryUserID int64) (bool, error)
}
