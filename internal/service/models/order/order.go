package order

import (
	"time"

	"github.com/quickbite/oms/internal/service/models/orderitem"
)

// DefaultReadyTimeMinutes is the preparation estimate applied to new orders
// until the vendor adjusts it.
const DefaultReadyTimeMinutes = 45

// Order represents a placed order. TotalAmountCents is always computed from
// catalog prices at creation time; PaidAmountCents comes from the backing
// transaction. Orders are never deleted.
type Order struct {
	ID               int64                 `json:"id"`
	OrderID          string                `json:"orderId"`
	CustomerID       int64                 `json:"customerId"`
	VendorID         int64                 `json:"vendorId"`
	TotalAmountCents int64                 `json:"totalAmountCents"`
	PaidAmountCents  int64                 `json:"paidAmountCents"`
	OrderStatus      Status                `json:"orderStatus"`
	Remarks          string                `json:"remarks"`
	DeliveryUserID   *int64                `json:"deliveryUserId,omitempty"`
	ReadyTime        int                   `json:"readyTime"`
	OrderDate        time.Time             `json:"orderDate"`
	Items            []orderitem.OrderItem `json:"items"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}
