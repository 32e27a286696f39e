package ideliveryuserrepo

import (
	"context"

	"github.com/quickbite/oms/internal/service/models/deliveryuser"
)

// IDeliveryUserRepository persists courier accounts.
type IDeliveryUserRepository interface {
	// Insert stores a new courier and returns it with its id set.
	Insert(ctx context.Context, d deliveryuser.DeliveryUser) (*deliveryuser.DeliveryUser, error)

	// GetByID fails NotFound when the courier does not exist.
	GetByID(ctx context.Context, id int64) (*deliveryuser.DeliveryUser, error)

	// GetByEmail returns nil without error when no courier matches.
	GetByEmail(ctx context.Context, email string) (*deliveryuser.DeliveryUser, error)

	// FindAssignable returns couriers in the service area that are both
	// verified and available.
	FindAssignable(ctx context.Context, pincode string) ([]deliveryuser.DeliveryUser, error)

	// UpdateStatus persists availability and location changes.
	UpdateStatus(ctx context.Context, d deliveryuser.DeliveryUser) error

	// SetVerified flips the admin-controlled verification flag.
	SetVerified(ctx context.Context, id int64, verified bool) error
}
