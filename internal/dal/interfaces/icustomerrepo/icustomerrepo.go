package icustomerrepo

import (
	"context"

	"github.com/quickbite/oms/internal/service/models/customer"
)

// ICustomerRepository persists customer accounts.
type ICustomerRepository interface {
	// Insert stores a new customer and returns it with its id set.
	Insert(ctx context.Context, c customer.Customer) (*customer.Customer, error)

	// GetByID fails NotFound when the customer does not exist.
	GetByID(ctx context.Context, id int64) (*customer.Customer, error)

	// GetByEmailOrPhone returns nil without error when no account matches.
	GetByEmailOrPhone(ctx context.Context, email, phone string) (*customer.Customer, error)

	// Update persists profile, OTP and verification changes.
	Update(ctx context.Context, c customer.Customer) error
}
