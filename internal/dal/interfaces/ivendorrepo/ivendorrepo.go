package ivendorrepo

import (
	"context"

	"github.com/quickbite/oms/internal/service/models/vendormodel"
)

// IVendorRepository persists restaurant accounts.
type IVendorRepository interface {
	// Insert stores a new vendor and returns it with its id set.
	Insert(ctx context.Context, v vendor.Vendor) (*vendor.Vendor, error)

	// GetByID fails NotFound when the vendor does not exist.
	GetByID(ctx context.Context, id int64) (*vendor.Vendor, error)

	// GetByEmail returns nil without error when no vendor matches.
	GetByEmail(ctx context.Context, email string) (*vendor.Vendor, error)

	// List returns every vendor, newest first.
	List(ctx context.Context) ([]vendor.Vendor, error)

	// ListByPincode returns vendors in a service area, best rated first.
	// serviceAvailableOnly restricts to vendors currently taking orders;
	// limit <= 0 means no limit.
	ListByPincode(ctx context.Context, pincode string, serviceAvailableOnly bool, limit int) ([]vendor.Vendor, error)

	// SetServiceAvailable flips whether the vendor is taking orders.
	SetServiceAvailable(ctx context.Context, id int64, available bool) error
}
