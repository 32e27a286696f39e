package ifoodrepo

import (
	"context"

	"github.com/quickbite/oms/internal/service/models/food"
)

// IFoodRepository persists the food catalog.
type IFoodRepository interface {
	// Insert stores a new food and returns it with its id set.
	Insert(ctx context.Context, f food.Food) (*food.Food, error)

	// GetByID fails NotFound when the food does not exist.
	GetByID(ctx context.Context, id int64) (*food.Food, error)

	// GetByIDs resolves all ids in one lookup; any missing id fails the
	// whole call NotFound.
	GetByIDs(ctx context.Context, ids []int64) ([]food.Food, error)

	// ListByVendorIDs returns the foods of the given vendors.
	ListByVendorIDs(ctx context.Context, vendorIDs []int64) ([]food.Food, error)
}
