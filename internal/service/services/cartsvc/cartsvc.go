package cartsvc

import (
	"context"

	"github.com/quickbite/oms/internal/dal/interfaces/icartrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/ifoodrepo"
	"github.com/quickbite/oms/internal/dal/postgres"
	"github.com/quickbite/oms/internal/dal/uow"
	"github.com/quickbite/oms/internal/service/models/cartitem"
)

// CartService manages a customer's cart lines.
type CartService struct {
	uowFactory func() unitOfWork
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	Foods() ifoodrepo.IFoodRepository
	Carts() icartrepo.ICartRepository
}

// option is a function that configures the CartService.
type option func(*CartService)

// MustNewCartService creates a new CartService.
func MustNewCartService(opts ...option) *CartService {
	s := &CartService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the CartService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *CartService) {
		s.uowFactory = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// AddItem applies a quantity delta to the line for the given food and
// returns the updated cart. The line amount is recomputed from the food's
// current catalog price on every mutation; a delta that drives the quantity
// to zero or below removes the line, and removing an absent line is a no-op.
// The cart rows stay locked for the duration, so concurrent mutations of the
// same cart serialize.
func (s *CartService) AddItem(ctx context.Context, customerID, foodID int64, deltaQty int) ([]cartitem.CartItem, error) {
	work := s.uowFactory()

	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer work.Rollback(ctx)

	f, err := work.Foods().GetByID(ctx, foodID)
	if err != nil {
		return nil, err
	}

	items, err := work.Carts().ItemsForUpdate(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var existing *cartitem.CartItem
	for i := range items {
		if items[i].FoodID == foodID {
			existing = &items[i]

			break
		}
	}

	switch {
	case existing != nil:
		quantity := existing.Quantity + deltaQty
		if quantity <= 0 {
			err = work.Carts().DeleteItem(ctx, customerID, foodID)
		} else {
			err = work.Carts().Upsert(ctx, cartitem.CartItem{
				CustomerID:  customerID,
				FoodID:      foodID,
				Quantity:    quantity,
				AmountCents: int64(quantity) * f.PriceCents,
			})
		}
	case deltaQty > 0:
		err = work.Carts().Upsert(ctx, cartitem.CartItem{
			CustomerID:  customerID,
			FoodID:      foodID,
			Quantity:    deltaQty,
			AmountCents: int64(deltaQty) * f.PriceCents,
		})
	}
	if err != nil {
		return nil, err
	}

	items, err = work.Carts().Items(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	return items, nil
}

// Clear empties the cart unconditionally.
func (s *CartService) Clear(ctx context.Context, customerID int64) error {
	work := s.uowFactory()

	return work.Carts().Clear(ctx, customerID)
}

// Snapshot returns the current cart lines; an empty cart yields an empty
// slice, not an error.
func (s *CartService) Snapshot(ctx context.Context, customerID int64) ([]cartitem.CartItem, error) {
	work := s.uowFactory()

	return work.Carts().Items(ctx, customerID)
}
