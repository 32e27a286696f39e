package cartsvc

import (
	"context"
	"testing"

	"github.com/quickbite/oms/internal/dal/interfaces/icartrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/ifoodrepo"
	"github.com/quickbite/oms/internal/service/models/cartitem"
	"github.com/quickbite/oms/internal/service/models/food"
	"github.com/quickbite/oms/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFoodRepo struct {
	foods map[int64]food.Food
}

func (f *fakeFoodRepo) Insert(_ context.Context, item food.Food) (*food.Food, error) {
	return &item, nil
}

func (f *fakeFoodRepo) GetByID(_ context.Context, id int64) (*food.Food, error) {
	item, ok := f.foods[id]
	if !ok {
		return nil, apperr.NotFound("food %d not found", id)
	}

	return &item, nil
}

func (f *fakeFoodRepo) GetByIDs(_ context.Context, ids []int64) ([]food.Food, error) {
	result := make([]food.Food, 0, len(ids))
	for _, id := range ids {
		item, ok := f.foods[id]
		if !ok {
			return nil, apperr.NotFound("food %d not found", id)
		}
		result = append(result, item)
	}

	return result, nil
}

func (f *fakeFoodRepo) ListByVendorIDs(_ context.Context, vendorIDs []int64) ([]food.Food, error) {
	var result []food.Food
	for _, item := range f.foods {
		for _, vid := range vendorIDs {
			if item.VendorID == vid {
				result = append(result, item)
			}
		}
	}

	return result, nil
}

type fakeCartRepo struct {
	lines map[int64]map[int64]cartitem.CartItem
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{lines: map[int64]map[int64]cartitem.CartItem{}}
}

func (f *fakeCartRepo) Items(_ context.Context, customerID int64) ([]cartitem.CartItem, error) {
	items := make([]cartitem.CartItem, 0)
	for _, item := range f.lines[customerID] {
		items = append(items, item)
	}

	return items, nil
}

func (f *fakeCartRepo) ItemsForUpdate(ctx context.Context, customerID int64) ([]cartitem.CartItem, error) {
	return f.Items(ctx, customerID)
}

func (f *fakeCartRepo) Upsert(_ context.Context, item cartitem.CartItem) error {
	if f.lines[item.CustomerID] == nil {
		f.lines[item.CustomerID] = map[int64]cartitem.CartItem{}
	}
	f.lines[item.CustomerID][item.FoodID] = item

	return nil
}

func (f *fakeCartRepo) DeleteItem(_ context.Context, customerID, foodID int64) error {
	delete(f.lines[customerID], foodID)

	return nil
}

func (f *fakeCartRepo) Clear(_ context.Context, customerID int64) error {
	delete(f.lines, customerID)

	return nil
}

type fakeCartUow struct {
	foods *fakeFoodRepo
	carts *fakeCartRepo
}

func (u *fakeCartUow) Begin(context.Context) error    { return nil }
func (u *fakeCartUow) Commit(context.Context) error   { return nil }
func (u *fakeCartUow) Rollback(context.Context) error { return nil }

func (u *fakeCartUow) Foods() ifoodrepo.IFoodRepository { return u.foods }
func (u *fakeCartUow) Carts() icartrepo.ICartRepository { return u.carts }

func newTestCartService(foods map[int64]food.Food) (*CartService, *fakeCartRepo) {
	carts := newFakeCartRepo()
	u := &fakeCartUow{
		foods: &fakeFoodRepo{foods: foods},
		carts: carts,
	}

	return &CartService{
		uowFactory: func() unitOfWork { return u },
	}, carts
}

func TestAddItem_NewLine(t *testing.T) {
	svc, _ := newTestCartService(map[int64]food.Food{
		1: {ID: 1, VendorID: 7, PriceCents: 1000},
	})

	items, err := svc.AddItem(context.Background(), 42, 1, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(2000), items[0].AmountCents)
}

func TestAddItem_AccumulatesQuantity(t *testing.T) {
	svc, _ := newTestCartService(map[int64]food.Food{
		1: {ID: 1, PriceCents: 1000},
	})

	_, err := svc.AddItem(context.Background(), 42, 1, 1)
	require.NoError(t, err)

	items, err := svc.AddItem(context.Background(), 42, 1, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, int64(3000), items[0].AmountCents)
}

func TestAddItem_NegativeDeltaRemovesLine(t *testing.T) {
	svc, _ := newTestCartService(map[int64]food.Food{
		1: {ID: 1, PriceCents: 1000},
	})

	_, err := svc.AddItem(context.Background(), 42, 1, 2)
	require.NoError(t, err)

	items, err := svc.AddItem(context.Background(), 42, 1, -2)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Removing an absent line is a no-op.
	items, err = svc.AddItem(context.Background(), 42, 1, -1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddItem_UnknownFoodFailsAndLeavesCartAlone(t *testing.T) {
	svc, carts := newTestCartService(map[int64]food.Food{
		1: {ID: 1, PriceCents: 1000},
	})

	_, err := svc.AddItem(context.Background(), 42, 1, 1)
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), 42, 99, 1)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	items, err := carts.Items(context.Background(), 42)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestAddItem_RecomputesAmountFromCurrentPrice(t *testing.T) {
	// The stored line was priced at 10.00; the catalog now says 15.00.
	svc, carts := newTestCartService(map[int64]food.Food{
		1: {ID: 1, PriceCents: 1500},
	})
	require.NoError(t, carts.Upsert(context.Background(), cartitem.CartItem{
		CustomerID: 42, FoodID: 1, Quantity: 1, AmountCents: 1000,
	}))

	items, err := svc.AddItem(context.Background(), 42, 1, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(3000), items[0].AmountCents)
}

func TestClear_EmptiesCart(t *testing.T) {
	svc, _ := newTestCartService(map[int64]food.Food{
		1: {ID: 1, PriceCents: 1000},
	})

	_, err := svc.AddItem(context.Background(), 42, 1, 2)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(context.Background(), 42))

	items, err := svc.Snapshot(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, items)
}
