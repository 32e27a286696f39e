package catalogsvc

import (
	"context"
	"testing"

	"github.com/quickbite/oms/internal/dal/interfaces/ifoodrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/ivendorrepo"
	"github.com/quickbite/oms/internal/service/models/food"
	"github.com/quickbite/oms/internal/service/models/vendormodel"
	"github.com/quickbite/oms/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVendorRepo struct {
	vendors []vendor.Vendor
}

func (f *fakeVendorRepo) GetByID(_ context.Context, id int64) (*vendor.Vendor, error) {
	for _, v := range f.vendors {
		if v.ID == id {
			return &v, nil
		}
	}

	return nil, apperr.NotFound("vendor %d not found", id)
}

func (f *fakeVendorRepo) ListByPincode(_ context.Context, pincode string, serviceAvailableOnly bool, limit int) ([]vendor.Vendor, error) {
	var result []vendor.Vendor
	for _, v := range f.vendors {
		if v.Pincode != pincode {
			continue
		}
		if serviceAvailableOnly && !v.ServiceAvailable {
			continue
		}
		result = append(result, v)
		if limit > 0 && len(result) == limit {
			break
		}
	}

	return result, nil
}

func (f *fakeVendorRepo) Insert(_ context.Context, v vendor.Vendor) (*vendor.Vendor, error) {
	return &v, nil
}

func (f *fakeVendorRepo) GetByEmail(_ context.Context, _ string) (*vendor.Vendor, error) {
	return nil, nil
}

func (f *fakeVendorRepo) List(_ context.Context) ([]vendor.Vendor, error) { return f.vendors, nil }

func (f *fakeVendorRepo) SetServiceAvailable(_ context.Context, _ int64, _ bool) error { return nil }

type fakeFoodRepo struct {
	foods []food.Food
}

func (f *fakeFoodRepo) Insert(_ context.Context, item food.Food) (*food.Food, error) {
	return &item, nil
}

func (f *fakeFoodRepo) GetByID(_ context.Context, id int64) (*food.Food, error) {
	for _, item := range f.foods {
		if item.ID == id {
			return &item, nil
		}
	}

	return nil, apperr.NotFound("food %d not found", id)
}

func (f *fakeFoodRepo) GetByIDs(_ context.Context, _ []int64) ([]food.Food, error) {
	return f.foods, nil
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

type fakeCatalogUow struct {
	foods   *fakeFoodRepo
	vendors *fakeVendorRepo
}

func (u *fakeCatalogUow) Foods() ifoodrepo.IFoodRepository       { return u.foods }
func (u *fakeCatalogUow) Vendors() ivendorrepo.IVendorRepository { return u.vendors }

func newTestCatalogService() *CatalogService {
	u := &fakeCatalogUow{
		vendors: &fakeVendorRepo{vendors: []vendor.Vendor{
			{ID: 1, Pincode: "560001", ServiceAvailable: true, Rating: 4.5},
			{ID: 2, Pincode: "560001", ServiceAvailable: false, Rating: 4.9},
			{ID: 3, Pincode: "999999", ServiceAvailable: true, Rating: 4.0},
		}},
		foods: &fakeFoodRepo{foods: []food.Food{
			{ID: 10, VendorID: 1, ReadyTime: 20},
			{ID: 11, VendorID: 1, ReadyTime: 45},
			{ID: 12, VendorID: 3, ReadyTime: 15},
			{ID: 13, VendorID: 2, ReadyTime: 50},
		}},
	}

	return &CatalogService{
		uowFactory: func() unitOfWork { return u },
	}
}

func TestFoodAvailability(t *testing.T) {
	svc := newTestCatalogService()

	vendors, err := svc.FoodAvailability(context.Background(), "560001")
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, int64(1), vendors[0].ID)
	assert.Len(t, vendors[0].Foods, 2)
}

func TestFoodAvailability_NoServiceFailsNotFound(t *testing.T) {
	svc := newTestCatalogService()

	_, err := svc.FoodAvailability(context.Background(), "000000")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestFoodsIn30Min_FiltersByReadyTime(t *testing.T) {
	svc := newTestCatalogService()

	foods, err := svc.FoodsIn30Min(context.Background(), "560001")
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, int64(10), foods[0].ID)
}

func TestSearchFoods_IncludesUnavailableVendors(t *testing.T) {
	svc := newTestCatalogService()

	// Vendor 2 is not taking orders but its menu is still searchable.
	foods, err := svc.SearchFoods(context.Background(), "560001")
	require.NoError(t, err)
	require.Len(t, foods, 3)

	ids := make([]int64, len(foods))
	for i, f := range foods {
		ids[i] = f.ID
	}
	assert.ElementsMatch(t, []int64{10, 11, 13}, ids)

	_, err = svc.SearchFoods(context.Background(), "000000")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestRestaurantByID(t *testing.T) {
	svc := newTestCatalogService()

	v, err := svc.RestaurantByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, v.Foods, 2)

	_, err = svc.RestaurantByID(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
