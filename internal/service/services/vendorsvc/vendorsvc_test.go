package vendorsvc

import (
	"context"
	"testing"

	"github.com/quickbite/oms/internal/dal/interfaces/ifoodrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/iofferrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/ivendorrepo"
	"github.com/quickbite/oms/internal/service/models/food"
	"github.com/quickbite/oms/internal/service/models/offer"
	"github.com/quickbite/oms/internal/service/models/vendormodel"
	"github.com/quickbite/oms/pkg/apperr"
	"github.com/quickbite/oms/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVendorRepo struct {
	nextID  int64
	vendors map[int64]vendor.Vendor
}

func (f *fakeVendorRepo) Insert(_ context.Context, v vendor.Vendor) (*vendor.Vendor, error) {
	f.nextID++
	v.ID = f.nextID
	f.vendors[v.ID] = v

	return &v, nil
}

func (f *fakeVendorRepo) GetByID(_ context.Context, id int64) (*vendor.Vendor, error) {
	v, ok := f.vendors[id]
	if !ok {
		return nil, apperr.NotFound("vendor %d not found", id)
	}

	return &v, nil
}

func (f *fakeVendorRepo) GetByEmail(_ context.Context, email string) (*vendor.Vendor, error) {
	for _, v := range f.vendors {
		if v.Email == email {
			return &v, nil
		}
	}

	return nil, nil
}

func (f *fakeVendorRepo) List(_ context.Context) ([]vendor.Vendor, error) {
	result := make([]vendor.Vendor, 0, len(f.vendors))
	for _, v := range f.vendors {
		result = append(result, v)
	}

	return result, nil
}

func (f *fakeVendorRepo) ListByPincode(_ context.Context, _ string, _ bool, _ int) ([]vendor.Vendor, error) {
	return nil, nil
}

func (f *fakeVendorRepo) SetServiceAvailable(_ context.Context, id int64, available bool) error {
	v, ok := f.vendors[id]
	if !ok {
		return apperr.NotFound("vendor %d not found", id)
	}
	v.ServiceAvailable = available
	f.vendors[id] = v

	return nil
}

type fakeFoodRepo struct {
	nextID int64
	foods  map[int64]food.Food
}

func (f *fakeFoodRepo) Insert(_ context.Context, item food.Food) (*food.Food, error) {
	f.nextID++
	item.ID = f.nextID
	f.foods[item.ID] = item

	return &item, nil
}

func (f *fakeFoodRepo) GetByID(_ context.Context, id int64) (*food.Food, error) {
	item, ok := f.foods[id]
	if !ok {
		return nil, apperr.NotFound("food %d not found", id)
	}

	return &item, nil
}

func (f *fakeFoodRepo) GetByIDs(_ context.Context, _ []int64) ([]food.Food, error) {
	return nil, nil
}

func (f *fakeFoodRepo) ListByVendorIDs(_ context.Context, _ []int64) ([]food.Food, error) {
	return nil, nil
}

type fakeOfferRepo struct {
	nextID int64
	offers map[int64]offer.Offer
}

func (f *fakeOfferRepo) Insert(_ context.Context, o offer.Offer) (*offer.Offer, error) {
	f.nextID++
	o.ID = f.nextID
	f.offers[o.ID] = o

	return &o, nil
}

func (f *fakeOfferRepo) Update(_ context.Context, o offer.Offer) error {
	f.offers[o.ID] = o

	return nil
}

func (f *fakeOfferRepo) GetByID(_ context.Context, id int64) (*offer.Offer, error) {
	o, ok := f.offers[id]
	if !ok {
		return nil, apperr.NotFound("offer %d not found", id)
	}

	return &o, nil
}

type fakeVendorUow struct {
	vendors *fakeVendorRepo
	foods   *fakeFoodRepo
	offers  *fakeOfferRepo
}

func (u *fakeVendorUow) Vendors() ivendorrepo.IVendorRepository { return u.vendors }
func (u *fakeVendorUow) Foods() ifoodrepo.IFoodRepository       { return u.foods }
func (u *fakeVendorUow) Offers() iofferrepo.IOfferRepository    { return u.offers }

func newTestVendorService() (*VendorService, *fakeVendorUow) {
	u := &fakeVendorUow{
		vendors: &fakeVendorRepo{vendors: map[int64]vendor.Vendor{}},
		foods:   &fakeFoodRepo{foods: map[int64]food.Food{}},
		offers:  &fakeOfferRepo{offers: map[int64]offer.Offer{}},
	}

	return &VendorService{
		uowFactory: func() unitOfWork { return u },
	}, u
}

func seedVendor(t *testing.T, svc *VendorService, email string) *vendor.Vendor {
	t.Helper()

	v, err := svc.CreateVendor(context.Background(), CreateVendorInput{
		Name:      "Biryani House",
		OwnerName: "Meera",
		Email:     email,
		Password:  "tandoori1",
		Address:   "4 Brigade Road",
		Pincode:   "560001",
	})
	require.NoError(t, err)

	return v
}

func TestCreateVendor_StoresHashedPassword(t *testing.T) {
	svc, u := newTestVendorService()

	v := seedVendor(t, svc, "owner@biryani.example")
	assert.False(t, v.ServiceAvailable)

	stored := u.vendors.vendors[v.ID]
	assert.NotEqual(t, "tandoori1", stored.Password)
	assert.NotEmpty(t, stored.Salt)
	assert.True(t, auth.VerifyPassword(stored.Password, "tandoori1", stored.Salt))
}

func TestCreateVendor_DuplicateEmailFailsInvalidState(t *testing.T) {
	svc, _ := newTestVendorService()

	seedVendor(t, svc, "owner@biryani.example")

	_, err := svc.CreateVendor(context.Background(), CreateVendorInput{
		Name: "Another Kitchen", Email: "owner@biryani.example", Password: "x",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidState(err))
}

func TestSetServiceAvailable(t *testing.T) {
	svc, _ := newTestVendorService()

	v := seedVendor(t, svc, "owner@biryani.example")

	updated, err := svc.SetServiceAvailable(context.Background(), v.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.ServiceAvailable)

	_, err = svc.SetServiceAvailable(context.Background(), 99, true)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestAddFood_AttachesVendor(t *testing.T) {
	svc, u := newTestVendorService()

	v := seedVendor(t, svc, "owner@biryani.example")

	created, err := svc.AddFood(context.Background(), v.ID, AddFoodInput{
		Name:       "Chicken Biryani",
		Category:   "mains",
		FoodType:   "non-veg",
		PriceCents: 24900,
		ReadyTime:  25,
	})
	require.NoError(t, err)
	assert.Equal(t, v.ID, created.VendorID)
	assert.Equal(t, created.VendorID, u.foods.foods[created.ID].VendorID)
}

func TestAddFood_UnknownVendorFailsNotFound(t *testing.T) {
	svc, u := newTestVendorService()

	_, err := svc.AddFood(context.Background(), 99, AddFoodInput{Name: "Chicken Biryani"})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, u.foods.foods)
}

func TestAddOffer_ScopedToCallingVendor(t *testing.T) {
	svc, _ := newTestVendorService()

	v := seedVendor(t, svc, "owner@biryani.example")

	created, err := svc.AddOffer(context.Background(), v.ID, OfferInput{
		PromoType:        offer.PromoTypeAll,
		Title:            "Weekend special",
		OfferAmountCents: 500,
		Pincode:          "560001",
		IsActive:         true,
	})
	require.NoError(t, err)
	assert.Equal(t, offer.OfferTypeVendor, created.OfferType)
	assert.Equal(t, []int64{v.ID}, created.VendorIDs)
}

func TestEditOffer_OwnerOnly(t *testing.T) {
	svc, _ := newTestVendorService()

	owner := seedVendor(t, svc, "owner@biryani.example")
	other := seedVendor(t, svc, "owner@dosa.example")

	created, err := svc.AddOffer(context.Background(), owner.ID, OfferInput{
		PromoType:        offer.PromoTypeAll,
		Title:            "Weekend special",
		OfferAmountCents: 500,
		Pincode:          "560001",
		IsActive:         true,
	})
	require.NoError(t, err)

	updated, err := svc.EditOffer(context.Background(), owner.ID, created.ID, OfferInput{
		PromoType:        offer.PromoTypeAll,
		Title:            "Weekday special",
		OfferAmountCents: 300,
		Pincode:          "560001",
	})
	require.NoError(t, err)
	assert.Equal(t, "Weekday special", updated.Title)
	assert.Equal(t, int64(300), updated.OfferAmountCents)
	assert.False(t, updated.IsActive)

	// A vendor not listed on the offer learns nothing about it.
	_, err = svc.EditOffer(context.Background(), other.ID, created.ID, OfferInput{Title: "hijack"})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
