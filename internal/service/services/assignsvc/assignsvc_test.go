package assignsvc

import (
	"context"
	"testing"

	"github.com/quickbite/oms/internal/dal/interfaces/ideliveryuserrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/iorderrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/ivendorrepo"
	"github.com/quickbite/oms/internal/service/models/deliveryuser"
	"github.com/quickbite/oms/internal/service/models/order"
	"github.com/quickbite/oms/internal/service/models/vendormodel"
	"github.com/quickbite/oms/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVendorRepo struct {
	vendors map[int64]vendor.Vendor
}

func (f *fakeVendorRepo) GetByID(_ context.Context, id int64) (*vendor.Vendor, error) {
	v, ok := f.vendors[id]
	if !ok {
		return nil, apperr.NotFound("vendor %d not found", id)
	}

	return &v, nil
}

func (f *fakeVendorRepo) ListByPincode(_ context.Context, _ string, _ bool, _ int) ([]vendor.Vendor, error) {
	return nil, nil
}

func (f *fakeVendorRepo) Insert(_ context.Context, v vendor.Vendor) (*vendor.Vendor, error) {
	return &v, nil
}

func (f *fakeVendorRepo) GetByEmail(_ context.Context, _ string) (*vendor.Vendor, error) {
	return nil, nil
}

func (f *fakeVendorRepo) List(_ context.Context) ([]vendor.Vendor, error) { return nil, nil }

func (f *fakeVendorRepo) SetServiceAvailable(_ context.Context, _ int64, _ bool) error { return nil }

type fakeDeliveryUserRepo struct {
	couriers []deliveryuser.DeliveryUser
}

func (f *fakeDeliveryUserRepo) Insert(_ context.Context, d deliveryuser.DeliveryUser) (*deliveryuser.DeliveryUser, error) {
	return &d, nil
}

func (f *fakeDeliveryUserRepo) GetByEmail(_ context.Context, _ string) (*deliveryuser.DeliveryUser, error) {
	return nil, nil
}

func (f *fakeDeliveryUserRepo) GetByID(_ context.Context, id int64) (*deliveryuser.DeliveryUser, error) {
	for _, d := range f.couriers {
		if d.ID == id {
			return &d, nil
		}
	}

	return nil, apperr.NotFound("delivery user %d not found", id)
}

func (f *fakeDeliveryUserRepo) FindAssignable(_ context.Context, pincode string) ([]deliveryuser.DeliveryUser, error) {
	var result []deliveryuser.DeliveryUser
	for _, d := range f.couriers {
		if d.Assignable(pincode) {
			result = append(result, d)
		}
	}

	return result, nil
}

func (f *fakeDeliveryUserRepo) UpdateStatus(_ context.Context, _ deliveryuser.DeliveryUser) error {
	return nil
}

func (f *fakeDeliveryUserRepo) SetVerified(_ context.Context, _ int64, _ bool) error {
	return nil
}

type fakeOrderRepo struct {
	orders []order.Order
}

func (f *fakeOrderRepo) Insert(_ context.Context, o order.Order) (*order.Order, error) {
	f.orders = append(f.orders, o)

	return &o, nil
}

func (f *fakeOrderRepo) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	var result []order.Order
	for _, o := range f.orders {
		if len(filter.Ids) > 0 {
			for _, id := range filter.Ids {
				if o.ID == id {
					result = append(result, o)
				}
			}

			continue
		}
		if filter.Unassigned && o.DeliveryUserID != nil {
			continue
		}
		if len(filter.Statuses) > 0 {
			found := false
			for _, s := range filter.Statuses {
				if o.OrderStatus == s {
					found = true
				}
			}
			if !found {
				continue
			}
		}
		result = append(result, o)
	}

	return result, nil
}

func (f *fakeOrderRepo) GetByOrderID(_ context.Context, orderID string) (*order.Order, error) {
	for _, o := range f.orders {
		if o.OrderID == orderID {
			return &o, nil
		}
	}

	return nil, apperr.NotFound("order %s not found", orderID)
}

func (f *fakeOrderRepo) UpdateProcessing(_ context.Context, _ int64, _ order.Status, _ string, _ *int) error {
	return nil
}

func (f *fakeOrderRepo) AssignDeliveryUser(_ context.Context, id, deliveryUserID int64) (bool, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			if f.orders[i].DeliveryUserID != nil {
				return false, nil
			}
			f.orders[i].DeliveryUserID = &deliveryUserID

			return true, nil
		}
	}

	return false, nil
}

type fakeAssignUow struct {
	orders        *fakeOrderRepo
	vendors       *fakeVendorRepo
	deliveryUsers *fakeDeliveryUserRepo
}

func (u *fakeAssignUow) Orders() iorderrepo.IOrderRepository    { return u.orders }
func (u *fakeAssignUow) Vendors() ivendorrepo.IVendorRepository { return u.vendors }

func (u *fakeAssignUow) DeliveryUsers() ideliveryuserrepo.IDeliveryUserRepository {
	return u.deliveryUsers
}

func newTestAssignService(couriers []deliveryuser.DeliveryUser, orders []order.Order) (*AssignService, *fakeAssignUow) {
	u := &fakeAssignUow{
		orders: &fakeOrderRepo{orders: orders},
		vendors: &fakeVendorRepo{vendors: map[int64]vendor.Vendor{
			7: {ID: 7, Pincode: "560001"},
		}},
		deliveryUsers: &fakeDeliveryUserRepo{couriers: couriers},
	}

	return &AssignService{
		uowFactory: func() unitOfWork { return u },
	}, u
}

func TestAssign_FiltersAndPicksFirst(t *testing.T) {
	svc, u := newTestAssignService([]deliveryuser.DeliveryUser{
		{ID: 1, Pincode: "560001", Verified: true, IsAvailable: false},
		{ID: 2, Pincode: "999999", Verified: true, IsAvailable: true},
		{ID: 3, Pincode: "560001", Verified: false, IsAvailable: true},
		{ID: 4, Pincode: "560001", Verified: true, IsAvailable: true},
		{ID: 5, Pincode: "560001", Verified: true, IsAvailable: true},
	}, []order.Order{
		{ID: 100, VendorID: 7, OrderStatus: order.StatusWaiting},
	})

	courier, err := svc.Assign(context.Background(), 100, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(4), courier.ID)

	require.NotNil(t, u.orders.orders[0].DeliveryUserID)
	assert.Equal(t, int64(4), *u.orders.orders[0].DeliveryUserID)
}

func TestAssign_NoCandidateFailsNotFoundAndLeavesOrderAlone(t *testing.T) {
	svc, u := newTestAssignService([]deliveryuser.DeliveryUser{
		{ID: 1, Pincode: "560001", Verified: true, IsAvailable: false},
	}, []order.Order{
		{ID: 100, VendorID: 7, OrderStatus: order.StatusWaiting},
	})

	_, err := svc.Assign(context.Background(), 100, 7)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Nil(t, u.orders.orders[0].DeliveryUserID)
}

func TestAssign_UnknownVendorFailsNotFound(t *testing.T) {
	svc, _ := newTestAssignService(nil, nil)

	_, err := svc.Assign(context.Background(), 100, 99)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestAssign_IdempotentWhenAlreadyAssigned(t *testing.T) {
	existing := int64(5)
	svc, _ := newTestAssignService([]deliveryuser.DeliveryUser{
		{ID: 4, Pincode: "560001", Verified: true, IsAvailable: true},
		{ID: 5, Pincode: "560001", Verified: true, IsAvailable: true},
	}, []order.Order{
		{ID: 100, VendorID: 7, OrderStatus: order.StatusWaiting, DeliveryUserID: &existing},
	})

	courier, err := svc.Assign(context.Background(), 100, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(5), courier.ID)
}

func TestReassignPending_MatchesOnlyUnassignedWaiting(t *testing.T) {
	assigned := int64(4)
	svc, u := newTestAssignService([]deliveryuser.DeliveryUser{
		{ID: 4, Pincode: "560001", Verified: true, IsAvailable: true},
	}, []order.Order{
		{ID: 100, VendorID: 7, OrderStatus: order.StatusWaiting},
		{ID: 101, VendorID: 7, OrderStatus: order.StatusWaiting, DeliveryUserID: &assigned},
		{ID: 102, VendorID: 7, OrderStatus: order.StatusDelivered},
	})

	matched, err := svc.ReassignPending(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, matched)
	require.NotNil(t, u.orders.orders[0].DeliveryUserID)
	assert.Equal(t, int64(4), *u.orders.orders[0].DeliveryUserID)
}
