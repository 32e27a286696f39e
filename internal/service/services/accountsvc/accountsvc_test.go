package accountsvc

import (
	"context"
	"testing"
	"time"

	"github.com/quickbite/oms/internal/dal/interfaces/icustomerrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/ideliveryuserrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/ivendorrepo"
	"github.com/quickbite/oms/internal/service/models/customer"
	"github.com/quickbite/oms/internal/service/models/deliveryuser"
	"github.com/quickbite/oms/internal/service/models/vendormodel"
	"github.com/quickbite/oms/pkg/apperr"
	"github.com/quickbite/oms/pkg/auth"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	viper.Set("auth.jwt_secret", "test-secret")
}

type fakeCustomerRepo struct {
	nextID    int64
	customers map[int64]customer.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{nextID: 1, customers: map[int64]customer.Customer{}}
}

func (f *fakeCustomerRepo) Insert(_ context.Context, c customer.Customer) (*customer.Customer, error) {
	c.ID = f.nextID
	f.nextID++
	f.customers[c.ID] = c

	return &c, nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*customer.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, apperr.NotFound("customer %d not found", id)
	}

	return &c, nil
}

func (f *fakeCustomerRepo) GetByEmailOrPhone(_ context.Context, email, phone string) (*customer.Customer, error) {
	for _, c := range f.customers {
		if (email != "" && c.Email == email) || (phone != "" && c.Phone == phone) {
			return &c, nil
		}
	}

	return nil, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, c customer.Customer) error {
	f.customers[c.ID] = c

	return nil
}

type fakeDeliveryUserRepo struct {
	nextID   int64
	couriers map[int64]deliveryuser.DeliveryUser
}

func (f *fakeDeliveryUserRepo) Insert(_ context.Context, d deliveryuser.DeliveryUser) (*deliveryuser.DeliveryUser, error) {
	f.nextID++
	d.ID = f.nextID
	f.couriers[d.ID] = d

	return &d, nil
}

func (f *fakeDeliveryUserRepo) GetByEmail(_ context.Context, email string) (*deliveryuser.DeliveryUser, error) {
	for _, d := range f.couriers {
		if d.Email == email {
			return &d, nil
		}
	}

	return nil, nil
}

func (f *fakeDeliveryUserRepo) GetByID(_ context.Context, id int64) (*deliveryuser.DeliveryUser, error) {
	d, ok := f.couriers[id]
	if !ok {
		return nil, apperr.NotFound("delivery user %d not found", id)
	}

	return &d, nil
}

func (f *fakeDeliveryUserRepo) FindAssignable(_ context.Context, _ string) ([]deliveryuser.DeliveryUser, error) {
	return nil, nil
}

func (f *fakeDeliveryUserRepo) UpdateStatus(_ context.Context, d deliveryuser.DeliveryUser) error {
	f.couriers[d.ID] = d

	return nil
}

func (f *fakeDeliveryUserRepo) SetVerified(_ context.Context, id int64, verified bool) error {
	d, ok := f.couriers[id]
	if !ok {
		return apperr.NotFound("delivery user %d not found", id)
	}
	d.Verified = verified
	f.couriers[id] = d

	return nil
}

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

func (f *fakeVendorRepo) List(_ context.Context) ([]vendor.Vendor, error) { return nil, nil }

func (f *fakeVendorRepo) ListByPincode(_ context.Context, _ string, _ bool, _ int) ([]vendor.Vendor, error) {
	return nil, nil
}

func (f *fakeVendorRepo) SetServiceAvailable(_ context.Context, _ int64, _ bool) error { return nil }

type fakeAccountUow struct {
	customers     *fakeCustomerRepo
	deliveryUsers *fakeDeliveryUserRepo
	vendors       *fakeVendorRepo
}

func (u *fakeAccountUow) Customers() icustomerrepo.ICustomerRepository { return u.customers }

func (u *fakeAccountUow) DeliveryUsers() ideliveryuserrepo.IDeliveryUserRepository {
	return u.deliveryUsers
}

func (u *fakeAccountUow) Vendors() ivendorrepo.IVendorRepository { return u.vendors }

func newTestAccountService() (*AccountService, *fakeAccountUow) {
	u := &fakeAccountUow{
		customers: newFakeCustomerRepo(),
		deliveryUsers: &fakeDeliveryUserRepo{nextID: 3, couriers: map[int64]deliveryuser.DeliveryUser{
			3: {ID: 3, Pincode: "560001"},
		}},
		vendors: &fakeVendorRepo{vendors: map[int64]vendor.Vendor{}},
	}

	return &AccountService{
		uowFactory: func() unitOfWork { return u },
		notifier:   LogNotifier{},
	}, u
}

func TestSignup_CreatesUnverifiedAccountWithOTP(t *testing.T) {
	svc, u := newTestAccountService()

	c, token, err := svc.Signup(context.Background(), SignupInput{
		Email:    "jo@example.com",
		Phone:    "5551234567",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, c.Verified)

	stored := u.customers.customers[c.ID]
	require.NotNil(t, stored.OTP)
	assert.GreaterOrEqual(t, *stored.OTP, 100000)
	assert.LessOrEqual(t, *stored.OTP, 999999)
	require.NotNil(t, stored.OTPExpiry)
	assert.True(t, stored.OTPExpiry.After(time.Now()))
	assert.NotEqual(t, "hunter22", stored.Password)
}

func TestSignup_DuplicateFailsInvalidState(t *testing.T) {
	svc, _ := newTestAccountService()

	_, _, err := svc.Signup(context.Background(), SignupInput{
		Email: "jo@example.com", Phone: "5551234567", Password: "hunter22",
	})
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), SignupInput{
		Email: "jo@example.com", Phone: "5550000000", Password: "hunter22",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidState(err))
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAccountService()

	_, _, err := svc.Signup(context.Background(), SignupInput{
		Email: "jo@example.com", Phone: "5551234567", Password: "hunter22",
	})
	require.NoError(t, err)

	_, token, err := svc.Login(context.Background(), "jo@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(context.Background(), "jo@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "hunter22")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestVerifyAccount(t *testing.T) {
	svc, u := newTestAccountService()

	c, _, err := svc.Signup(context.Background(), SignupInput{
		Email: "jo@example.com", Phone: "5551234567", Password: "hunter22",
	})
	require.NoError(t, err)
	otp := *u.customers.customers[c.ID].OTP

	_, _, err = svc.VerifyAccount(context.Background(), c.ID, otp+1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	verified, _, err := svc.VerifyAccount(context.Background(), c.ID, otp)
	require.NoError(t, err)
	assert.True(t, verified.Verified)
	assert.Nil(t, verified.OTP)

	// A second verification of the same account is rejected.
	_, _, err = svc.VerifyAccount(context.Background(), c.ID, otp)
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidState(err))
}

func TestVerifyAccount_ExpiredOTP(t *testing.T) {
	svc, u := newTestAccountService()

	c, _, err := svc.Signup(context.Background(), SignupInput{
		Email: "jo@example.com", Phone: "5551234567", Password: "hunter22",
	})
	require.NoError(t, err)

	stored := u.customers.customers[c.ID]
	expired := time.Now().Add(-time.Minute)
	stored.OTPExpiry = &expired
	u.customers.customers[c.ID] = stored

	_, _, err = svc.VerifyAccount(context.Background(), c.ID, *stored.OTP)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUpdateDeliveryStatus(t *testing.T) {
	svc, u := newTestAccountService()

	lat, lng := 12.97, 77.59
	d, err := svc.UpdateDeliveryStatus(context.Background(), 3, true, &lat, &lng)
	require.NoError(t, err)
	assert.True(t, d.IsAvailable)
	assert.Equal(t, 12.97, d.Lat)

	// Location untouched when coordinates are omitted.
	d, err = svc.UpdateDeliveryStatus(context.Background(), 3, false, nil, nil)
	require.NoError(t, err)
	assert.False(t, d.IsAvailable)
	assert.Equal(t, 12.97, u.deliveryUsers.couriers[3].Lat)
}

func TestVendorLogin(t *testing.T) {
	svc, u := newTestAccountService()

	salt, err := auth.NewSalt()
	require.NoError(t, err)
	hash, err := auth.HashPassword("tandoori1", salt)
	require.NoError(t, err)
	_, err = u.vendors.Insert(context.Background(), vendor.Vendor{
		Name: "Biryani House", Email: "owner@biryani.example", Password: hash, Salt: salt,
	})
	require.NoError(t, err)

	v, token, err := svc.VendorLogin(context.Background(), "owner@biryani.example", "tandoori1")
	require.NoError(t, err)
	assert.Equal(t, "Biryani House", v.Name)

	claims, err := auth.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleVendor, claims.Role)
	assert.Equal(t, v.ID, claims.UserID)

	_, _, err = svc.VendorLogin(context.Background(), "owner@biryani.example", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	_, _, err = svc.VendorLogin(context.Background(), "nobody@biryani.example", "tandoori1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestDeliverySignup_CreatesUnverifiedCourier(t *testing.T) {
	svc, u := newTestAccountService()

	d, token, err := svc.DeliverySignup(context.Background(), DeliverySignupInput{
		Email:     "rider@example.com",
		Phone:     "5559876543",
		Password:  "wheels99",
		FirstName: "Asha",
		LastName:  "Rao",
		Address:   "12 MG Road",
		Pincode:   "560001",
	})
	require.NoError(t, err)
	assert.False(t, d.Verified)
	assert.False(t, d.IsAvailable)

	stored := u.deliveryUsers.couriers[d.ID]
	assert.NotEqual(t, "wheels99", stored.Password)

	claims, err := auth.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleDelivery, claims.Role)
	assert.False(t, claims.Verified)
}

func TestDeliverySignup_DuplicateEmailFailsInvalidState(t *testing.T) {
	svc, _ := newTestAccountService()

	in := DeliverySignupInput{
		Email: "rider@example.com", Phone: "5559876543", Password: "wheels99",
		FirstName: "Asha", LastName: "Rao", Address: "12 MG Road", Pincode: "560001",
	}
	_, _, err := svc.DeliverySignup(context.Background(), in)
	require.NoError(t, err)

	in.Phone = "5550001111"
	_, _, err = svc.DeliverySignup(context.Background(), in)
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidState(err))
}

func TestDeliveryLogin(t *testing.T) {
	svc, _ := newTestAccountService()

	_, _, err := svc.DeliverySignup(context.Background(), DeliverySignupInput{
		Email: "rider@example.com", Phone: "5559876543", Password: "wheels99",
		FirstName: "Asha", LastName: "Rao", Address: "12 MG Road", Pincode: "560001",
	})
	require.NoError(t, err)

	d, token, err := svc.DeliveryLogin(context.Background(), "rider@example.com", "wheels99")
	require.NoError(t, err)
	assert.Equal(t, "rider@example.com", d.Email)

	claims, err := auth.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleDelivery, claims.Role)

	_, _, err = svc.DeliveryLogin(context.Background(), "rider@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestVerifyDeliveryUser(t *testing.T) {
	svc, _ := newTestAccountService()

	d, err := svc.VerifyDeliveryUser(context.Background(), 3, true)
	require.NoError(t, err)
	assert.True(t, d.Verified)

	_, err = svc.VerifyDeliveryUser(context.Background(), 99, true)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
