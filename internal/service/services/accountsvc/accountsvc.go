package accountsvc

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/quickbite/oms/internal/dal/interfaces/icustomerrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/ideliveryuserrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/ivendorrepo"
	"github.com/quickbite/oms/internal/dal/postgres"
	"github.com/quickbite/oms/internal/dal/uow"
	"github.com/quickbite/oms/internal/service/models/customer"
	"github.com/quickbite/oms/internal/service/models/deliveryuser"
	"github.com/quickbite/oms/internal/service/models/vendormodel"
	"github.com/quickbite/oms/pkg/apperr"
	"github.com/quickbite/oms/pkg/auth"
)

const otpTTL = 30 * time.Minute

// AccountService handles signup, login and OTP verification for customers,
// couriers and vendors, plus the courier-side account flags.
type AccountService struct {
	uowFactory func() unitOfWork
	notifier   Notifier
}

type unitOfWork interface {
	Customers() icustomerrepo.ICustomerRepository
	DeliveryUsers() ideliveryuserrepo.IDeliveryUserRepository
	Vendors() ivendorrepo.IVendorRepository
}

// option is a function that configures the AccountService.
type option func(*AccountService)

// MustNewAccountService creates a new AccountService.
func MustNewAccountService(opts ...option) *AccountService {
	s := &AccountService{
		notifier: LogNotifier{},
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the AccountService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *AccountService) {
		s.uowFactory = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// WithNotifier sets the OTP delivery channel.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotifier(n Notifier) option {
	return func(s *AccountService) {
		s.notifier = n
	}
}

// SignupInput is the data needed to open a customer account.
type SignupInput struct {
	Email    string
	Phone    string
	Password string
}

// Signup opens an unverified customer account, issues an OTP and returns
// the account with a bearer token.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*customer.Customer, string, error) {
	work := s.uowFactory()

	existing, err := work.Customers().GetByEmailOrPhone(ctx, in.Email, in.Phone)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", apperr.InvalidState("an account with this email or phone already exists")
	}

	salt, err := auth.NewSalt()
	if err != nil {
		return nil, "", err
	}
	hash, err := auth.HashPassword(in.Password, salt)
	if err != nil {
		return nil, "", err
	}

	otp, expiry := newOTP()
	created, err := work.Customers().Insert(ctx, customer.Customer{
		Email:     in.Email,
		Phone:     in.Phone,
		Password:  hash,
		Salt:      salt,
		OTP:       &otp,
		OTPExpiry: &expiry,
	})
	if err != nil {
		return nil, "", err
	}

	if err := s.notifier.SendOTP(ctx, created.Phone, otp); err != nil {
		slog.Warn("Failed to deliver signup OTP", "customer_id", created.ID, "error", err)
	}

	token, err := auth.Sign(created.ID, created.Email, created.Verified, auth.RoleCustomer)
	if err != nil {
		return nil, "", err
	}

	return created, token, nil
}

// Login checks the credentials and returns the account with a fresh token.
func (s *AccountService) Login(ctx context.Context, email, password string) (*customer.Customer, string, error) {
	work := s.uowFactory()

	c, err := work.Customers().GetByEmailOrPhone(ctx, email, "")
	if err != nil {
		return nil, "", err
	}
	if c == nil || !auth.VerifyPassword(c.Password, password, c.Salt) {
		return nil, "", apperr.Unauthorized("invalid email or password")
	}

	token, err := auth.Sign(c.ID, c.Email, c.Verified, auth.RoleCustomer)
	if err != nil {
		return nil, "", err
	}

	return c, token, nil
}

// VerifyAccount redeems the OTP and marks the account verified, returning a
// token that carries the new verification state.
func (s *AccountService) VerifyAccount(ctx context.Context, customerID int64, otp int) (*customer.Customer, string, error) {
	work := s.uowFactory()

	c, err := work.Customers().GetByID(ctx, customerID)
	if err != nil {
		return nil, "", err
	}
	if c.Verified {
		return nil, "", apperr.InvalidState("account is already verified")
	}
	if c.OTP == nil || c.OTPExpiry == nil || *c.OTP != otp || time.Now().After(*c.OTPExpiry) {
		return nil, "", apperr.Validation("invalid or expired OTP")
	}

	c.Verified = true
	c.OTP = nil
	c.OTPExpiry = nil
	if err := work.Customers().Update(ctx, *c); err != nil {
		return nil, "", err
	}

	token, err := auth.Sign(c.ID, c.Email, c.Verified, auth.RoleCustomer)
	if err != nil {
		return nil, "", err
	}

	return c, token, nil
}

// RequestOTP issues a fresh OTP for an unverified account.
func (s *AccountService) RequestOTP(ctx context.Context, customerID int64) error {
	work := s.uowFactory()

	c, err := work.Customers().GetByID(ctx, customerID)
	if err != nil {
		return err
	}
	if c.Verified {
		return apperr.InvalidState("account is already verified")
	}

	otp, expiry := newOTP()
	c.OTP = &otp
	c.OTPExpiry = &expiry
	if err := work.Customers().Update(ctx, *c); err != nil {
		return err
	}

	if err := s.notifier.SendOTP(ctx, c.Phone, otp); err != nil {
		slog.Warn("Failed to deliver OTP", "customer_id", c.ID, "error", err)
	}

	return nil
}

// GetProfile returns the customer's account.
func (s *AccountService) GetProfile(ctx context.Context, customerID int64) (*customer.Customer, error) {
	work := s.uowFactory()

	return work.Customers().GetByID(ctx, customerID)
}

// UpdateProfile overwrites the customer's name and address.
func (s *AccountService) UpdateProfile(ctx context.Context, customerID int64, firstName, lastName, address string) (*customer.Customer, error) {
	work := s.uowFactory()

	c, err := work.Customers().GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	c.FirstName = firstName
	c.LastName = lastName
	c.Address = address
	if err := work.Customers().Update(ctx, *c); err != nil {
		return nil, err
	}

	return c, nil
}

// VendorLogin checks a restaurant's credentials and returns the vendor with
// a vendor-role token. Vendor accounts are opened by an admin, so a vendor
// is considered verified from its first login.
func (s *AccountService) VendorLogin(ctx context.Context, email, password string) (*vendor.Vendor, string, error) {
	work := s.uowFactory()

	v, err := work.Vendors().GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if v == nil || !auth.VerifyPassword(v.Password, password, v.Salt) {
		return nil, "", apperr.Unauthorized("invalid email or password")
	}

	token, err := auth.Sign(v.ID, v.Email, true, auth.RoleVendor)
	if err != nil {
		return nil, "", err
	}

	return v, token, nil
}

// DeliverySignupInput is the data needed to open a courier account.
type DeliverySignupInput struct {
	Email     string
	Phone     string
	Password  string
	FirstName string
	LastName  string
	Address   string
	Pincode   string
}

// DeliverySignup opens a courier account. The account starts unverified and
// unavailable: an admin flips Verified, the courier flips IsAvailable, and
// only then does the courier become assignable.
func (s *AccountService) DeliverySignup(ctx context.Context, in DeliverySignupInput) (*deliveryuser.DeliveryUser, string, error) {
	work := s.uowFactory()

	existing, err := work.DeliveryUsers().GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", apperr.InvalidState("a courier account with this email already exists")
	}

	salt, err := auth.NewSalt()
	if err != nil {
		return nil, "", err
	}
	hash, err := auth.HashPassword(in.Password, salt)
	if err != nil {
		return nil, "", err
	}

	created, err := work.DeliveryUsers().Insert(ctx, deliveryuser.DeliveryUser{
		Email:     in.Email,
		Phone:     in.Phone,
		Password:  hash,
		Salt:      salt,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Address:   in.Address,
		Pincode:   in.Pincode,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := auth.Sign(created.ID, created.Email, created.Verified, auth.RoleDelivery)
	if err != nil {
		return nil, "", err
	}

	return created, token, nil
}

// DeliveryLogin checks a courier's credentials and returns the account with
// a delivery-role token.
func (s *AccountService) DeliveryLogin(ctx context.Context, email, password string) (*deliveryuser.DeliveryUser, string, error) {
	work := s.uowFactory()

	d, err := work.DeliveryUsers().GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if d == nil || !auth.VerifyPassword(d.Password, password, d.Salt) {
		return nil, "", apperr.Unauthorized("invalid email or password")
	}

	token, err := auth.Sign(d.ID, d.Email, d.Verified, auth.RoleDelivery)
	if err != nil {
		return nil, "", err
	}

	return d, token, nil
}

// UpdateDeliveryStatus toggles the courier's availability and, when
// coordinates are supplied, moves their reported location.
func (s *AccountService) UpdateDeliveryStatus(ctx context.Context, courierID int64, available bool, lat, lng *float64) (*deliveryuser.DeliveryUser, error) {
	work := s.uowFactory()

	d, err := work.DeliveryUsers().GetByID(ctx, courierID)
	if err != nil {
		return nil, err
	}

	d.IsAvailable = available
	if lat != nil && lng != nil {
		d.Lat = *lat
		d.Lng = *lng
	}
	if err := work.DeliveryUsers().UpdateStatus(ctx, *d); err != nil {
		return nil, err
	}

	return d, nil
}

// VerifyDeliveryUser flips the admin-controlled verification flag.
func (s *AccountService) VerifyDeliveryUser(ctx context.Context, courierID int64, verified bool) (*deliveryuser.DeliveryUser, error) {
	work := s.uowFactory()

	if err := work.DeliveryUsers().SetVerified(ctx, courierID, verified); err != nil {
		return nil, err
	}

	return work.DeliveryUsers().GetByID(ctx, courierID)
}

// newOTP returns a six digit code and its expiry.
func newOTP() (int, time.Time) {
	return 100000 + rand.Intn(900000), time.Now().Add(otpTTL)
}
