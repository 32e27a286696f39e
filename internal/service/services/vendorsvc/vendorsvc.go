package vendorsvc

import (
	"context"
	"time"

	"github.com/quickbite/oms/internal/dal/interfaces/ifoodrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/iofferrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/ivendorrepo"
	"github.com/quickbite/oms/internal/dal/postgres"
	"github.com/quickbite/oms/internal/dal/uow"
	"github.com/quickbite/oms/internal/service/models/food"
	"github.com/quickbite/oms/internal/service/models/offer"
	"github.com/quickbite/oms/internal/service/models/vendormodel"
	"github.com/quickbite/oms/pkg/apperr"
	"github.com/quickbite/oms/pkg/auth"
)

// VendorService is the management plane of the catalog: admins open vendor
// accounts, vendors maintain their menu and offers.
type VendorService struct {
	uowFactory func() unitOfWork
}

type unitOfWork interface {
	Vendors() ivendorrepo.IVendorRepository
	Foods() ifoodrepo.IFoodRepository
	Offers() iofferrepo.IOfferRepository
}

// option is a function that configures the VendorService.
type option func(*VendorService)

// MustNewVendorService creates a new VendorService.
func MustNewVendorService(opts ...option) *VendorService {
	s := &VendorService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the VendorService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *VendorService) {
		s.uowFactory = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// CreateVendorInput is the data an admin supplies to open a restaurant.
type CreateVendorInput struct {
	Name      string
	OwnerName string
	Email     string
	Password  string
	Address   string
	Pincode   string
}

// CreateVendor opens a restaurant account. The vendor starts with service
// unavailable and flips it on once ready to take orders.
func (s *VendorService) CreateVendor(ctx context.Context, in CreateVendorInput) (*vendor.Vendor, error) {
	work := s.uowFactory()

	existing, err := work.Vendors().GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.InvalidState("a vendor with this email already exists")
	}

	salt, err := auth.NewSalt()
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password, salt)
	if err != nil {
		return nil, err
	}

	return work.Vendors().Insert(ctx, vendor.Vendor{
		Name:      in.Name,
		OwnerName: in.OwnerName,
		Email:     in.Email,
		Password:  hash,
		Salt:      salt,
		Address:   in.Address,
		Pincode:   in.Pincode,
	})
}

// ListVendors returns every restaurant on the marketplace.
func (s *VendorService) ListVendors(ctx context.Context) ([]vendor.Vendor, error) {
	work := s.uowFactory()

	return work.Vendors().List(ctx)
}

// SetServiceAvailable flips whether the vendor is currently taking orders.
func (s *VendorService) SetServiceAvailable(ctx context.Context, vendorID int64, available bool) (*vendor.Vendor, error) {
	work := s.uowFactory()

	if err := work.Vendors().SetServiceAvailable(ctx, vendorID, available); err != nil {
		return nil, err
	}

	return work.Vendors().GetByID(ctx, vendorID)
}

// AddFoodInput is one new menu entry.
type AddFoodInput struct {
	Name        string
	Description string
	Category    string
	FoodType    string
	PriceCents  int64
	ReadyTime   int
}

// AddFood appends a food to the vendor's menu.
func (s *VendorService) AddFood(ctx context.Context, vendorID int64, in AddFoodInput) (*food.Food, error) {
	work := s.uowFactory()

	if _, err := work.Vendors().GetByID(ctx, vendorID); err != nil {
		return nil, err
	}

	return work.Foods().Insert(ctx, food.Food{
		VendorID:    vendorID,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		FoodType:    in.FoodType,
		PriceCents:  in.PriceCents,
		ReadyTime:   in.ReadyTime,
	})
}

// OfferInput is the discount rule a vendor maintains.
type OfferInput struct {
	PromoType        offer.PromoType
	Title            string
	Description      string
	MinValueCents    int64
	OfferAmountCents int64
	PromoCode        string
	Pincode          string
	IsActive         bool
	StartValidity    time.Time
	EndValidity      time.Time
}

// AddOffer creates a vendor-scoped offer owned by the calling vendor.
func (s *VendorService) AddOffer(ctx context.Context, vendorID int64, in OfferInput) (*offer.Offer, error) {
	work := s.uowFactory()

	if _, err := work.Vendors().GetByID(ctx, vendorID); err != nil {
		return nil, err
	}

	return work.Offers().Insert(ctx, offer.Offer{
		OfferType:        offer.OfferTypeVendor,
		PromoType:        in.PromoType,
		Title:            in.Title,
		Description:      in.Description,
		MinValueCents:    in.MinValueCents,
		OfferAmountCents: in.OfferAmountCents,
		PromoCode:        in.PromoCode,
		Pincode:          in.Pincode,
		IsActive:         in.IsActive,
		StartValidity:    in.StartValidity,
		EndValidity:      in.EndValidity,
		VendorIDs:        []int64{vendorID},
	})
}

// EditOffer overwrites an offer the calling vendor owns. An offer that does
// not list the vendor is reported NotFound, never revealed.
func (s *VendorService) EditOffer(ctx context.Context, vendorID, offerID int64, in OfferInput) (*offer.Offer, error) {
	work := s.uowFactory()

	o, err := work.Offers().GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if !ownsOffer(o, vendorID) {
		return nil, apperr.NotFound("offer %d not found", offerID)
	}

	o.PromoType = in.PromoType
	o.Title = in.Title
	o.Description = in.Description
	o.MinValueCents = in.MinValueCents
	o.OfferAmountCents = in.OfferAmountCents
	o.PromoCode = in.PromoCode
	o.Pincode = in.Pincode
	o.IsActive = in.IsActive
	o.StartValidity = in.StartValidity
	o.EndValidity = in.EndValidity
	if err := work.Offers().Update(ctx, *o); err != nil {
		return nil, err
	}

	return o, nil
}

func ownsOffer(o *offer.Offer, vendorID int64) bool {
	for _, id := range o.VendorIDs {
		if id == vendorID {
			return true
		}
	}

	return false
}
