package offer

import (
	"database/sql/driver"
	"errors"
	"time"
)

// OfferType scopes an offer to specific vendors or the whole marketplace.
type OfferType string

const (
	OfferTypeVendor  OfferType = "VENDOR"
	OfferTypeGeneric OfferType = "GENERIC"
)

// PromoType narrows who may redeem an offer.
type PromoType string

const (
	PromoTypeUser PromoType = "USER"
	PromoTypeBank PromoType = "BANK"
	PromoTypeCard PromoType = "CARD"
	PromoTypeAll  PromoType = "ALL"
)

var ErrInvalidOfferType = errors.New("invalid offer type")

func (t OfferType) String() string {
	return string(t)
}

func (t OfferType) Value() (driver.Value, error) {
	return t.String(), nil
}

func ParseOfferType(s string) (OfferType, error) {
	switch s {
	case OfferTypeVendor.String():
		return OfferTypeVendor, nil
	case OfferTypeGeneric.String():
		return OfferTypeGeneric, nil
	default:
		return "", ErrInvalidOfferType
	}
}

// Offer is a discount rule applied at payment time.
type Offer struct {
	ID               int64     `json:"id"`
	OfferType        OfferType `json:"offerType"`
	PromoType        PromoType `json:"promoType"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	MinValueCents    int64     `json:"minValueCents"`
	OfferAmountCents int64     `json:"offerAmountCents"`
	PromoCode        string    `json:"promoCode"`
	Pincode          string    `json:"pincode"`
	IsActive         bool      `json:"isActive"`
	StartValidity    time.Time `json:"startValidity"`
	EndValidity      time.Time `json:"endValidity"`
	VendorIDs        []int64   `json:"vendorIds"`
	Banks            []string  `json:"banks"`
	Bins             []int64   `json:"bins"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Discount returns the payable amount after applying the flat discount.
// The result is not floored at zero: a discount larger than the amount
// yields a negative payable, matching the ledger's historical behavior.
func (o *Offer) Discount(amountCents int64) int64 {
	return amountCents - o.OfferAmountCents
}
