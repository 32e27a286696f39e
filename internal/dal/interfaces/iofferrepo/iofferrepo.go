package iofferrepo

import (
	"context"

	"github.com/quickbite/oms/internal/service/models/offer"
)

// IOfferRepository persists discount offers.
type IOfferRepository interface {
	// Insert stores a new offer and returns it with its id set.
	Insert(ctx context.Context, o offer.Offer) (*offer.Offer, error)

	// GetByID fails NotFound when the offer does not exist.
	GetByID(ctx context.Context, id int64) (*offer.Offer, error)

	// Update overwrites the offer's discount rule.
	Update(ctx context.Context, o offer.Offer) error
}
