package paymentsvc

import (
	"context"

	"github.com/quickbite/oms/internal/dal/interfaces/iofferrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/itransactionrepo"
	"github.com/quickbite/oms/internal/dal/postgres"
	"github.com/quickbite/oms/internal/dal/uow"
	"github.com/quickbite/oms/internal/service/models/offer"
	"github.com/quickbite/oms/internal/service/models/transaction"
	"github.com/quickbite/oms/pkg/apperr"
)

// PaymentService is the transaction ledger: it opens payment transactions
// and evaluates offers against payable amounts.
type PaymentService struct {
	uowFactory func() unitOfWork
	gateway    Gateway
}

type unitOfWork interface {
	Offers() iofferrepo.IOfferRepository
	Transactions() itransactionrepo.ITransactionRepository
}

// option is a function that configures the PaymentService.
type option func(*PaymentService)

// MustNewPaymentService creates a new PaymentService.
func MustNewPaymentService(opts ...option) *PaymentService {
	s := &PaymentService{
		gateway: StubGateway{},
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the PaymentService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *PaymentService) {
		s.uowFactory = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// WithGateway sets the payment gateway collaborator.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithGateway(g Gateway) option {
	return func(s *PaymentService) {
		s.gateway = g
	}
}

// VerifyOffer returns the offer when it can be redeemed. USER-scoped promo
// eligibility is not checked, matching the marketplace's current behavior.
func (s *PaymentService) VerifyOffer(ctx context.Context, customerID, offerID int64) (*offer.Offer, error) {
	work := s.uowFactory()

	o, err := work.Offers().GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if !o.IsActive {
		return nil, apperr.InvalidState("offer %d is not active", offerID)
	}

	if o.PromoType == offer.PromoTypeUser {
		_ = customerID // per-user redemption limits are not enforced yet
	}

	return o, nil
}

// ResolveDiscount computes the payable amount after applying the offer's
// flat discount. The result is not floored at zero.
func (s *PaymentService) ResolveDiscount(ctx context.Context, customerID, offerID, amountCents int64) (int64, error) {
	o, err := s.VerifyOffer(ctx, customerID, offerID)
	if err != nil {
		return 0, err
	}

	return o.Discount(amountCents), nil
}

// CreatePayment opens an OPEN transaction for the payable amount, applying
// the offer when one is referenced and recording the gateway response.
func (s *PaymentService) CreatePayment(
	ctx context.Context,
	customerID, amountCents int64,
	mode transaction.PaymentMode,
	offerID *int64,
) (*transaction.Transaction, error) {
	payable := amountCents
	if offerID != nil {
		discounted, err := s.ResolveDiscount(ctx, customerID, *offerID, amountCents)
		if err != nil {
			return nil, err
		}
		payable = discounted
	}

	response, err := s.gateway.Charge(ctx, customerID, payable, mode)
	if err != nil {
		return nil, err
	}

	work := s.uowFactory()

	return work.Transactions().Insert(ctx, transaction.Transaction{
		CustomerID:      customerID,
		OfferID:         offerID,
		OrderValueCents: payable,
		PaymentMode:     mode,
		PaymentResponse: response,
		Status:          transaction.StatusOpen,
	})
}

// ValidateOpen loads and row-locks a transaction inside the caller's
// database transaction, failing InvalidState unless it is still OPEN.
func ValidateOpen(ctx context.Context, repo itransactionrepo.ITransactionRepository, id int64) (*transaction.Transaction, error) {
	t, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.Open() {
		return nil, apperr.InvalidState("transaction %d was already completed", id)
	}

	return t, nil
}

// Finalize links the order to the transaction and marks it SUCCESS via a
// conditional update. The losing side of a finalize race fails InvalidState.
func Finalize(ctx context.Context, repo itransactionrepo.ITransactionRepository, id int64, orderID string, vendorID int64) error {
	won, err := repo.Finalize(ctx, id, orderID, vendorID)
	if err != nil {
		return err
	}
	if !won {
		return apperr.InvalidState("transaction %d was already completed", id)
	}

	return nil
}
