package paymentsvc

import (
	"context"
	"testing"

	"github.com/quickbite/oms/internal/dal/interfaces/iofferrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/itransactionrepo"
	"github.com/quickbite/oms/internal/service/models/offer"
	"github.com/quickbite/oms/internal/service/models/transaction"
	"github.com/quickbite/oms/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOfferRepo struct {
	offers map[int64]offer.Offer
}

func (f *fakeOfferRepo) Insert(_ context.Context, o offer.Offer) (*offer.Offer, error) {
	o.ID = int64(len(f.offers) + 1)
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

type fakeTransactionRepo struct {
	nextID       int64
	transactions map[int64]transaction.Transaction
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{nextID: 1, transactions: map[int64]transaction.Transaction{}}
}

func (f *fakeTransactionRepo) Insert(_ context.Context, t transaction.Transaction) (*transaction.Transaction, error) {
	t.ID = f.nextID
	f.nextID++
	f.transactions[t.ID] = t

	return &t, nil
}

func (f *fakeTransactionRepo) GetByID(_ context.Context, id int64) (*transaction.Transaction, error) {
	t, ok := f.transactions[id]
	if !ok {
		return nil, apperr.NotFound("transaction %d not found", id)
	}

	return &t, nil
}

func (f *fakeTransactionRepo) GetForUpdate(ctx context.Context, id int64) (*transaction.Transaction, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeTransactionRepo) Finalize(_ context.Context, id int64, orderID string, vendorID int64) (bool, error) {
	t, ok := f.transactions[id]
	if !ok || t.Status != transaction.StatusOpen {
		return false, nil
	}

	t.Status = transaction.StatusSuccess
	t.OrderID = &orderID
	t.VendorID = &vendorID
	f.transactions[id] = t

	return true, nil
}

type fakePaymentUow struct {
	offers       *fakeOfferRepo
	transactions *fakeTransactionRepo
}

func (u *fakePaymentUow) Offers() iofferrepo.IOfferRepository { return u.offers }

func (u *fakePaymentUow) Transactions() itransactionrepo.ITransactionRepository {
	return u.transactions
}

func newTestPaymentService(offers map[int64]offer.Offer) (*PaymentService, *fakeTransactionRepo) {
	transactions := newFakeTransactionRepo()
	u := &fakePaymentUow{
		offers:       &fakeOfferRepo{offers: offers},
		transactions: transactions,
	}

	return &PaymentService{
		uowFactory: func() unitOfWork { return u },
		gateway:    StubGateway{},
	}, transactions
}

func TestResolveDiscount_FlatDiscount(t *testing.T) {
	svc, _ := newTestPaymentService(map[int64]offer.Offer{
		5: {ID: 5, IsActive: true, OfferAmountCents: 500},
	})

	payable, err := svc.ResolveDiscount(context.Background(), 42, 5, 2500)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), payable)
}

func TestResolveDiscount_NotFlooredAtZero(t *testing.T) {
	svc, _ := newTestPaymentService(map[int64]offer.Offer{
		5: {ID: 5, IsActive: true, OfferAmountCents: 3000},
	})

	payable, err := svc.ResolveDiscount(context.Background(), 42, 5, 2500)
	require.NoError(t, err)
	assert.Equal(t, int64(-500), payable)
}

func TestVerifyOffer_InactiveFailsInvalidState(t *testing.T) {
	svc, _ := newTestPaymentService(map[int64]offer.Offer{
		5: {ID: 5, IsActive: false, OfferAmountCents: 500},
	})

	_, err := svc.VerifyOffer(context.Background(), 42, 5)
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidState(err))
}

func TestVerifyOffer_MissingFailsNotFound(t *testing.T) {
	svc, _ := newTestPaymentService(nil)

	_, err := svc.VerifyOffer(context.Background(), 42, 5)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreatePayment_OpensTransaction(t *testing.T) {
	svc, repo := newTestPaymentService(map[int64]offer.Offer{
		5: {ID: 5, IsActive: true, OfferAmountCents: 500},
	})

	offerID := int64(5)
	created, err := svc.CreatePayment(context.Background(), 42, 2500, transaction.PaymentModeCard, &offerID)
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusOpen, created.Status)
	assert.Equal(t, int64(2000), created.OrderValueCents)
	assert.NotEmpty(t, created.PaymentResponse)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, stored.Open())
}

func TestValidateOpen_CompletedFailsInvalidState(t *testing.T) {
	repo := newFakeTransactionRepo()
	created, err := repo.Insert(context.Background(), transaction.Transaction{
		CustomerID: 42,
		Status:     transaction.StatusSuccess,
	})
	require.NoError(t, err)

	_, err = ValidateOpen(context.Background(), repo, created.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidState(err))
}

func TestFinalize_SingleWinner(t *testing.T) {
	repo := newFakeTransactionRepo()
	created, err := repo.Insert(context.Background(), transaction.Transaction{
		CustomerID: 42,
		Status:     transaction.StatusOpen,
	})
	require.NoError(t, err)

	require.NoError(t, Finalize(context.Background(), repo, created.ID, "order-1", 7))

	err = Finalize(context.Background(), repo, created.ID, "order-2", 7)
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidState(err))

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusSuccess, stored.Status)
	assert.Equal(t, "order-1", *stored.OrderID)
}
