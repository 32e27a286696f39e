package uow

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/quickbite/oms/internal/dal/interfaces/icartrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/icustomerrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/ideliveryuserrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/ifoodrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/iofferrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/iorderitemrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/iorderrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/ioutboxrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/itransactionrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/ivendorrepo"
	"github.com/quickbite/oms/internal/dal/postgres"
	cartrepo "github.com/quickbite/oms/internal/dal/repositories/cart/postgres"
	customerrepo "github.com/quickbite/oms/internal/dal/repositories/customer/postgres"
	deliveryuserrepo "github.com/quickbite/oms/internal/dal/repositories/deliveryuser/postgres"
	foodrepo "github.com/quickbite/oms/internal/dal/repositories/food/postgres"
	offerrepo "github.com/quickbite/oms/internal/dal/repositories/offer/postgres"
	orderrepo "github.com/quickbite/oms/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/quickbite/oms/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/quickbite/oms/internal/dal/repositories/outbox/postgres"
	transactionrepo "github.com/quickbite/oms/internal/dal/repositories/transaction/postgres"
	vendorrepo "github.com/quickbite/oms/internal/dal/repositories/vendorrepo/postgres"
)

// UnitOfWork binds every repository to one connection source. Before Begin
// the repositories run against the pool; after Begin they share a single
// database transaction until Commit or Rollback.
type UnitOfWork struct {
	client *postgres.Client
	tx     pgx.Tx

	foods         ifoodrepo.IFoodRepository
	carts         icartrepo.ICartRepository
	orders        iorderrepo.IOrderRepository
	orderItems    iorderitemrepo.IOrderItemRepository
	transactions  itransactionrepo.ITransactionRepository
	offers        iofferrepo.IOfferRepository
	vendors       ivendorrepo.IVendorRepository
	customers     icustomerrepo.ICustomerRepository
	deliveryUsers ideliveryuserrepo.IDeliveryUserRepository
	outbox        ioutboxrepo.IOutboxRepository
}

func NewUnitOfWork(client *postgres.Client) *UnitOfWork {
	u := &UnitOfWork{client: client}
	u.bind(client.Pool())

	return u
}

func (u *UnitOfWork) bind(conn postgres.Querier) {
	u.foods = foodrepo.NewFoodPostgresRepository(conn)
	u.carts = cartrepo.NewCartPostgresRepository(conn)
	u.orders = orderrepo.NewOrderPostgresRepository(conn)
	u.orderItems = orderitemrepo.NewOrderItemPostgresRepository(conn)
	u.transactions = transactionrepo.NewTransactionPostgresRepository(conn)
	u.offers = offerrepo.NewOfferPostgresRepository(conn)
	u.vendors = vendorrepo.NewVendorPostgresRepository(conn)
	u.customers = customerrepo.NewCustomerPostgresRepository(conn)
	u.deliveryUsers = deliveryuserrepo.NewDeliveryUserPostgresRepository(conn)
	u.outbox = outboxrepo.NewOutboxPostgresRepository(conn)
}

// Begin starts a database transaction and rebinds every repository to it.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	tx, err := u.client.Pool().Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

// Commit commits the transaction; a no-op when Begin was never called.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

// Rollback rolls the transaction back; safe to defer after Commit.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Rollback(ctx)
}

func (u *UnitOfWork) Foods() ifoodrepo.IFoodRepository {
	return u.foods
}

func (u *UnitOfWork) Carts() icartrepo.ICartRepository {
	return u.carts
}

func (u *UnitOfWork) Orders() iorderrepo.IOrderRepository {
	return u.orders
}

func (u *UnitOfWork) OrderItems() iorderitemrepo.IOrderItemRepository {
	return u.orderItems
}

func (u *UnitOfWork) Transactions() itransactionrepo.ITransactionRepository {
	return u.transactions
}

func (u *UnitOfWork) Offers() iofferrepo.IOfferRepository {
	return u.offers
}

func (u *UnitOfWork) Vendors() ivendorrepo.IVendorRepository {
	return u.vendors
}

func (u *UnitOfWork) Customers() icustomerrepo.ICustomerRepository {
	return u.customers
}

func (u *UnitOfWork) DeliveryUsers() ideliveryuserrepo.IDeliveryUserRepository {
	return u.deliveryUsers
}

func (u *UnitOfWork) Outbox() ioutboxrepo.IOutboxRepository {
	return u.outbox
}
