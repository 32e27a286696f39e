package ordersvc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/quickbite/oms/internal/dal/interfaces/icartrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/ifoodrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/iorderitemrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/iorderrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/ioutboxrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/itransactionrepo"
	"github.com/quickbite/oms/internal/dal/postgres"
	"github.com/quickbite/oms/internal/dal/uow"
	"github.com/quickbite/oms/internal/service/models/deliveryuser"
	"github.com/quickbite/oms/internal/service/models/food"
	"github.com/quickbite/oms/internal/service/models/order"
	"github.com/quickbite/oms/internal/service/models/orderitem"
	"github.com/quickbite/oms/internal/service/models/outbox"
	"github.com/quickbite/oms/internal/service/services/paymentsvc"
	"github.com/quickbite/oms/pkg/apperr"
	"go.opentelemetry.io/otel"
)

// OrderCreatedQueue is the queue fed by the outbox worker for every
// committed order.
const OrderCreatedQueue = "oms.order.created"

// OrderLine is one requested line of a new order: the quantity is taken
// from the client, the price never is.
type OrderLine struct {
	FoodID   int64 `json:"foodId"`
	Quantity int   `json:"quantity"`
}

// OrderService is the order engine: it converts a validated payment plus a
// set of requested lines into a persisted order.
type OrderService struct {
	uowFactory func() unitOfWork
	assigner   assigner
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	Foods() ifoodrepo.IFoodRepository
	Carts() icartrepo.ICartRepository
	Orders() iorderrepo.IOrderRepository
	OrderItems() iorderitemrepo.IOrderItemRepository
	Transactions() itransactionrepo.ITransactionRepository
	Outbox() ioutboxrepo.IOutboxRepository
}

// assigner matches a committed order to a courier.
type assigner interface {
	Assign(ctx context.Context, orderRowID, vendorID int64) (*deliveryuser.DeliveryUser, error)
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.uowFactory = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// WithAssigner sets the delivery assignment collaborator.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAssigner(a assigner) option {
	return func(s *OrderService) {
		s.assigner = a
	}
}

// CreateOrder validates the referenced OPEN transaction against the calling
// customer, prices the requested lines from the catalog, and commits the
// order, the cart clear,
// the transaction finalize and the order-created outbox event as one
// database transaction. Any missing food id aborts the whole call.
//
// Delivery assignment runs after the commit: its failure is returned to the
// caller together with the created order and never rolls the order back.
func (s *OrderService) CreateOrder(
	ctx context.Context,
	customerID int64,
	lines []OrderLine,
	transactionID int64,
	paidAmountCents int64,
) (*order.Order, error) {
	ctx, span := otel.Tracer("ordersvc").Start(ctx, "create_order")
	defer span.End()

	work := s.uowFactory()

	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer work.Rollback(ctx)

	txn, err := paymentsvc.ValidateOpen(ctx, work.Transactions(), transactionID)
	if err != nil {
		return nil, err
	}
	if txn.CustomerID != customerID {
		return nil, apperr.InvalidState("transaction %d does not belong to this customer", transactionID)
	}

	items, vendorID, totalAmountCents, err := priceLines(ctx, work.Foods(), lines)
	if err != nil {
		return nil, err
	}

	created, err := work.Orders().Insert(ctx, order.Order{
		OrderID:          uuid.NewString(),
		CustomerID:       customerID,
		VendorID:         vendorID,
		TotalAmountCents: totalAmountCents,
		PaidAmountCents:  paidAmountCents,
		OrderStatus:      order.StatusWaiting,
		ReadyTime:        order.DefaultReadyTimeMinutes,
		OrderDate:        time.Now(),
	})
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = created.ID
	}
	created.Items, err = work.OrderItems().BulkInsert(ctx, items)
	if err != nil {
		return nil, err
	}

	if err := work.Carts().Clear(ctx, customerID); err != nil {
		return nil, err
	}

	if err := paymentsvc.Finalize(ctx, work.Transactions(), transactionID, created.OrderID, vendorID); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(created)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order event: %w", err)
	}
	if err := work.Outbox().Insert(ctx, outbox.NewJSON(OrderCreatedQueue, payload)); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	courier, err := s.assigner.Assign(ctx, created.ID, vendorID)
	if err != nil {
		slog.Warn("Order created but delivery assignment failed",
			"order_id", created.OrderID,
			"error", err,
		)

		return created, err
	}
	if courier != nil {
		created.DeliveryUserID = &courier.ID
	}

	return created, nil
}

// priceLines resolves every food in one batch lookup and prices each line
// at quantity times the current catalog price. Lines with a non-positive
// quantity are dropped; an empty result fails InvalidState.
func priceLines(
	ctx context.Context,
	foods ifoodrepo.IFoodRepository,
	lines []OrderLine,
) ([]orderitem.OrderItem, int64, int64, error) {
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.FoodID)
	}

	resolved, err := foods.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, 0, err
	}
	byID := make(map[int64]food.Food, len(resolved))
	for _, f := range resolved {
		byID[f.ID] = f
	}

	var (
		items    []orderitem.OrderItem
		vendorID int64
		total    int64
	)
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		f := byID[l.FoodID]
		if len(items) == 0 {
			vendorID = f.VendorID
		}
		amount := int64(l.Quantity) * f.PriceCents
		items = append(items, orderitem.OrderItem{
			FoodID:      l.FoodID,
			Quantity:    l.Quantity,
			AmountCents: amount,
		})
		total += amount
	}
	if len(items) == 0 {
		return nil, 0, 0, apperr.InvalidState("cart is empty")
	}

	return items, vendorID, total, nil
}

// GetOrders retrieves a customer's orders with their lines, oldest first.
// limit <= 0 means no limit.
func (s *OrderService) GetOrders(ctx context.Context, customerID int64, limit, offset int) ([]order.Order, error) {
	work := s.uowFactory()

	orders, err := work.Orders().Query(ctx, &order.QueryOrdersModel{
		CustomerIds: []int64{customerID},
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	return s.attachItems(ctx, work, orders)
}

// GetOrderByID retrieves one order with its lines by opaque id.
func (s *OrderService) GetOrderByID(ctx context.Context, orderID string) (*order.Order, error) {
	work := s.uowFactory()

	o, err := work.Orders().GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	orders, err := s.attachItems(ctx, work, []order.Order{*o})
	if err != nil {
		return nil, err
	}

	return &orders[0], nil
}

func (s *OrderService) attachItems(ctx context.Context, work unitOfWork, orders []order.Order) ([]order.Order, error) {
	orderIDs := make([]int64, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID
	}

	items, err := work.OrderItems().QueryByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].Items = append(orders[i].Items, item)
			}
		}
	}

	return orders, nil
}

// ProcessOrder applies a vendor-side status change through the transition
// table, overwriting remarks and, when supplied, the ready time.
func (s *OrderService) ProcessOrder(
	ctx context.Context,
	orderID string,
	requested order.Status,
	remarks string,
	readyTime *int,
) (*order.Order, error) {
	work := s.uowFactory()

	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer work.Rollback(ctx)

	o, err := work.Orders().GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	next, err := order.Transition(o.OrderStatus, requested)
	if err != nil {
		return nil, err
	}

	if err := work.Orders().UpdateProcessing(ctx, o.ID, next, remarks, readyTime); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	o.OrderStatus = next
	o.Remarks = remarks
	if readyTime != nil {
		o.ReadyTime = *readyTime
	}

	return o, nil
}
