package postgresrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/quickbite/oms/internal/dal/postgres"
	"github.com/quickbite/oms/internal/service/models/order"
	"github.com/quickbite/oms/internal/service/models/orderitem"
	"github.com/quickbite/oms/pkg/apperr"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	ID               int64     `db:"id"`
	OrderID          string    `db:"order_id"`
	CustomerID       int64     `db:"customer_id"`
	VendorID         int64     `db:"vendor_id"`
	TotalAmountCents int64     `db:"total_amount_cents"`
	PaidAmountCents  int64     `db:"paid_amount_cents"`
	OrderStatus      string    `db:"order_status"`
	Remarks          string    `db:"remarks"`
	DeliveryUserID   *int64    `db:"delivery_user_id"`
	ReadyTime        int       `db:"ready_time"`
	OrderDate        time.Time `db:"order_date"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.OrderStatus)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:               o.ID,
		OrderID:          o.OrderID,
		CustomerID:       o.CustomerID,
		VendorID:         o.VendorID,
		TotalAmountCents: o.TotalAmountCents,
		PaidAmountCents:  o.PaidAmountCents,
		OrderStatus:      status,
		Remarks:          o.Remarks,
		DeliveryUserID:   o.DeliveryUserID,
		ReadyTime:        o.ReadyTime,
		OrderDate:        o.OrderDate,
		Items:            []orderitem.OrderItem{},
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}, nil
}

var orderColumns = []string{
	"id",
	"order_id",
	"customer_id",
	"vendor_id",
	"total_amount_cents",
	"paid_amount_cents",
	"order_status",
	"remarks",
	"delivery_user_id",
	"ready_time",
	"order_date",
	"created_at",
	"updated_at",
}

type OrderPostgresRepository struct {
	conn postgres.Querier
}

func NewOrderPostgresRepository(conn postgres.Querier) *OrderPostgresRepository {
	return &OrderPostgresRepository{
		conn: conn,
	}
}

func (r *OrderPostgresRepository) scanOrder(row interface{ Scan(dest ...any) error }) (*order.Order, error) {
	var dal OrderDal
	err := row.Scan(
		&dal.ID,
		&dal.OrderID,
		&dal.CustomerID,
		&dal.VendorID,
		&dal.TotalAmountCents,
		&dal.PaidAmountCents,
		&dal.OrderStatus,
		&dal.Remarks,
		&dal.DeliveryUserID,
		&dal.ReadyTime,
		&dal.OrderDate,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel()
}

// Insert stores a new order and returns it with its row id set.
func (r *OrderPostgresRepository) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	now := time.Now()
	query, args, err := sq.Insert("orders").
		Columns(
			"order_id",
			"customer_id",
			"vendor_id",
			"total_amount_cents",
			"paid_amount_cents",
			"order_status",
			"remarks",
			"delivery_user_id",
			"ready_time",
			"order_date",
			"created_at",
			"updated_at",
		).
		Values(
			o.OrderID,
			o.CustomerID,
			o.VendorID,
			o.TotalAmountCents,
			o.PaidAmountCents,
			o.OrderStatus.String(),
			o.Remarks,
			o.DeliveryUserID,
			o.ReadyTime,
			o.OrderDate,
			now,
			now,
		).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order insert: %w", err)
	}

	inserted, err := r.scanOrder(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}
	inserted.Items = append(inserted.Items, o.Items...)

	return inserted, nil
}

// Query retrieves orders matching the filter, oldest first so a customer's
// list reads chronologically.
func (r *OrderPostgresRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	builder := sq.Select(orderColumns...).
		From("orders").
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar)

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.OrderIds) > 0 {
		builder = builder.Where(sq.Eq{"order_id": filter.OrderIds})
	}
	if len(filter.CustomerIds) > 0 {
		builder = builder.Where(sq.Eq{"customer_id": filter.CustomerIds})
	}
	if filter.Unassigned {
		builder = builder.Where(sq.Eq{"delivery_user_id": nil})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		builder = builder.Where(sq.Eq{"order_status": statuses})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build orders query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		model, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// GetByOrderID retrieves one order by its opaque id.
func (r *OrderPostgresRepository) GetByOrderID(ctx context.Context, orderID string) (*order.Order, error) {
	orders, err := r.Query(ctx, &order.QueryOrdersModel{OrderIds: []string{orderID}})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, apperr.NotFound("order %s not found", orderID)
	}

	return &orders[0], nil
}

// UpdateProcessing overwrites status and remarks, and readyTime when given.
func (r *OrderPostgresRepository) UpdateProcessing(ctx context.Context, id int64, status order.Status, remarks string, readyTime *int) error {
	builder := sq.Update("orders").
		Set("order_status", status.String()).
		Set("remarks", remarks).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar)
	if readyTime != nil {
		builder = builder.Set("ready_time", *readyTime)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build order update: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("order %d not found", id)
	}

	return nil
}

// AssignDeliveryUser sets the courier only when none is assigned yet, so a
// retried assignment never overwrites an earlier winner.
func (r *OrderPostgresRepository) AssignDeliveryUser(ctx context.Context, id int64, deliveryUserID int64) (bool, error) {
	query, args, err := sq.Update("orders").
		Set("delivery_user_id", deliveryUserID).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id, "delivery_user_id": nil}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build assignment update: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to assign delivery user: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
