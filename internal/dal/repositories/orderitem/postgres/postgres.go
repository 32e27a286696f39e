package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/quickbite/oms/internal/dal/postgres"
	"github.com/quickbite/oms/internal/service/models/orderitem"
)

// OrderItemDal represents the order line data access layer model.
type OrderItemDal struct {
	ID          int64     `db:"id"`
	OrderID     int64     `db:"order_id"`
	FoodID      int64     `db:"food_id"`
	Quantity    int       `db:"quantity"`
	AmountCents int64     `db:"amount_cents"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ToModel converts OrderItemDal to the service layer OrderItem model.
func (o *OrderItemDal) ToModel() *orderitem.OrderItem {
	return &orderitem.OrderItem{
		ID:          o.ID,
		OrderID:     o.OrderID,
		FoodID:      o.FoodID,
		Quantity:    o.Quantity,
		AmountCents: o.AmountCents,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

type OrderItemPostgresRepository struct {
	conn postgres.Querier
}

func NewOrderItemPostgresRepository(conn postgres.Querier) *OrderItemPostgresRepository {
	return &OrderItemPostgresRepository{
		conn: conn,
	}
}

// BulkInsert inserts all lines of an order in one statement and returns
// them with ids set.
func (r *OrderItemPostgresRepository) BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	if len(items) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	now := time.Now()
	builder := sq.Insert("order_items").
		Columns("order_id", "food_id", "quantity", "amount_cents", "created_at", "updated_at").
		Suffix("RETURNING id, order_id, food_id, quantity, amount_cents, created_at, updated_at").
		PlaceholderFormat(sq.Dollar)
	for _, item := range items {
		builder = builder.Values(item.OrderID, item.FoodID, item.Quantity, item.AmountCents, now, now)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order items insert: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.ID,
			&dal.OrderID,
			&dal.FoodID,
			&dal.Quantity,
			&dal.AmountCents,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// QueryByOrderIDs returns the lines of the given orders.
func (r *OrderItemPostgresRepository) QueryByOrderIDs(ctx context.Context, orderIDs []int64) ([]orderitem.OrderItem, error) {
	if len(orderIDs) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	query, args, err := sq.Select("id", "order_id", "food_id", "quantity", "amount_cents", "created_at", "updated_at").
		From("order_items").
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order items query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.ID,
			&dal.OrderID,
			&dal.FoodID,
			&dal.Quantity,
			&dal.AmountCents,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
