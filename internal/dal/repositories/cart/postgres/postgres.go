package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/quickbite/oms/internal/dal/postgres"
	"github.com/quickbite/oms/internal/service/models/cartitem"
)

// CartItemDal represents the cart line data access layer model.
type CartItemDal struct {
	CustomerID  int64     `db:"customer_id"`
	FoodID      int64     `db:"food_id"`
	Quantity    int       `db:"quantity"`
	AmountCents int64     `db:"amount_cents"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ToModel converts CartItemDal to the service layer CartItem model.
func (c *CartItemDal) ToModel() *cartitem.CartItem {
	return &cartitem.CartItem{
		CustomerID:  c.CustomerID,
		FoodID:      c.FoodID,
		Quantity:    c.Quantity,
		AmountCents: c.AmountCents,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type CartPostgresRepository struct {
	conn postgres.Querier
}

func NewCartPostgresRepository(conn postgres.Querier) *CartPostgresRepository {
	return &CartPostgresRepository{
		conn: conn,
	}
}

func (r *CartPostgresRepository) items(ctx context.Context, customerID int64, forUpdate bool) ([]cartitem.CartItem, error) {
	builder := sq.Select(
		"customer_id",
		"food_id",
		"quantity",
		"amount_cents",
		"created_at",
		"updated_at",
	).
		From("cart_items").
		Where(sq.Eq{"customer_id": customerID}).
		OrderBy("food_id").
		PlaceholderFormat(sq.Dollar)
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build cart query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	result := []cartitem.CartItem{}
	for rows.Next() {
		var dal CartItemDal
		err := rows.Scan(
			&dal.CustomerID,
			&dal.FoodID,
			&dal.Quantity,
			&dal.AmountCents,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Items returns the current cart lines; an empty cart is an empty slice.
func (r *CartPostgresRepository) Items(ctx context.Context, customerID int64) ([]cartitem.CartItem, error) {
	return r.items(ctx, customerID, false)
}

// ItemsForUpdate locks the customer's cart rows for the surrounding
// transaction, serializing concurrent cart mutations per customer.
func (r *CartPostgresRepository) ItemsForUpdate(ctx context.Context, customerID int64) ([]cartitem.CartItem, error) {
	return r.items(ctx, customerID, true)
}

// Upsert inserts or replaces the line for (customer, food).
func (r *CartPostgresRepository) Upsert(ctx context.Context, item cartitem.CartItem) error {
	now := time.Now()
	query, args, err := sq.Insert("cart_items").
		Columns("customer_id", "food_id", "quantity", "amount_cents", "created_at", "updated_at").
		Values(item.CustomerID, item.FoodID, item.Quantity, item.AmountCents, now, now).
		Suffix(`ON CONFLICT (customer_id, food_id) DO UPDATE
			SET quantity = EXCLUDED.quantity,
			    amount_cents = EXCLUDED.amount_cents,
			    updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build cart upsert: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return nil
}

// DeleteItem removes a single line; deleting an absent line is a no-op.
func (r *CartPostgresRepository) DeleteItem(ctx context.Context, customerID, foodID int64) error {
	query, args, err := sq.Delete("cart_items").
		Where(sq.Eq{"customer_id": customerID, "food_id": foodID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build cart delete: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	return nil
}

// Clear removes every line of the customer's cart.
func (r *CartPostgresRepository) Clear(ctx context.Context, customerID int64) error {
	query, args, err := sq.Delete("cart_items").
		Where(sq.Eq{"customer_id": customerID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build cart clear: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
