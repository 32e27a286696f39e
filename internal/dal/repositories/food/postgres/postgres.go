package postgresrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/quickbite/oms/internal/dal/postgres"
	"github.com/quickbite/oms/internal/service/models/food"
	"github.com/quickbite/oms/pkg/apperr"
)

// FoodDal represents the food data access layer model.
type FoodDal struct {
	ID          int64     `db:"id"`
	VendorID    int64     `db:"vendor_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	FoodType    string    `db:"food_type"`
	PriceCents  int64     `db:"price_cents"`
	ReadyTime   int       `db:"ready_time"`
	Rating      float64   `db:"rating"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ToModel converts FoodDal to the service layer Food model.
func (f *FoodDal) ToModel() *food.Food {
	return &food.Food{
		ID:          f.ID,
		VendorID:    f.VendorID,
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		FoodType:    f.FoodType,
		PriceCents:  f.PriceCents,
		ReadyTime:   f.ReadyTime,
		Rating:      f.Rating,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

var foodColumns = []string{
	"id",
	"vendor_id",
	"name",
	"description",
	"category",
	"food_type",
	"price_cents",
	"ready_time",
	"rating",
	"created_at",
	"updated_at",
}

type FoodPostgresRepository struct {
	conn postgres.Querier
}

func NewFoodPostgresRepository(conn postgres.Querier) *FoodPostgresRepository {
	return &FoodPostgresRepository{
		conn: conn,
	}
}

func (r *FoodPostgresRepository) queryFoods(ctx context.Context, pred any) ([]food.Food, error) {
	query, args, err := sq.Select(foodColumns...).
		From("foods").
		Where(pred).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build foods query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	defer rows.Close()

	var result []food.Food
	for rows.Next() {
		var dal FoodDal
		err := rows.Scan(
			&dal.ID,
			&dal.VendorID,
			&dal.Name,
			&dal.Description,
			&dal.Category,
			&dal.FoodType,
			&dal.PriceCents,
			&dal.ReadyTime,
			&dal.Rating,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Insert stores a new food and returns it with its id set.
func (r *FoodPostgresRepository) Insert(ctx context.Context, f food.Food) (*food.Food, error) {
	now := time.Now()
	query, args, err := sq.Insert("foods").
		Columns(
			"vendor_id",
			"name",
			"description",
			"category",
			"food_type",
			"price_cents",
			"ready_time",
			"rating",
			"created_at",
			"updated_at",
		).
		Values(
			f.VendorID,
			f.Name,
			f.Description,
			f.Category,
			f.FoodType,
			f.PriceCents,
			f.ReadyTime,
			f.Rating,
			now,
			now,
		).
		Suffix("RETURNING " + strings.Join(foodColumns, ", ")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build food insert: %w", err)
	}

	var dal FoodDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.ID,
		&dal.VendorID,
		&dal.Name,
		&dal.Description,
		&dal.Category,
		&dal.FoodType,
		&dal.PriceCents,
		&dal.ReadyTime,
		&dal.Rating,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert food: %w", err)
	}

	return dal.ToModel(), nil
}

// GetByID retrieves one food, failing NotFound when it does not exist.
func (r *FoodPostgresRepository) GetByID(ctx context.Context, id int64) (*food.Food, error) {
	foods, err := r.queryFoods(ctx, sq.Eq{"id": id})
	if err != nil {
		return nil, err
	}
	if len(foods) == 0 {
		return nil, apperr.NotFound("food %d not found", id)
	}

	return &foods[0], nil
}

// GetByIDs resolves all ids in one lookup. Any missing id fails the whole
// call NotFound so callers never price a partial set.
func (r *FoodPostgresRepository) GetByIDs(ctx context.Context, ids []int64) ([]food.Food, error) {
	if len(ids) == 0 {
		return []food.Food{}, nil
	}

	foods, err := r.queryFoods(ctx, sq.Eq{"id": ids})
	if err != nil {
		return nil, err
	}

	found := make(map[int64]bool, len(foods))
	for _, f := range foods {
		found[f.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, apperr.NotFound("food %d not found", id)
		}
	}

	return foods, nil
}

// ListByVendorIDs returns the foods of the given vendors.
func (r *FoodPostgresRepository) ListByVendorIDs(ctx context.Context, vendorIDs []int64) ([]food.Food, error) {
	if len(vendorIDs) == 0 {
		return []food.Food{}, nil
	}

	return r.queryFoods(ctx, sq.Eq{"vendor_id": vendorIDs})
}
