package postgresrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/quickbite/oms/internal/dal/postgres"
	"github.com/quickbite/oms/internal/service/models/food"
	"github.com/quickbite/oms/internal/service/models/vendormodel"
	"github.com/quickbite/oms/pkg/apperr"
)

// VendorDal represents the vendor data access layer model.
type VendorDal struct {
	ID               int64     `db:"id"`
	Name             string    `db:"name"`
	OwnerName        string    `db:"owner_name"`
	Email            string    `db:"email"`
	Password         string    `db:"password"`
	Salt             string    `db:"salt"`
	Address          string    `db:"address"`
	Pincode          string    `db:"pincode"`
	ServiceAvailable bool      `db:"service_available"`
	Rating           float64   `db:"rating"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// ToModel converts VendorDal to the service layer Vendor model.
func (v *VendorDal) ToModel() *vendor.Vendor {
	return &vendor.Vendor{
		ID:               v.ID,
		Name:             v.Name,
		OwnerName:        v.OwnerName,
		Email:            v.Email,
		Password:         v.Password,
		Salt:             v.Salt,
		Address:          v.Address,
		Pincode:          v.Pincode,
		ServiceAvailable: v.ServiceAvailable,
		Rating:           v.Rating,
		Foods:            []food.Food{},
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

var vendorColumns = []string{
	"id",
	"name",
	"owner_name",
	"email",
	"password",
	"salt",
	"address",
	"pincode",
	"service_available",
	"rating",
	"created_at",
	"updated_at",
}

type VendorPostgresRepository struct {
	conn postgres.Querier
}

func NewVendorPostgresRepository(conn postgres.Querier) *VendorPostgresRepository {
	return &VendorPostgresRepository{
		conn: conn,
	}
}

func (r *VendorPostgresRepository) scanVendor(row interface{ Scan(dest ...any) error }) (*vendor.Vendor, error) {
	var dal VendorDal
	err := row.Scan(
		&dal.ID,
		&dal.Name,
		&dal.OwnerName,
		&dal.Email,
		&dal.Password,
		&dal.Salt,
		&dal.Address,
		&dal.Pincode,
		&dal.ServiceAvailable,
		&dal.Rating,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel(), nil
}

func (r *VendorPostgresRepository) queryVendors(ctx context.Context, builder sq.SelectBuilder) ([]vendor.Vendor, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build vendors query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendors: %w", err)
	}
	defer rows.Close()

	var result []vendor.Vendor
	for rows.Next() {
		model, err := r.scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		result = append(result, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Insert stores a new vendor and returns it with its id set.
func (r *VendorPostgresRepository) Insert(ctx context.Context, v vendor.Vendor) (*vendor.Vendor, error) {
	now := time.Now()
	query, args, err := sq.Insert("vendors").
		Columns(
			"name",
			"owner_name",
			"email",
			"password",
			"salt",
			"address",
			"pincode",
			"service_available",
			"rating",
			"created_at",
			"updated_at",
		).
		Values(
			v.Name,
			v.OwnerName,
			v.Email,
			v.Password,
			v.Salt,
			v.Address,
			v.Pincode,
			v.ServiceAvailable,
			v.Rating,
			now,
			now,
		).
		Suffix("RETURNING " + strings.Join(vendorColumns, ", ")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build vendor insert: %w", err)
	}

	inserted, err := r.scanVendor(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert vendor: %w", err)
	}

	return inserted, nil
}

// GetByID retrieves one vendor, failing NotFound when it does not exist.
func (r *VendorPostgresRepository) GetByID(ctx context.Context, id int64) (*vendor.Vendor, error) {
	vendors, err := r.queryVendors(ctx, sq.Select(vendorColumns...).
		From("vendors").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar))
	if err != nil {
		return nil, err
	}
	if len(vendors) == 0 {
		return nil, apperr.NotFound("vendor %d not found", id)
	}

	return &vendors[0], nil
}

// GetByEmail returns nil without error when no vendor matches.
func (r *VendorPostgresRepository) GetByEmail(ctx context.Context, email string) (*vendor.Vendor, error) {
	vendors, err := r.queryVendors(ctx, sq.Select(vendorColumns...).
		From("vendors").
		Where(sq.Eq{"email": email}).
		PlaceholderFormat(sq.Dollar))
	if err != nil {
		return nil, err
	}
	if len(vendors) == 0 {
		return nil, nil
	}

	return &vendors[0], nil
}

// List returns every vendor, newest first.
func (r *VendorPostgresRepository) List(ctx context.Context) ([]vendor.Vendor, error) {
	return r.queryVendors(ctx, sq.Select(vendorColumns...).
		From("vendors").
		OrderBy("id DESC").
		PlaceholderFormat(sq.Dollar))
}

// ListByPincode returns vendors in a service area, best rated first.
func (r *VendorPostgresRepository) ListByPincode(ctx context.Context, pincode string, serviceAvailableOnly bool, limit int) ([]vendor.Vendor, error) {
	builder := sq.Select(vendorColumns...).
		From("vendors").
		Where(sq.Eq{"pincode": pincode}).
		OrderBy("rating DESC").
		PlaceholderFormat(sq.Dollar)
	if serviceAvailableOnly {
		builder = builder.Where(sq.Eq{"service_available": true})
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	return r.queryVendors(ctx, builder)
}

// SetServiceAvailable flips whether the vendor is currently taking orders.
func (r *VendorPostgresRepository) SetServiceAvailable(ctx context.Context, id int64, available bool) error {
	query, args, err := sq.Update("vendors").
		Set("service_available", available).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build vendor availability update: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update vendor availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("vendor %d not found", id)
	}

	return nil
}
