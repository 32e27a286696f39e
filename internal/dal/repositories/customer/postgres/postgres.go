package postgresrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/quickbite/oms/internal/dal/postgres"
	"github.com/quickbite/oms/internal/service/models/customer"
	"github.com/quickbite/oms/pkg/apperr"
)

// CustomerDal represents the customer data access layer model.
type CustomerDal struct {
	ID        int64      `db:"id"`
	Email     string     `db:"email"`
	Phone     string     `db:"phone"`
	Password  string     `db:"password"`
	Salt      string     `db:"salt"`
	FirstName string     `db:"first_name"`
	LastName  string     `db:"last_name"`
	Address   string     `db:"address"`
	Verified  bool       `db:"verified"`
	OTP       *int       `db:"otp"`
	OTPExpiry *time.Time `db:"otp_expiry"`
	Lat       float64    `db:"lat"`
	Lng       float64    `db:"lng"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

// ToModel converts CustomerDal to the service layer Customer model.
func (c *CustomerDal) ToModel() *customer.Customer {
	return &customer.Customer{
		ID:        c.ID,
		Email:     c.Email,
		Phone:     c.Phone,
		Password:  c.Password,
		Salt:      c.Salt,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Address:   c.Address,
		Verified:  c.Verified,
		OTP:       c.OTP,
		OTPExpiry: c.OTPExpiry,
		Lat:       c.Lat,
		Lng:       c.Lng,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

var customerColumns = []string{
	"id",
	"email",
	"phone",
	"password",
	"salt",
	"first_name",
	"last_name",
	"address",
	"verified",
	"otp",
	"otp_expiry",
	"lat",
	"lng",
	"created_at",
	"updated_at",
}

type CustomerPostgresRepository struct {
	conn postgres.Querier
}

func NewCustomerPostgresRepository(conn postgres.Querier) *CustomerPostgresRepository {
	return &CustomerPostgresRepository{
		conn: conn,
	}
}

func (r *CustomerPostgresRepository) scanCustomer(row interface{ Scan(dest ...any) error }) (*customer.Customer, error) {
	var dal CustomerDal
	err := row.Scan(
		&dal.ID,
		&dal.Email,
		&dal.Phone,
		&dal.Password,
		&dal.Salt,
		&dal.FirstName,
		&dal.LastName,
		&dal.Address,
		&dal.Verified,
		&dal.OTP,
		&dal.OTPExpiry,
		&dal.Lat,
		&dal.Lng,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel(), nil
}

// Insert stores a new customer and returns it with its id set.
func (r *CustomerPostgresRepository) Insert(ctx context.Context, c customer.Customer) (*customer.Customer, error) {
	now := time.Now()
	query, args, err := sq.Insert("customers").
		Columns(
			"email",
			"phone",
			"password",
			"salt",
			"first_name",
			"last_name",
			"address",
			"verified",
			"otp",
			"otp_expiry",
			"lat",
			"lng",
			"created_at",
			"updated_at",
		).
		Values(
			c.Email,
			c.Phone,
			c.Password,
			c.Salt,
			c.FirstName,
			c.LastName,
			c.Address,
			c.Verified,
			c.OTP,
			c.OTPExpiry,
			c.Lat,
			c.Lng,
			now,
			now,
		).
		Suffix("RETURNING " + strings.Join(customerColumns, ", ")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build customer insert: %w", err)
	}

	inserted, err := r.scanCustomer(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert customer: %w", err)
	}

	return inserted, nil
}

// GetByID retrieves one customer, failing NotFound when it does not exist.
func (r *CustomerPostgresRepository) GetByID(ctx context.Context, id int64) (*customer.Customer, error) {
	customers, err := r.query(ctx, sq.Eq{"id": id})
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, apperr.NotFound("customer %d not found", id)
	}

	return &customers[0], nil
}

// GetByEmailOrPhone returns nil without error when no account matches.
func (r *CustomerPostgresRepository) GetByEmailOrPhone(ctx context.Context, email, phone string) (*customer.Customer, error) {
	customers, err := r.query(ctx, sq.Or{sq.Eq{"email": email}, sq.Eq{"phone": phone}})
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, nil
	}

	return &customers[0], nil
}

func (r *CustomerPostgresRepository) query(ctx context.Context, pred any) ([]customer.Customer, error) {
	query, args, err := sq.Select(customerColumns...).
		From("customers").
		Where(pred).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build customers query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var result []customer.Customer
	for rows.Next() {
		model, err := r.scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		result = append(result, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Update persists profile, OTP and verification changes.
func (r *CustomerPostgresRepository) Update(ctx context.Context, c customer.Customer) error {
	query, args, err := sq.Update("customers").
		Set("first_name", c.FirstName).
		Set("last_name", c.LastName).
		Set("address", c.Address).
		Set("verified", c.Verified).
		Set("otp", c.OTP).
		Set("otp_expiry", c.OTPExpiry).
		Set("lat", c.Lat).
		Set("lng", c.Lng).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": c.ID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build customer update: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("customer %d not found", c.ID)
	}

	return nil
}
