package postgresrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/quickbite/oms/internal/dal/postgres"
	"github.com/quickbite/oms/internal/service/models/deliveryuser"
	"github.com/quickbite/oms/pkg/apperr"
)

// DeliveryUserDal represents the courier data access layer model.
type DeliveryUserDal struct {
	ID          int64     `db:"id"`
	Email       string    `db:"email"`
	Phone       string    `db:"phone"`
	Password    string    `db:"password"`
	Salt        string    `db:"salt"`
	FirstName   string    `db:"first_name"`
	LastName    string    `db:"last_name"`
	Address     string    `db:"address"`
	Pincode     string    `db:"pincode"`
	Verified    bool      `db:"verified"`
	IsAvailable bool      `db:"is_available"`
	Lat         float64   `db:"lat"`
	Lng         float64   `db:"lng"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ToModel converts DeliveryUserDal to the service layer DeliveryUser model.
func (d *DeliveryUserDal) ToModel() *deliveryuser.DeliveryUser {
	return &deliveryuser.DeliveryUser{
		ID:          d.ID,
		Email:       d.Email,
		Phone:       d.Phone,
		Password:    d.Password,
		Salt:        d.Salt,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Address:     d.Address,
		Pincode:     d.Pincode,
		Verified:    d.Verified,
		IsAvailable: d.IsAvailable,
		Lat:         d.Lat,
		Lng:         d.Lng,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

var deliveryUserColumns = []string{
	"id",
	"email",
	"phone",
	"password",
	"salt",
	"first_name",
	"last_name",
	"address",
	"pincode",
	"verified",
	"is_available",
	"lat",
	"lng",
	"created_at",
	"updated_at",
}

type DeliveryUserPostgresRepository struct {
	conn postgres.Querier
}

func NewDeliveryUserPostgresRepository(conn postgres.Querier) *DeliveryUserPostgresRepository {
	return &DeliveryUserPostgresRepository{
		conn: conn,
	}
}

func (r *DeliveryUserPostgresRepository) query(ctx context.Context, pred any) ([]deliveryuser.DeliveryUser, error) {
	query, args, err := sq.Select(deliveryUserColumns...).
		From("delivery_users").
		Where(pred).
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delivery users query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query delivery users: %w", err)
	}
	defer rows.Close()

	var result []deliveryuser.DeliveryUser
	for rows.Next() {
		var dal DeliveryUserDal
		err := rows.Scan(
			&dal.ID,
			&dal.Email,
			&dal.Phone,
			&dal.Password,
			&dal.Salt,
			&dal.FirstName,
			&dal.LastName,
			&dal.Address,
			&dal.Pincode,
			&dal.Verified,
			&dal.IsAvailable,
			&dal.Lat,
			&dal.Lng,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delivery user: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Insert stores a new courier and returns it with its id set.
func (r *DeliveryUserPostgresRepository) Insert(ctx context.Context, d deliveryuser.DeliveryUser) (*deliveryuser.DeliveryUser, error) {
	now := time.Now()
	query, args, err := sq.Insert("delivery_users").
		Columns(
			"email",
			"phone",
			"password",
			"salt",
			"first_name",
			"last_name",
			"address",
			"pincode",
			"verified",
			"is_available",
			"lat",
			"lng",
			"created_at",
			"updated_at",
		).
		Values(
			d.Email,
			d.Phone,
			d.Password,
			d.Salt,
			d.FirstName,
			d.LastName,
			d.Address,
			d.Pincode,
			d.Verified,
			d.IsAvailable,
			d.Lat,
			d.Lng,
			now,
			now,
		).
		Suffix("RETURNING " + strings.Join(deliveryUserColumns, ", ")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delivery user insert: %w", err)
	}

	var dal DeliveryUserDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.ID,
		&dal.Email,
		&dal.Phone,
		&dal.Password,
		&dal.Salt,
		&dal.FirstName,
		&dal.LastName,
		&dal.Address,
		&dal.Pincode,
		&dal.Verified,
		&dal.IsAvailable,
		&dal.Lat,
		&dal.Lng,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert delivery user: %w", err)
	}

	return dal.ToModel(), nil
}

// GetByID retrieves one courier, failing NotFound when it does not exist.
func (r *DeliveryUserPostgresRepository) GetByID(ctx context.Context, id int64) (*deliveryuser.DeliveryUser, error) {
	users, err := r.query(ctx, sq.Eq{"id": id})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperr.NotFound("delivery user %d not found", id)
	}

	return &users[0], nil
}

// GetByEmail returns nil without error when no courier matches.
func (r *DeliveryUserPostgresRepository) GetByEmail(ctx context.Context, email string) (*deliveryuser.DeliveryUser, error) {
	users, err := r.query(ctx, sq.Eq{"email": email})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}

	return &users[0], nil
}

// FindAssignable returns couriers in the service area that are verified and
// currently available.
func (r *DeliveryUserPostgresRepository) FindAssignable(ctx context.Context, pincode string) ([]deliveryuser.DeliveryUser, error) {
	return r.query(ctx, sq.Eq{
		"pincode":      pincode,
		"verified":     true,
		"is_available": true,
	})
}

// UpdateStatus persists availability and location changes.
func (r *DeliveryUserPostgresRepository) UpdateStatus(ctx context.Context, d deliveryuser.DeliveryUser) error {
	query, args, err := sq.Update("delivery_users").
		Set("is_available", d.IsAvailable).
		Set("lat", d.Lat).
		Set("lng", d.Lng).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": d.ID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delivery user update: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update delivery user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("delivery user %d not found", d.ID)
	}

	return nil
}

// SetVerified flips the admin-controlled verification flag.
func (r *DeliveryUserPostgresRepository) SetVerified(ctx context.Context, id int64, verified bool) error {
	query, args, err := sq.Update("delivery_users").
		Set("verified", verified).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delivery user verify update: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to verify delivery user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("delivery user %d not found", id)
	}

	return nil
}
