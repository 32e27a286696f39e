package postgresrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/quickbite/oms/internal/dal/postgres"
	"github.com/quickbite/oms/internal/service/models/transaction"
	"github.com/quickbite/oms/pkg/apperr"
)

// TransactionDal represents the transaction data access layer model.
type TransactionDal struct {
	ID              int64     `db:"id"`
	CustomerID      int64     `db:"customer_id"`
	VendorID        *int64    `db:"vendor_id"`
	OrderID         *string   `db:"order_id"`
	OfferID         *int64    `db:"offer_id"`
	OrderValueCents int64     `db:"order_value_cents"`
	PaymentMode     string    `db:"payment_mode"`
	PaymentResponse string    `db:"payment_response"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// ToModel converts TransactionDal to the service layer Transaction model.
func (t *TransactionDal) ToModel() (*transaction.Transaction, error) {
	status, err := transaction.ParseStatus(t.Status)
	if err != nil {
		return nil, err
	}
	mode, err := transaction.ParsePaymentMode(t.PaymentMode)
	if err != nil {
		return nil, err
	}

	return &transaction.Transaction{
		ID:              t.ID,
		CustomerID:      t.CustomerID,
		VendorID:        t.VendorID,
		OrderID:         t.OrderID,
		OfferID:         t.OfferID,
		OrderValueCents: t.OrderValueCents,
		PaymentMode:     mode,
		PaymentResponse: t.PaymentResponse,
		Status:          status,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}, nil
}

var transactionColumns = []string{
	"id",
	"customer_id",
	"vendor_id",
	"order_id",
	"offer_id",
	"order_value_cents",
	"payment_mode",
	"payment_response",
	"status",
	"created_at",
	"updated_at",
}

type TransactionPostgresRepository struct {
	conn postgres.Querier
}

func NewTransactionPostgresRepository(conn postgres.Querier) *TransactionPostgresRepository {
	return &TransactionPostgresRepository{
		conn: conn,
	}
}

func (r *TransactionPostgresRepository) scanTransaction(row interface{ Scan(dest ...any) error }) (*transaction.Transaction, error) {
	var dal TransactionDal
	err := row.Scan(
		&dal.ID,
		&dal.CustomerID,
		&dal.VendorID,
		&dal.OrderID,
		&dal.OfferID,
		&dal.OrderValueCents,
		&dal.PaymentMode,
		&dal.PaymentResponse,
		&dal.Status,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel()
}

// Insert stores a new transaction and returns it with its id set.
func (r *TransactionPostgresRepository) Insert(ctx context.Context, t transaction.Transaction) (*transaction.Transaction, error) {
	now := time.Now()
	query, args, err := sq.Insert("transactions").
		Columns(
			"customer_id",
			"vendor_id",
			"order_id",
			"offer_id",
			"order_value_cents",
			"payment_mode",
			"payment_response",
			"status",
			"created_at",
			"updated_at",
		).
		Values(
			t.CustomerID,
			t.VendorID,
			t.OrderID,
			t.OfferID,
			t.OrderValueCents,
			t.PaymentMode.String(),
			t.PaymentResponse,
			t.Status.String(),
			now,
			now,
		).
		Suffix("RETURNING " + strings.Join(transactionColumns, ", ")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction insert: %w", err)
	}

	inserted, err := r.scanTransaction(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	return inserted, nil
}

func (r *TransactionPostgresRepository) getByID(ctx context.Context, id int64, forUpdate bool) (*transaction.Transaction, error) {
	builder := sq.Select(transactionColumns...).
		From("transactions").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar)
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("rows iteration error: %w", err)
		}

		return nil, apperr.NotFound("transaction %d not found", id)
	}

	model, err := r.scanTransaction(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	return model, nil
}

// GetByID retrieves one transaction.
func (r *TransactionPostgresRepository) GetByID(ctx context.Context, id int64) (*transaction.Transaction, error) {
	return r.getByID(ctx, id, false)
}

// GetForUpdate locks the transaction row for the surrounding database
// transaction.
func (r *TransactionPostgresRepository) GetForUpdate(ctx context.Context, id int64) (*transaction.Transaction, error) {
	return r.getByID(ctx, id, true)
}

// Finalize links the order and marks SUCCESS. The WHERE clause only matches
// an OPEN row, so among any number of concurrent callers exactly one
// observes a row update.
func (r *TransactionPostgresRepository) Finalize(ctx context.Context, id int64, orderID string, vendorID int64) (bool, error) {
	query, args, err := sq.Update("transactions").
		Set("order_id", orderID).
		Set("vendor_id", vendorID).
		Set("status", transaction.StatusSuccess.String()).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id, "status": transaction.StatusOpen.String()}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build transaction finalize: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to finalize transaction: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
