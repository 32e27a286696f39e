package itransactionrepo

import (
	"context"

	"github.com/quickbite/oms/internal/service/models/transaction"
)

// ITransactionRepository persists payment transactions.
type ITransactionRepository interface {
	// Insert stores a new transaction and returns it with its id set.
	Insert(ctx context.Context, t transaction.Transaction) (*transaction.Transaction, error)

	// GetByID fails NotFound when the transaction does not exist.
	GetByID(ctx context.Context, id int64) (*transaction.Transaction, error)

	// GetForUpdate locks the row for the surrounding transaction.
	GetForUpdate(ctx context.Context, id int64) (*transaction.Transaction, error)

	// Finalize links the order and marks SUCCESS with a conditional update
	// that only matches an OPEN row. It reports whether a row was updated:
	// at most one caller can ever receive true for a given id.
	Finalize(ctx context.Context, id int64, orderID string, vendorID int64) (bool, error)
}
