package paymentsvc

import (
	"context"

	"github.com/quickbite/oms/internal/service/models/transaction"
)

// Gateway is the external payment collaborator. The ledger only records the
// gateway's response string; settlement is not part of this service.
type Gateway interface {
	Charge(ctx context.Context, customerID, amountCents int64, mode transaction.PaymentMode) (string, error)
}

// StubGateway accepts every charge without contacting a provider.
type StubGateway struct{}

func (StubGateway) Charge(_ context.Context, _, _ int64, _ transaction.PaymentMode) (string, error) {
	return "Payment is pending at the gateway", nil
}
