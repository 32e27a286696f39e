package transaction

import (
	"database/sql/driver"
	"errors"
	"time"
)

// Status is the lifecycle state of a payment transaction.
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusConfirmed Status = "CONFIRMED"
	StatusSuccess   Status = "SUCCESS"
	StatusFailed    Status = "FAILED"
)

var ErrInvalidStatus = errors.New("invalid transaction status")

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

func ParseStatus(v string) (Status, error) {
	switch v {
	case StatusOpen.String():
		return StatusOpen, nil
	case StatusConfirmed.String():
		return StatusConfirmed, nil
	case StatusSuccess.String():
		return StatusSuccess, nil
	case StatusFailed.String():
		return StatusFailed, nil
	default:
		return "", ErrInvalidStatus
	}
}

// PaymentMode is how the customer intends to pay.
type PaymentMode string

const (
	PaymentModeCOD  PaymentMode = "COD"
	PaymentModeCard PaymentMode = "CARD"
)

var ErrInvalidPaymentMode = errors.New("invalid payment mode")

func (m PaymentMode) String() string {
	return string(m)
}

func (m PaymentMode) Value() (driver.Value, error) {
	return m.String(), nil
}

func ParsePaymentMode(v string) (PaymentMode, error) {
	switch v {
	case PaymentModeCOD.String():
		return PaymentModeCOD, nil
	case PaymentModeCard.String():
		return PaymentModeCard, nil
	default:
		return "", ErrInvalidPaymentMode
	}
}

// Transaction is a payment-intent record. It is created OPEN and may back at
// most one order: OrderID and VendorID are set exactly when the transaction
// transitions to SUCCESS.
type Transaction struct {
	ID              int64       `json:"id"`
	CustomerID      int64       `json:"customerId"`
	VendorID        *int64      `json:"vendorId,omitempty"`
	OrderID         *string     `json:"orderId,omitempty"`
	OfferID         *int64      `json:"offerId,omitempty"`
	OrderValueCents int64       `json:"orderValueCents"`
	PaymentMode     PaymentMode `json:"paymentMode"`
	PaymentResponse string      `json:"paymentResponse"`
	Status          Status      `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// Open reports whether the transaction can still back a new order.
func (t *Transaction) Open() bool {
	return t.Status == StatusOpen
}
