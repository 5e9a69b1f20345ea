// Package payments wraps the hosted-checkout payment provider behind a
// small interface so controllers and tests never touch the SDK directly.
package payments

import (
	"context"
	"math"
)

// CheckoutParams describes a single-line-item hosted checkout session.
type CheckoutParams struct {
	ProductName   string
	UnitAmount    int64 // minor units
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// Session is the provider-neutral view of a checkout session.
type Session struct {
	ID            string
	URL           string
	TransactionID string // the payment-intent id, used as the idempotency key
	PaymentStatus string // "paid" once the customer has completed payment
	AmountTotal   int64  // minor units
	Currency      string
	CustomerEmail string
	Metadata      map[string]string
}

// Paid reports whether the session's payment completed.
func (s *Session) Paid() bool {
	return s.PaymentStatus == "paid"
}

// Gateway creates hosted checkout sessions and retrieves finalized ones.
type Gateway interface {
	CreateSession(ctx context.Context, params CheckoutParams) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
}

// ToMinorUnits converts a major-unit amount to minor units (cents),
// rounding to the nearest cent.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// ToMajorUnits converts a minor-unit gateway total back to major units.
func ToMajorUnits(total int64) float64 {
	return float64(total) / 100
}
