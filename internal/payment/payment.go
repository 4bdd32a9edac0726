// Package payment talks to the hosted payments provider: catalog listing,
// checkout session creation and payment status lookups.
package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrProvider = errors.New("payment provider error")

// Currency used for every price and checkout.
const Currency = "brl"

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	PriceID     string          `json:"price_id"`
}

type Address struct {
	Line1      string `json:"line1"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// CheckoutRequest describes a one-item purchase. Amounts are in cents.
type CheckoutRequest struct {
	CustomerEmail string
	ProductName   string
	ProductAmount int64
	ShippingFee   int64
	Address       Address
	SuccessURL    string
	CancelURL     string
}

type CheckoutSession struct {
	ID  string `json:"session_id"`
	URL string `json:"url"`
}

type Provider interface {
	ListProducts(ctx context.Context) ([]Product, error)
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	SessionPaid(ctx context.Context, sessionID string) (bool, error)
}

// FromCents converts an amount in the smallest currency unit to units.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Shift(-2)
}

// ToCents rounds a unit amount to the nearest cent.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
