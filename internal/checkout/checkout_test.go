package checkout

import (
	"context"
	"errors"
	"testing"

	"believestore/backend/internal/models"
	"believestore/backend/internal/payment"
	"believestore/backend/internal/payment/paymenttest"
	"believestore/backend/internal/queue"
	"believestore/backend/internal/shipping"
	"believestore/backend/internal/testutil"

	"github.com/bmizerany/assert"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newTestService(t *testing.T) (*Service, *paymenttest.Provider, *queue.Recorder) {
	t.Helper()
	provider := paymenttest.New()
	events := &queue.Recorder{}
	svc := NewService(testutil.SetupTestDB(t), provider, events, "https://store.test/", testutil.Logger())
	return svc, provider, events
}

func validRequest() Request {
	return Request{
		ProductName:  "Camiseta Geek",
		ProductPrice: decimal.RequireFromString("79.90"),
		Address: payment.Address{
			Line1:      "Av. Paulista, 1000",
			City:       "São Paulo",
			State:      "SP",
			PostalCode: "01310-100",
		},
	}
}

func TestCreateCheckout(t *testing.T) {
	svc, provider, events := newTestService(t)
	ctx := context.Background()
	buyer := Buyer{UserID: uuid.New(), Email: "nami@example.com"}

	res, err := svc.Create(ctx, buyer, validRequest())
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "cs_test_1", res.SessionID)
	assert.Equal(t, "15", res.ShippingFee.String())
	assert.Equal(t, "94.9", res.Total.String())

	req := provider.LastRequest()
	assert.Equal(t, int64(7990), req.ProductAmount)
	assert.Equal(t, int64(1500), req.ShippingFee)
	assert.Equal(t, "01310100", req.Address.PostalCode)
	assert.Equal(t, "nami@example.com", req.CustomerEmail)
	assert.Equal(t, "Camiseta Geek (inclui frete: R$ 15.00)", req.ProductName)
	assert.Equal(t, "https://store.test/payment-success?session_id={CHECKOUT_SESSION_ID}", req.SuccessURL)

	order, err := svc.Order(ctx, res.SessionID, buyer.UserID)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, int64(9490), order.Amount)
	assert.Equal(t, int64(1500), order.ShippingFee)
	assert.Equal(t, "brl", order.Currency)
	assert.Equal(t, 1, len(events.Messages(queue.OrderCreated)))
}

func TestCreateCheckoutValidation(t *testing.T) {
	svc, provider, _ := newTestService(t)
	buyer := Buyer{UserID: uuid.New(), Email: "nami@example.com"}

	tests := []struct {
		name   string
		mutate func(*Request)
		want   error
	}{
		{"missing product", func(r *Request) { r.ProductName = "  " }, ErrInvalidProduct},
		{"zero price", func(r *Request) { r.ProductPrice = decimal.Zero }, ErrInvalidPrice},
		{"negative price", func(r *Request) { r.ProductPrice = decimal.NewFromInt(-1) }, ErrInvalidPrice},
		{"missing city", func(r *Request) { r.Address.City = "" }, ErrIncompleteAddress},
		{"missing state", func(r *Request) { r.Address.State = "" }, ErrIncompleteAddress},
		{"missing line", func(r *Request) { r.Address.Line1 = "" }, ErrIncompleteAddress},
		{"short postal code", func(r *Request) { r.Address.PostalCode = "0131" }, shipping.ErrInvalidPostalCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := svc.Create(context.Background(), buyer, req)
			assert.Equal(t, tt.want, err)
		})
	}
	assert.Equal(t, 0, len(provider.Requests))
}

func TestCreateCheckoutProviderFailure(t *testing.T) {
	svc, provider, events := newTestService(t)
	provider.SetErr(payment.ErrProvider)

	_, err := svc.Create(context.Background(), Buyer{UserID: uuid.New()}, validRequest())
	assert.T(t, errors.Is(err, payment.ErrProvider))
	assert.Equal(t, 0, len(events.Messages(queue.OrderCreated)))
}

func TestOrderMarkedPaidOnce(t *testing.T) {
	svc, provider, events := newTestService(t)
	ctx := context.Background()
	buyer := Buyer{UserID: uuid.New(), Email: "nami@example.com"}

	res, err := svc.Create(ctx, buyer, validRequest())
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.Order(ctx, res.SessionID, uuid.New())
	assert.Equal(t, ErrOrderNotFound, err)

	provider.MarkPaid(res.SessionID)
	for i := 0; i < 2; i++ {
		order, err := svc.Order(ctx, res.SessionID, buyer.UserID)
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, models.OrderStatusPaid, order.Status)
	}
	assert.Equal(t, 1, len(events.Messages(queue.OrderPaid)))
}
