// Package checkout turns a cart of one product into a payment session and a
// pending order, and confirms the order once the provider reports payment.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"believestore/backend/internal/models"
	"believestore/backend/internal/payment"
	"believestore/backend/internal/queue"
	"believestore/backend/internal/shipping"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidProduct    = errors.New("product name is required")
	ErrInvalidPrice      = errors.New("product price must be positive")
	ErrIncompleteAddress = errors.New("shipping address is incomplete")
	ErrOrderNotFound     = errors.New("order not found")
)

type Buyer struct {
	UserID uuid.UUID
	Email  string
}

type Request struct {
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Address      payment.Address `json:"address"`
}

type Result struct {
	SessionID   string          `json:"session_id"`
	URL         string          `json:"url"`
	OrderID     uuid.UUID       `json:"order_id"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	Total       decimal.Decimal `json:"total"`
}

type Service struct {
	db       *gorm.DB
	provider payment.Provider
	events   queue.Publisher
	siteURL  string
	logger   *slog.Logger
}

func NewService(db *gorm.DB, provider payment.Provider, events queue.Publisher, siteURL string, logger *slog.Logger) *Service {
	return &Service{
		db:       db,
		provider: provider,
		events:   events,
		siteURL:  strings.TrimRight(siteURL, "/"),
		logger:   logger,
	}
}

func (r Request) validate() error {
	if strings.TrimSpace(r.ProductName) == "" {
		return ErrInvalidProduct
	}
	if !r.ProductPrice.IsPositive() {
		return ErrInvalidPrice
	}
	a := r.Address
	if strings.TrimSpace(a.City) == "" || strings.TrimSpace(a.State) == "" || strings.TrimSpace(a.Line1) == "" {
		return ErrIncompleteAddress
	}
	return nil
}

// Create prices shipping for the address, opens a checkout session and
// records a pending order for the buyer.
func (s *Service) Create(ctx context.Context, buyer Buyer, req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	quote, err := shipping.Estimate(req.Address.PostalCode)
	if err != nil {
		return nil, err
	}
	req.Address.PostalCode = quote.PostalCode

	productCents := payment.ToCents(req.ProductPrice)
	shippingCents := payment.ToCents(quote.Fee)
	productName := fmt.Sprintf("%s (inclui frete: R$ %s)", strings.TrimSpace(req.ProductName), quote.Fee.StringFixed(2))

	session, err := s.provider.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		CustomerEmail: buyer.Email,
		ProductName:   productName,
		ProductAmount: productCents,
		ShippingFee:   shippingCents,
		Address:       req.Address,
		SuccessURL:    s.siteURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.siteURL + "/",
	})
	if err != nil {
		return nil, err
	}

	order := models.Order{
		UserID:          buyer.UserID,
		StripeSessionID: session.ID,
		ProductName:     productName,
		Amount:          productCents + shippingCents,
		ShippingFee:     shippingCents,
		PostalCode:      quote.PostalCode,
		Currency:        payment.Currency,
		Status:          models.OrderStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	s.logger.Info("order created", "order_id", order.ID, "session_id", session.ID, "amount", order.Amount)
	s.publish(ctx, queue.OrderCreated, &order)

	return &Result{
		SessionID:   session.ID,
		URL:         session.URL,
		OrderID:     order.ID,
		ShippingFee: quote.Fee,
		Total:       payment.FromCents(order.Amount),
	}, nil
}

// Order returns the buyer's order for a checkout session. A pending order is
// marked paid when the provider reports the session as paid.
func (s *Service) Order(ctx context.Context, sessionID string, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Where("stripe_session_id = ? AND user_id = ?", sessionID, userID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order.Status == models.OrderStatusPaid {
		return &order, nil
	}

	paid, err := s.provider.SessionPaid(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !paid {
		return &order, nil
	}

	result := s.db.WithContext(ctx).Model(&order).
		Where("status = ?", models.OrderStatusPending).
		Update("status", models.OrderStatusPaid)
	if result.Error != nil {
		return nil, fmt.Errorf("mark order paid: %w", result.Error)
	}
	order.Status = models.OrderStatusPaid
	if result.RowsAffected > 0 {
		s.logger.Info("order paid", "order_id", order.ID)
		s.publish(ctx, queue.OrderPaid, &order)
	}
	return &order, nil
}

// Products lists the catalog.
func (s *Service) Products(ctx context.Context) ([]payment.Product, error) {
	return s.provider.ListProducts(ctx)
}

func (s *Service) publish(ctx context.Context, key string, order *models.Order) {
	if err := s.events.Publish(ctx, key, order); err != nil {
		s.logger.Error("failed to publish order event", "order_id", order.ID, "routing_key", key, "error", err)
	}
}
