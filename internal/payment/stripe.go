package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const (
	productPlaceholderImage = "/placeholder.svg"
	listLimit               = 100
)

type StripeProvider struct {
	api    *client.API
	logger *slog.Logger
}

func NewStripeProvider(secretKey string, logger *slog.Logger) *StripeProvider {
	return &StripeProvider{api: client.New(secretKey, nil), logger: logger}
}

// ListProducts returns active products priced by their default price, or by
// any active price of the product when no default is set.
func (p *StripeProvider) ListProducts(ctx context.Context) ([]Product, error) {
	productParams := &stripe.ProductListParams{Active: stripe.Bool(true)}
	productParams.Context = ctx
	productParams.Limit = stripe.Int64(listLimit)
	productParams.AddExpand("data.default_price")

	var products []*stripe.Product
	it := p.api.Products.List(productParams)
	for it.Next() {
		products = append(products, it.Product())
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("%w: list products: %v", ErrProvider, err)
	}

	priceParams := &stripe.PriceListParams{Active: stripe.Bool(true)}
	priceParams.Context = ctx
	priceParams.Limit = stripe.Int64(listLimit)

	var prices []*stripe.Price
	pit := p.api.Prices.List(priceParams)
	for pit.Next() {
		prices = append(prices, pit.Price())
	}
	if err := pit.Err(); err != nil {
		return nil, fmt.Errorf("%w: list prices: %v", ErrProvider, err)
	}

	p.logger.Debug("loaded catalog", "products", len(products), "prices", len(prices))

	items := make([]Product, 0, len(products))
	for _, prod := range products {
		items = append(items, toProduct(prod, resolvePrice(prod, prices)))
	}
	return items, nil
}

func resolvePrice(prod *stripe.Product, prices []*stripe.Price) *stripe.Price {
	if prod.DefaultPrice != nil {
		if prod.DefaultPrice.UnitAmount != 0 || prod.DefaultPrice.Currency != "" {
			return prod.DefaultPrice
		}
		for _, pr := range prices {
			if pr.ID == prod.DefaultPrice.ID {
				return pr
			}
		}
	}
	for _, pr := range prices {
		if pr.Product != nil && pr.Product.ID == prod.ID {
			return pr
		}
	}
	return nil
}

func toProduct(prod *stripe.Product, price *stripe.Price) Product {
	item := Product{
		ID:          prod.ID,
		Name:        prod.Name,
		Description: prod.Description,
		Image:       productPlaceholderImage,
		Currency:    Currency,
	}
	if len(prod.Images) > 0 {
		item.Image = prod.Images[0]
	}
	if price != nil {
		item.Price = FromCents(price.UnitAmount)
		item.PriceID = price.ID
		if price.Currency != "" {
			item.Currency = string(price.Currency)
		}
	}
	return item
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	customerID, err := p.findCustomer(ctx, req.CustomerEmail)
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice([]string{"BR"}),
		},
		ShippingOptions: []*stripe.CheckoutSessionShippingOptionParams{
			{
				ShippingRateData: &stripe.CheckoutSessionShippingOptionShippingRateDataParams{
					DisplayName: stripe.String(fmt.Sprintf("Envio para %s/%s", req.Address.City, req.Address.State)),
					Type:        stripe.String("fixed_amount"),
					FixedAmount: &stripe.CheckoutSessionShippingOptionShippingRateDataFixedAmountParams{
						Amount:   stripe.Int64(req.ShippingFee),
						Currency: stripe.String(Currency),
					},
					DeliveryEstimate: &stripe.CheckoutSessionShippingOptionShippingRateDataDeliveryEstimateParams{
						Minimum: &stripe.CheckoutSessionShippingOptionShippingRateDataDeliveryEstimateMinimumParams{
							Unit:  stripe.String("business_day"),
							Value: stripe.Int64(3),
						},
						Maximum: &stripe.CheckoutSessionShippingOptionShippingRateDataDeliveryEstimateMaximumParams{
							Unit:  stripe.String("business_day"),
							Value: stripe.Int64(7),
						},
					},
				},
			},
		},
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
					UnitAmount: stripe.Int64(req.ProductAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if customerID != "" {
		params.Customer = stripe.String(customerID)
	} else {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	params.Context = ctx
	params.AddMetadata("shipping_city", req.Address.City)
	params.AddMetadata("shipping_state", req.Address.State)
	params.AddMetadata("shipping_cep", req.Address.PostalCode)
	params.AddMetadata("shipping_address_line", req.Address.Line1)

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: create checkout session: %v", ErrProvider, err)
	}
	p.logger.Info("checkout session created", "session_id", sess.ID, "existing_customer", customerID != "")
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (p *StripeProvider) findCustomer(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", nil
	}
	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	it := p.api.Customers.List(params)
	if it.Next() {
		return it.Customer().ID, nil
	}
	if err := it.Err(); err != nil {
		return "", fmt.Errorf("%w: find customer: %v", ErrProvider, err)
	}
	return "", nil
}

func (p *StripeProvider) SessionPaid(ctx context.Context, sessionID string) (bool, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := p.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return false, fmt.Errorf("%w: get checkout session: %v", ErrProvider, err)
	}
	return sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid, nil
}
