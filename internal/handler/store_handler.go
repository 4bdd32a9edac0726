package handler

import (
	"net/http"
	"time"

	"believestore/backend/internal/checkout"
	"believestore/backend/internal/models"
	"believestore/backend/internal/payment"
	"believestore/backend/internal/shipping"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// region --- DTOs ---

type AddressInput struct {
	Line1      string `json:"line1" example:"Av. Paulista, 1000"`
	City       string `json:"city" example:"São Paulo"`
	State      string `json:"state" example:"SP"`
	PostalCode string `json:"postal_code" example:"01310-100"`
}

type CheckoutInput struct {
	ProductName  string          `json:"product_name" example:"Camiseta Geek"`
	ProductPrice decimal.Decimal `json:"product_price" swaggertype:"string" example:"79.90"`
	Address      AddressInput    `json:"address"`
}

type OrderResponse struct {
	ID          uuid.UUID          `json:"id"`
	SessionID   string             `json:"session_id"`
	ProductName string             `json:"product_name"`
	Amount      decimal.Decimal    `json:"amount" swaggertype:"string" example:"94.90"`
	ShippingFee decimal.Decimal    `json:"shipping_fee" swaggertype:"string" example:"15.00"`
	PostalCode  string             `json:"postal_code"`
	Currency    string             `json:"currency" example:"brl"`
	Status      models.OrderStatus `json:"status" example:"paid"`
	CreatedAt   time.Time          `json:"created_at"`
}

func newOrderResponse(o models.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		SessionID:   o.StripeSessionID,
		ProductName: o.ProductName,
		Amount:      payment.FromCents(o.Amount),
		ShippingFee: payment.FromCents(o.ShippingFee),
		PostalCode:  o.PostalCode,
		Currency:    o.Currency,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
	}
}

// endregion

// GetProducts godoc
// @Summary      List products
// @Description  Active catalog products priced by their default price.
// @Tags         store
// @Produce      json
// @Success      200  {array}   payment.Product
// @Failure      502  {object}  ErrorResponse
// @Router       /products [get]
func (h *Handler) GetProducts(c *gin.Context) {
	products, err := h.Checkout.Products(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if products == nil {
		products = []payment.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// QuoteShipping godoc
// @Summary      Shipping quote
// @Description  Flat fee by postal code range. Unknown ranges cost 35.00.
// @Tags         store
// @Produce      json
// @Param        postal_code query string true "CEP, with or without the dash"
// @Success      200  {object}  shipping.Quote
// @Failure      400  {object}  ErrorResponse
// @Router       /shipping/quote [get]
func (h *Handler) QuoteShipping(c *gin.Context) {
	quote, err := shipping.Estimate(c.Query("postal_code"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// CreateCheckout godoc
// @Summary      Create a checkout session
// @Description  Prices shipping for the address, opens a payment session and records a pending order.
// @Tags         store
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CheckoutInput true "Product and shipping address"
// @Success      201  {object}  checkout.Result
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /checkout [post]
func (h *Handler) CreateCheckout(c *gin.Context) {
	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := identity(c)
	result, err := h.Checkout.Create(c.Request.Context(), checkout.Buyer{UserID: id.UserID, Email: id.Email}, checkout.Request{
		ProductName:  input.ProductName,
		ProductPrice: input.ProductPrice,
		Address: payment.Address{
			Line1:      input.Address.Line1,
			City:       input.Address.City,
			State:      input.Address.State,
			PostalCode: input.Address.PostalCode,
		},
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetOrder godoc
// @Summary      Get an order
// @Description  Looks up the caller's order by checkout session and marks it paid once payment is confirmed.
// @Tags         store
// @Produce      json
// @Security     BearerAuth
// @Param        session_id path string true "Checkout session ID"
// @Success      200  {object}  OrderResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /orders/{session_id} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.Checkout.Order(c.Request.Context(), c.Param("session_id"), identity(c).UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(*order))
}
