// Package paymenttest provides an in-memory payment.Provider for tests.
package paymenttest

import (
	"context"
	"fmt"
	"sync"

	"believestore/backend/internal/payment"
)

type Provider struct {
	mu       sync.Mutex
	Products []payment.Product
	Requests []payment.CheckoutRequest
	Paid     map[string]bool
	Err      error
}

func New(products ...payment.Product) *Provider {
	return &Provider{Products: products, Paid: make(map[string]bool)}
}

func (p *Provider) ListProducts(ctx context.Context) ([]payment.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	return append([]payment.Product(nil), p.Products...), nil
}

func (p *Provider) CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	p.Requests = append(p.Requests, req)
	id := fmt.Sprintf("cs_test_%d", len(p.Requests))
	return &payment.CheckoutSession{ID: id, URL: "https://checkout.test/" + id}, nil
}

func (p *Provider) SessionPaid(ctx context.Context, sessionID string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return false, p.Err
	}
	return p.Paid[sessionID], nil
}

// MarkPaid flags a session as paid.
func (p *Provider) MarkPaid(sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Paid[sessionID] = true
}

// SetErr makes every subsequent call fail with err.
func (p *Provider) SetErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Err = err
}

// LastRequest returns the most recent checkout request.
func (p *Provider) LastRequest() payment.CheckoutRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Requests[len(p.Requests)-1]
}
