package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
)

// Order records a checkout session created with the payment provider.
// Amounts are in the smallest currency unit.
type Order struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID   `gorm:"type:uuid;not null;index"`
	StripeSessionID string      `gorm:"size:255;uniqueIndex;not null"`
	ProductName     string      `gorm:"size:512;not null"`
	Amount          int64       `gorm:"not null"`
	ShippingFee     int64       `gorm:"not null;default:0"`
	PostalCode      string      `gorm:"size:8"`
	Currency        string      `gorm:"size:3;not null;default:'brl'"`
	Status          OrderStatus `gorm:"size:20;not null;default:'pending'"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
