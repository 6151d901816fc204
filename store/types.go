// Package store holds persistence records as they are read from the database.
package store

import (
	"time"

	"github.com/google/uuid"
)

// Audit is embedded by every record.
type Audit struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Customer represents the user placing orders.
type Customer struct {
	Audit

	ID           uuid.UUID `json:"id"`
	First        string    `json:"first_name"`
	Last         string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone"`
	Tier         int32     `json:"tier"`
	Active       bool      `json:"is_active"`
	PasswordHash string    `json:"-"          map:"-"`
}

// Order represents a transaction made by a customer.
type Order struct {
	Audit

	ID         uuid.UUID `json:"id"`
	Number     int64     `json:"number"`
	CustomerID uuid.UUID `json:"customer_id"`
	Status     Status    `json:"status"`
	TotalCents int64     `json:"total_cents"`
	Notes      *string   `json:"notes,omitempty"`
	PlacedAt   time.Time `json:"placed_at"`
	Items      []Item    `json:"items"`
}

// Item is a product line within an order. It snapshots the price at the time of purchase.
type Item struct {
	SKU            string `json:"sku"`
	Quantity       int32  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// Status is the persisted order state.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusShipped   Status = "SHIPPED"
	StatusCancelled Status = "CANCELLED"
)
