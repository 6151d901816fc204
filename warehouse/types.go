// Package warehouse holds the read models served to the fulfilment frontend.
package warehouse

import (
	"time"
)

// Meta is embedded by reference, so it stays nil until one of its fields is mapped.
type Meta struct {
	CreatedAt time.Time `json:"created_at"`
}

// Customer is the customer card shown next to an order.
type Customer struct {
	*Meta

	ID       int    `json:"id"`
	First    string `json:"first_name"`
	Last     string `json:"last_name"`
	FullName string `json:"full_name"`
	Email    string `json:"email"     map:"readonly"` // owned by the identity service
	Phone    string `json:"phone"`
	Tier     int64  `json:"tier"`
	Active   bool   `json:"active"`
}

// Order is the order summary of the picking list.
type Order struct {
	Number     int64       `json:"number"`
	Status     Status      `json:"status"`
	TotalCents int64       `json:"total_cents"`
	Notes      *string     `json:"notes,omitempty"`
	PlacedAt   time.Time   `json:"placed_at"`
	Items      []OrderLine `json:"items"`
	Picker     string      `json:"picker"`
}

// OrderLine is a single line of the picking list.
type OrderLine struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// Status is the order state as shown to pickers.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusShipped   Status = "SHIPPED"
	StatusCancelled Status = "CANCELLED"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusCancelled:
		return true
	}

	return false
}
