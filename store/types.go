// Package store holds keyed models of a small shop, annotated for
// pathcodec scan.
package store

// Product is a catalog entry as served by the catalog API.
type Product struct {
	ID   int    `pathcodec:"id"`
	SKU  string `json:"sku" pathcodec:""`
	Name string `pathcodec:"details.name"`
	// Description is often left out of the feed.
	Description *string `pathcodec:"details.description"`
	PriceCents  int     `pathcodec:"pricing.amount_cents"`
	Currency    string  `pathcodec:"pricing.currency,default=EUR"`
	Inventory   int     `pathcodec:"stock.count,default=0"`

	// internal bookkeeping, not stored
	revision int
}

// Customer is stored by reference and shared between orders.
//
//pathcodec:reference
type Customer struct {
	ID       int     `pathcodec:"id"`
	Email    string  `pathcodec:"contact.email"`
	Phone    *string `pathcodec:"contact.phone,implicit"`
	FullName string  `pathcodec:"profile.full_name"`
	Address  *string `pathcodec:"profile.address.line1"`
	IsActive *bool   `pathcodec:"flags.active,default=true"`
}

// OrderStatus is one of the Status* values.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Order is one placed order.
type Order struct {
	ID         int         `pathcodec:"id"`
	CustomerID int         `pathcodec:"customer.id"`
	Status     OrderStatus `pathcodec:"state.status,default=PENDING"`
	Note       string      `pathcodec:"state.note,default=no note, left blank"`
	TotalCents float64     `pathcodec:"totals.amount"`
	Meta       any         `pathcodec:"meta"`
	Ignored    string      `pathcodec:"-"`
	Untagged   string
}

// Ledger has no coded fields and is not a keyed model.
type Ledger struct {
	Entries []int
}
