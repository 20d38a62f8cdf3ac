package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrMissingShippingAddress indicates an order without a shipping address.
	// This is a data-integrity fault: the order cannot be routed and is not retried.
	ErrMissingShippingAddress = errors.New("order: order has no shipping address")

	// ErrMissingClient indicates an order without an owning client
	ErrMissingClient = errors.New("order: order has no owning client")
)

// Order is a locally-created customer order. Orders are created by checkout
// (outside this subsystem); the routing engine only ever reads them and flips
// IsPlaced after a confirmed submission to the routing provider.
type Order struct {
	// ID is the local order number, echoed to the routing provider as the
	// customer order number and used as the join key on the return trip
	ID              int64
	ClientID        int64
	Note            string
	IsPlaced        bool
	Client          *Client
	ShippingAddress *ShippingAddress
	LineItems       []LineItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Eligible reports whether the order may be submitted to the routing provider.
// IsPlaced is the sole idempotency guard: an order is submitted at most once.
func (o *Order) Eligible() bool {
	return !o.IsPlaced
}

// Client is the customer who owns an order
type Client struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
}

// ShippingAddress is the delivery address attached to an order
type ShippingAddress struct {
	ID        int64
	OrderID   int64
	Address   string
	City      string
	Country   string
	ZipCode   string
	ContactNo string
}

// LineItem is a single purchased variant on an order
type LineItem struct {
	ID        int64
	OrderID   int64
	VariantID int64
	Quantity  int
	Price     decimal.Decimal
}
