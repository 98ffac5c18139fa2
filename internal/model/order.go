package model

import "time"

// OrderStatus enumerates the lifecycle states an order can be in.  No
// transition graph is enforced; administrators may write any valid
// status directly.
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// ValidOrderStatus reports whether s names a known order status.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order represents a customer order as stored in the `orders` table
// together with its line items.  The total amount is derived from the
// items at creation time and stored redundantly so that listings and
// revenue aggregation do not need to join line items.  Orders are never
// deleted; only their status changes after creation.
//
// Fields:
//  ID               – primary key identifier.
//  CustomerName     – contact name supplied at checkout.
//  CustomerEmail    – contact email supplied at checkout.
//  CustomerPhone    – contact phone supplied at checkout.
//  ShippingAddress  – destination address.
//  Status           – current order status.
//  TotalAmountCents – sum of quantity × unit price over all items.
//  CreatedAt        – server-assigned creation timestamp.
//  Items            – line items owned by this order.
type Order struct {
	ID               uint64      `json:"id"`                 // orders.id
	CustomerName     string      `json:"customer_name"`      // orders.customer_name
	CustomerEmail    string      `json:"customer_email"`     // orders.customer_email
	CustomerPhone    string      `json:"customer_phone"`     // orders.customer_phone
	ShippingAddress  string      `json:"shipping_address"`   // orders.shipping_address
	Status           OrderStatus `json:"status"`             // orders.status
	TotalAmountCents uint64      `json:"total_amount_cents"` // orders.total_amount_cents
	CreatedAt        time.Time   `json:"created_at"`         // orders.created_at
	Items            []OrderItem `json:"items"`              // owned order_items rows
}

// OrderItem is one line of an order.  It references a catalog sneaker
// by id but carries a denormalized snapshot of the sneaker name and
// unit price taken at order time, so later catalog edits do not rewrite
// order history.  Line items are immutable once created.
//
// Fields:
//  ID             – primary key identifier.
//  OrderID        – owning order.
//  SneakerID      – referenced catalog sneaker.
//  SneakerName    – sneaker name at order time.
//  UnitPriceCents – unit price at order time, in cents.
//  Quantity       – number of units ordered (at least one).
//  Size           – requested shoe size.
type OrderItem struct {
	ID             uint64 `json:"id"`               // order_items.id
	OrderID        uint64 `json:"order_id"`         // order_items.order_id
	SneakerID      uint64 `json:"sneaker_id"`       // order_items.sneaker_id
	SneakerName    string `json:"sneaker_name"`     // order_items.sneaker_name
	UnitPriceCents uint32 `json:"unit_price_cents"` // order_items.unit_price_cents
	Quantity       uint32 `json:"quantity"`         // order_items.quantity
	Size           uint32 `json:"size"`             // order_items.size
}
