package client

import "time"

// Sneaker is one catalog entry as the API serializes it.  The client
// defines its own copy of the wire shape so importing modules never
// need types from this repo's internal packages.
type Sneaker struct {
	ID               uint64    `json:"id"`
	Name             string    `json:"name"`
	Brand            string    `json:"brand"`
	Model            string    `json:"model"`
	Size             uint32    `json:"size"`
	Color            string    `json:"color"`
	PriceCents       uint32    `json:"price_cents"`
	StockQuantity    uint32    `json:"stock_quantity"`
	ReleaseDate      time.Time `json:"release_date"`
	IsLimitedEdition bool      `json:"is_limited_edition"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Order is one placed order with its line items.
type Order struct {
	ID               uint64      `json:"id"`
	CustomerName     string      `json:"customer_name"`
	CustomerEmail    string      `json:"customer_email"`
	CustomerPhone    string      `json:"customer_phone"`
	ShippingAddress  string      `json:"shipping_address"`
	Status           string      `json:"status"`
	TotalAmountCents uint64      `json:"total_amount_cents"`
	CreatedAt        time.Time   `json:"created_at"`
	Items            []OrderItem `json:"items"`
}

// OrderItem is one line of an order, carrying the name and unit price
// snapshot taken at order time.
type OrderItem struct {
	ID             uint64 `json:"id"`
	OrderID        uint64 `json:"order_id"`
	SneakerID      uint64 `json:"sneaker_id"`
	SneakerName    string `json:"sneaker_name"`
	UnitPriceCents uint32 `json:"unit_price_cents"`
	Quantity       uint32 `json:"quantity"`
	Size           uint32 `json:"size"`
}

// Order status values accepted by UpdateOrderStatus.
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusShipped    = "SHIPPED"
	StatusDelivered  = "DELIVERED"
	StatusCancelled  = "CANCELLED"
)
