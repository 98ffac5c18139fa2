package queue

// OrderLine is the per-item slice of an OrderConfirmedEvent.
type OrderLine struct {
	SneakerID   uint64 `json:"sneaker_id"`
	SneakerName string `json:"sneaker_name"`
	Quantity    uint32 `json:"quantity"`
}

// OrderConfirmedEvent is published when an order is successfully
// committed.  It contains enough information for downstream consumers
// to log, notify, or trigger analytics without querying the primary
// database.
type OrderConfirmedEvent struct {
	OrderID          uint64      `json:"order_id"`
	CustomerName     string      `json:"customer_name"`
	CustomerEmail    string      `json:"customer_email"`
	ItemCount        int         `json:"item_count"`
	Lines            []OrderLine `json:"lines"`
	TotalAmountCents uint64      `json:"total_amount_cents"`
	ConfirmedAt      string      `json:"confirmed_at"`
}
