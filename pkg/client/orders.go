package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// OrderLine is one requested line of a new order.
type OrderLine struct {
	SneakerID uint64 `json:"sneaker_id"`
	Quantity  uint32 `json:"quantity"`
	Size      uint32 `json:"size"`
}

// NewOrder is the payload for placing an order.
type NewOrder struct {
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerPhone   string      `json:"customer_phone"`
	ShippingAddress string      `json:"shipping_address"`
	Items           []OrderLine `json:"items"`
}

// CreateOrder places an order.  On success both collection snapshots
// are invalidated: the orders list gained a row and the catalog's
// stock counts changed.
func (c *Client) CreateOrder(ctx context.Context, o NewOrder) (Order, error) {
	var env itemEnvelope[Order]
	if err := c.do(ctx, http.MethodPost, "/api/orders", o, &env); err != nil {
		c.notify.failure("failed to place order: " + err.Error())
		return Order{}, err
	}
	c.orders.Invalidate()
	c.sneakers.Invalidate()
	c.notify.success(fmt.Sprintf("order %d placed", env.Item.ID))
	return env.Item, nil
}

// Orders returns all orders, newest first (admin token required).
// Served from the collection snapshot until invalidated.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	return c.orders.Get(func() ([]Order, error) {
		var env itemsEnvelope[Order]
		if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &env); err != nil {
			return nil, err
		}
		return env.Items, nil
	})
}

// InvalidateOrders drops the orders snapshot so the next Orders call
// refetches.
func (c *Client) InvalidateOrders() { c.orders.Invalidate() }

// Order fetches one order with its line items.
func (c *Client) Order(ctx context.Context, id uint64) (Order, error) {
	var env itemEnvelope[Order]
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil, &env)
	return env.Item, err
}

// OrdersByCustomer lists the orders placed under one customer email
// (admin token required).  Not cached; the filter is per call.
func (c *Client) OrdersByCustomer(ctx context.Context, email string) ([]Order, error) {
	var env itemsEnvelope[Order]
	path := "/api/orders/customer/" + url.PathEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// UpdateOrderStatus writes a new status on an order (admin token
// required) and invalidates the orders snapshot.
func (c *Client) UpdateOrderStatus(ctx context.Context, id uint64, status string) error {
	in := map[string]string{"status": string(status)}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", id), in, nil); err != nil {
		c.notify.failure("failed to update order status: " + err.Error())
		return err
	}
	c.orders.Invalidate()
	c.notify.success(fmt.Sprintf("order %d marked %s", id, status))
	return nil
}

// RevenueReport mirrors the revenue endpoint.
type RevenueReport struct {
	TotalOrders            int64   `json:"total_orders"`
	TotalRevenueCents      uint64  `json:"total_revenue_cents"`
	AverageOrderValueCents float64 `json:"average_order_value_cents"`
}

// Revenue fetches order count and summed totals, optionally bounded by
// an inclusive creation-date range (admin token required).  Nil bounds
// are omitted.
func (c *Client) Revenue(ctx context.Context, start, end *time.Time) (RevenueReport, error) {
	vals := url.Values{}
	if start != nil {
		vals.Set("startDate", start.Format("2006-01-02"))
	}
	if end != nil {
		vals.Set("endDate", end.Format("2006-01-02"))
	}
	path := "/api/orders/revenue"
	if enc := vals.Encode(); enc != "" {
		path += "?" + enc
	}
	var rep RevenueReport
	err := c.do(ctx, http.MethodGet, path, nil, &rep)
	return rep, err
}
