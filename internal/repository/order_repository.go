package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/sneaker-store/internal/model"
)

// OrderRepo provides persistence for orders and their line items.
// Orders own their order_items rows (cascade on delete at the schema
// level, although orders are never deleted by the application).  All
// timestamp fields are assumed to be stored in UTC.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions
// spanning order and sneaker repositories.
func (r *OrderRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a new order within the scope of an existing
// transaction.  It populates the generated ID and creation timestamp on
// the provided record.  The caller must commit or rollback the
// transaction.  Status should be a valid model.OrderStatus value.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, o *model.Order) error {
	const q = `INSERT INTO orders (customer_name, customer_email, customer_phone, shipping_address, status, total_amount_cents)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		o.CustomerName, o.CustomerEmail, o.CustomerPhone,
		o.ShippingAddress, string(o.Status), o.TotalAmountCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	// Query back the row to populate the server-assigned timestamp
	const sel = `SELECT created_at FROM orders WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, o.ID).Scan(&o.CreatedAt)
}

// CreateItemsBulkTx inserts multiple order_items rows in a single
// statement.  The caller must supply the order ID in each record.  The
// insertion occurs within the provided transaction.  Passing an empty
// slice has no effect and returns nil.
func (r *OrderRepo) CreateItemsBulkTx(ctx context.Context, tx *sql.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `INSERT INTO order_items (order_id, sneaker_id, sneaker_name, unit_price_cents, quantity, size) VALUES `
	args := make([]any, 0, len(items)*6)
	for i, it := range items {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?)"
		args = append(args, it.OrderID, it.SneakerID, it.SneakerName, it.UnitPriceCents, it.Quantity, it.Size)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

const orderColumns = `id, customer_name, customer_email, customer_phone, shipping_address, status, total_amount_cents, created_at`

func scanOrder(row interface{ Scan(...any) error }, o *model.Order) error {
	var status string
	err := row.Scan(
		&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.ShippingAddress, &status, &o.TotalAmountCents, &o.CreatedAt,
	)
	o.Status = model.OrderStatus(status)
	return err
}

// GetByID returns one order with its line items, or ErrNotFound.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (model.Order, error) {
	var o model.Order
	err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id), &o)
	if err == sql.ErrNoRows {
		return o, ErrNotFound
	}
	if err != nil {
		return o, err
	}
	items, err := r.itemsForOrders(ctx, []uint64{o.ID})
	if err != nil {
		return o, err
	}
	o.Items = items[o.ID]
	if o.Items == nil {
		o.Items = []model.OrderItem{}
	}
	return o, nil
}

// List returns all orders, newest first, with line items populated.
func (r *OrderRepo) List(ctx context.Context) ([]model.Order, error) {
	return r.list(ctx, "", nil)
}

// ListByCustomer returns all orders placed under the given customer
// email, newest first.
func (r *OrderRepo) ListByCustomer(ctx context.Context, email string) ([]model.Order, error) {
	return r.list(ctx, "WHERE customer_email = ?", []any{strings.ToLower(strings.TrimSpace(email))})
}

// list runs the shared listing query with an optional WHERE clause and
// populates line items for every returned order in a single extra query.
func (r *OrderRepo) list(ctx context.Context, cond string, args []any) ([]model.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders ` + cond + ` ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	orders := make([]model.Order, 0)
	index := make(map[uint64]int)
	ids := make([]uint64, 0)
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		o.Items = []model.OrderItem{}
		index[o.ID] = len(orders)
		ids = append(ids, o.ID)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}
	items, err := r.itemsForOrders(ctx, ids)
	if err != nil {
		return nil, err
	}
	for oid, its := range items {
		if idx, ok := index[oid]; ok {
			orders[idx].Items = its
		}
	}
	return orders, nil
}

// itemsForOrders fetches the line items for all given order IDs in one
// IN-clause query and groups them by order.
func (r *OrderRepo) itemsForOrders(ctx context.Context, ids []uint64) (map[uint64][]model.OrderItem, error) {
	placeholders := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	q := `SELECT id, order_id, sneaker_id, sneaker_name, unit_price_cents, quantity, size
	      FROM order_items
	      WHERE order_id IN (` + strings.Join(placeholders, ",") + `)
	      ORDER BY order_id, id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[uint64][]model.OrderItem)
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.SneakerID, &it.SneakerName,
			&it.UnitPriceCents, &it.Quantity, &it.Size); err != nil {
			return nil, err
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

// UpdateStatus writes a new status on an order.  ErrNotFound is
// returned when the order does not exist; writing the status an order
// already has is a success.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id uint64, status model.OrderStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM orders WHERE id = ?)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
	}
	return nil
}

// RevenueReport aggregates non-cancelled orders for the revenue
// endpoint.  AverageOrderValueCents is total divided by count, zero
// when no orders match.
type RevenueReport struct {
	TotalOrders            int64   `json:"total_orders"`
	TotalRevenueCents      uint64  `json:"total_revenue_cents"`
	AverageOrderValueCents float64 `json:"average_order_value_cents"`
}

// Revenue sums the stored totals of all orders excluding CANCELLED
// ones, optionally bounded by an inclusive creation-date range.  The
// average is computed in Go and guarded against division by zero.
func (r *OrderRepo) Revenue(ctx context.Context, start, end *time.Time) (RevenueReport, error) {
	where := []string{"status <> ?"}
	args := []any{string(model.StatusCancelled)}
	if start != nil {
		where = append(where, "created_at >= ?")
		args = append(args, start.UTC())
	}
	if end != nil {
		where = append(where, "created_at <= ?")
		args = append(args, end.UTC())
	}
	q := `SELECT COUNT(*), COALESCE(SUM(total_amount_cents), 0)
	      FROM orders
	      WHERE ` + strings.Join(where, " AND ")
	var rep RevenueReport
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&rep.TotalOrders, &rep.TotalRevenueCents); err != nil {
		return rep, err
	}
	if rep.TotalOrders > 0 {
		rep.AverageOrderValueCents = float64(rep.TotalRevenueCents) / float64(rep.TotalOrders)
	}
	return rep, nil
}
