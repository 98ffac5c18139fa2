package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/sneaker-store/internal/model"
)

// SneakerRepo provides CRUD operations for catalog sneakers.  All
// timestamp fields are assumed to be stored in UTC.  Stock mutations
// triggered by order placement run through the Tx helpers at the bottom
// of this file so that callers can wrap them in a transaction together
// with order inserts.
type SneakerRepo struct {
	db *sql.DB
}

// NewSneakerRepo returns a new SneakerRepo bound to the given database.
func NewSneakerRepo(db *sql.DB) *SneakerRepo { return &SneakerRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions
// spanning multiple repositories.
func (r *SneakerRepo) DB() *sql.DB { return r.db }

const sneakerColumns = `id, name, brand, model, size, color, price_cents, stock_quantity, release_date, is_limited_edition, created_at, updated_at`

func scanSneaker(row interface{ Scan(...any) error }, s *model.Sneaker) error {
	return row.Scan(
		&s.ID, &s.Name, &s.Brand, &s.Model, &s.Size, &s.Color,
		&s.PriceCents, &s.StockQuantity, &s.ReleaseDate, &s.IsLimitedEdition,
		&s.CreatedAt, &s.UpdatedAt,
	)
}

// List returns the whole catalog ordered by id.
func (r *SneakerRepo) List(ctx context.Context) ([]model.Sneaker, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+sneakerColumns+` FROM sneakers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Sneaker, 0)
	for rows.Next() {
		var s model.Sneaker
		if err := scanSneaker(rows, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListInStock returns catalog entries with at least one unit available.
func (r *SneakerRepo) ListInStock(ctx context.Context) ([]model.Sneaker, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sneakerColumns+` FROM sneakers WHERE stock_quantity > 0 ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Sneaker, 0)
	for rows.Next() {
		var s model.Sneaker
		if err := scanSneaker(rows, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID returns one sneaker or ErrNotFound.
func (r *SneakerRepo) GetByID(ctx context.Context, id uint64) (model.Sneaker, error) {
	var s model.Sneaker
	err := scanSneaker(r.db.QueryRowContext(ctx,
		`SELECT `+sneakerColumns+` FROM sneakers WHERE id = ?`, id), &s)
	if err == sql.ErrNoRows {
		return s, ErrNotFound
	}
	return s, err
}

// Create inserts a new sneaker and populates the generated ID and
// timestamps on the provided record.  Any client-supplied ID is ignored;
// the server always assigns it.
func (r *SneakerRepo) Create(ctx context.Context, s *model.Sneaker) error {
	const q = `INSERT INTO sneakers (name, brand, model, size, color, price_cents, stock_quantity, release_date, is_limited_edition)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		s.Name, s.Brand, s.Model, s.Size, s.Color,
		s.PriceCents, s.StockQuantity, s.ReleaseDate, s.IsLimitedEdition)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults
	return scanSneaker(r.db.QueryRowContext(ctx,
		`SELECT `+sneakerColumns+` FROM sneakers WHERE id = ?`, s.ID), s)
}

// Update rewrites all mutable columns of a sneaker.  It returns
// ErrNotFound when the target row does not exist.  An update that
// changes nothing is still a success.
func (r *SneakerRepo) Update(ctx context.Context, s model.Sneaker) error {
	const q = `UPDATE sneakers
	           SET name = ?, brand = ?, model = ?, size = ?, color = ?,
	               price_cents = ?, stock_quantity = ?, release_date = ?, is_limited_edition = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		s.Name, s.Brand, s.Model, s.Size, s.Color,
		s.PriceCents, s.StockQuantity, s.ReleaseDate, s.IsLimitedEdition, s.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// MySQL reports zero rows for a no-op update as well, so check
		// existence before declaring the target missing.
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM sneakers WHERE id = ?)`, s.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
	}
	return nil
}

// Delete removes a sneaker or returns ErrNotFound.
func (r *SneakerRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sneakers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetForUpdateTx loads a sneaker's order-relevant columns inside an
// existing transaction, locking the row (`FOR UPDATE`) so that
// concurrent orders on the same sneaker serialize instead of racing on
// the read-check-decrement sequence.  ErrUnknownSneaker is returned
// when the row does not exist.
func (r *SneakerRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (name string, priceCents uint32, stock uint32, err error) {
	const q = `SELECT name, price_cents, stock_quantity FROM sneakers WHERE id = ? FOR UPDATE`
	err = tx.QueryRowContext(ctx, q, id).Scan(&name, &priceCents, &stock)
	if err == sql.ErrNoRows {
		err = ErrUnknownSneaker
	}
	return
}

// DecrementStockTx reduces a sneaker's stock by qty inside an existing
// transaction.  The WHERE clause re-checks availability so the stock
// column can never go negative even if the caller's earlier read was
// stale; zero affected rows means the guard failed and ErrOutOfStock is
// returned.
func (r *SneakerRepo) DecrementStockTx(ctx context.Context, tx *sql.Tx, id uint64, qty uint32) error {
	const q = `UPDATE sneakers SET stock_quantity = stock_quantity - ? WHERE id = ? AND stock_quantity >= ?`
	res, err := tx.ExecContext(ctx, q, qty, id, qty)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOutOfStock
	}
	return nil
}
