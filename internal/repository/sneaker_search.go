package repository

import (
	"context"
	"strings"

	"github.com/iliyamo/sneaker-store/internal/model"
)

// SneakerSearchQuery defines the optional, independently applicable
// filters for catalog search.  Nil pointer fields mean "no bound"; all
// bounds are inclusive.  Brand is matched as a case-insensitive
// substring.
type SneakerSearchQuery struct {
	Brand         string
	MinPriceCents *uint32
	MaxPriceCents *uint32
	MinSize       *uint32
	MaxSize       *uint32
}

// Search applies the conjunction of all present filters and returns the
// matching sneakers ordered by id.
func (r *SneakerRepo) Search(ctx context.Context, q SneakerSearchQuery) ([]model.Sneaker, error) {
	where := []string{}
	args := []any{}

	if q.Brand != "" {
		where = append(where, "LOWER(brand) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Brand)+"%")
	}
	if q.MinPriceCents != nil {
		where = append(where, "price_cents >= ?")
		args = append(args, *q.MinPriceCents)
	}
	if q.MaxPriceCents != nil {
		where = append(where, "price_cents <= ?")
		args = append(args, *q.MaxPriceCents)
	}
	if q.MinSize != nil {
		where = append(where, "size >= ?")
		args = append(args, *q.MinSize)
	}
	if q.MaxSize != nil {
		where = append(where, "size <= ?")
		args = append(args, *q.MaxSize)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sneakerColumns+` FROM sneakers WHERE `+cond+` ORDER BY id`, args...)
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

// CatalogReport aggregates catalog-wide counters for the report
// endpoint.  Monetary values stay in cents; AveragePriceCents carries
// the fractional part MySQL's AVG produces.
type CatalogReport struct {
	TotalSneakers       int64   `json:"total_sneakers"`
	InStock             int64   `json:"in_stock"`
	OutOfStock          int64   `json:"out_of_stock"`
	LimitedEdition      int64   `json:"limited_edition"`
	AveragePriceCents   float64 `json:"average_price_cents"`
	InventoryValueCents uint64  `json:"inventory_value_cents"`
}

// Report computes the catalog-wide aggregate counters in a single
// query.  An empty catalog yields all zeroes rather than SQL NULLs.
func (r *SneakerRepo) Report(ctx context.Context) (CatalogReport, error) {
	const q = `SELECT COUNT(*),
	                  COALESCE(SUM(stock_quantity > 0), 0),
	                  COALESCE(SUM(stock_quantity = 0), 0),
	                  COALESCE(SUM(is_limited_edition), 0),
	                  COALESCE(AVG(price_cents), 0),
	                  COALESCE(SUM(price_cents * stock_quantity), 0)
	           FROM sneakers`
	var rep CatalogReport
	err := r.db.QueryRowContext(ctx, q).Scan(
		&rep.TotalSneakers, &rep.InStock, &rep.OutOfStock,
		&rep.LimitedEdition, &rep.AveragePriceCents, &rep.InventoryValueCents,
	)
	return rep, err
}

// BrandStat is one row of the per-brand statistics grouping.
type BrandStat struct {
	Brand             string  `json:"brand"`
	Count             int64   `json:"count"`
	AveragePriceCents float64 `json:"average_price_cents"`
	TotalStock        uint64  `json:"total_stock"`
}

// BrandStats groups the catalog by brand and returns count, average
// price and total stock for each brand, ordered alphabetically for
// deterministic output.
func (r *SneakerRepo) BrandStats(ctx context.Context) ([]BrandStat, error) {
	const q = `SELECT brand, COUNT(*), AVG(price_cents), COALESCE(SUM(stock_quantity), 0)
	           FROM sneakers
	           GROUP BY brand
	           ORDER BY brand`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]BrandStat, 0)
	for rows.Next() {
		var b BrandStat
		if err := rows.Scan(&b.Brand, &b.Count, &b.AveragePriceCents, &b.TotalStock); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
