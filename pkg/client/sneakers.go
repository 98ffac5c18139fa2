package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type itemsEnvelope[T any] struct {
	Items []T `json:"items"`
}

type itemEnvelope[T any] struct {
	Item T `json:"item"`
}

// Sneakers returns the full catalog.  The result is served from the
// collection snapshot until a mutation or Refresh invalidates it.
func (c *Client) Sneakers(ctx context.Context) ([]Sneaker, error) {
	return c.sneakers.Get(func() ([]Sneaker, error) {
		var env itemsEnvelope[Sneaker]
		if err := c.do(ctx, http.MethodGet, "/api/sneakers", nil, &env); err != nil {
			return nil, err
		}
		return env.Items, nil
	})
}

// InvalidateSneakers drops the catalog snapshot so the next Sneakers
// call refetches.
func (c *Client) InvalidateSneakers() { c.sneakers.Invalidate() }

// SneakersInStock lists catalog entries with stock available.  Not
// cached; the in-stock view changes with every order.
func (c *Client) SneakersInStock(ctx context.Context) ([]Sneaker, error) {
	var env itemsEnvelope[Sneaker]
	if err := c.do(ctx, http.MethodGet, "/api/sneakers/instock", nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// Sneaker fetches a single catalog entry by id.
func (c *Client) Sneaker(ctx context.Context, id uint64) (Sneaker, error) {
	var env itemEnvelope[Sneaker]
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/sneakers/%d", id), nil, &env)
	return env.Item, err
}

// SneakerSearch holds the optional search filters.  Zero pointers mean
// the filter is not applied; both range bounds are inclusive.
type SneakerSearch struct {
	Brand         string
	MinPriceCents *uint32
	MaxPriceCents *uint32
	MinSize       *uint32
	MaxSize       *uint32
}

// SearchSneakers queries the catalog with the given filters.
func (c *Client) SearchSneakers(ctx context.Context, q SneakerSearch) ([]Sneaker, error) {
	vals := url.Values{}
	if q.Brand != "" {
		vals.Set("brand", q.Brand)
	}
	setU32 := func(key string, v *uint32) {
		if v != nil {
			vals.Set(key, strconv.FormatUint(uint64(*v), 10))
		}
	}
	setU32("minPrice", q.MinPriceCents)
	setU32("maxPrice", q.MaxPriceCents)
	setU32("minSize", q.MinSize)
	setU32("maxSize", q.MaxSize)

	path := "/api/sneakers/search"
	if enc := vals.Encode(); enc != "" {
		path += "?" + enc
	}
	var env itemsEnvelope[Sneaker]
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// CreateSneaker adds a catalog entry (admin token required).  The
// server assigns the identifier; any id on s is ignored.
func (c *Client) CreateSneaker(ctx context.Context, s Sneaker) (Sneaker, error) {
	var env itemEnvelope[Sneaker]
	if err := c.do(ctx, http.MethodPost, "/api/sneakers", s, &env); err != nil {
		c.notify.failure("failed to create sneaker: " + err.Error())
		return Sneaker{}, err
	}
	c.sneakers.Invalidate()
	c.notify.success("sneaker created: " + env.Item.Name)
	return env.Item, nil
}

// UpdateSneaker overwrites a catalog entry.  The id on s must match an
// existing row.
func (c *Client) UpdateSneaker(ctx context.Context, s Sneaker) error {
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/sneakers/%d", s.ID), s, nil); err != nil {
		c.notify.failure("failed to update sneaker: " + err.Error())
		return err
	}
	c.sneakers.Invalidate()
	c.notify.success("sneaker updated: " + s.Name)
	return nil
}

// DeleteSneaker removes a catalog entry.
func (c *Client) DeleteSneaker(ctx context.Context, id uint64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/sneakers/%d", id), nil, nil); err != nil {
		c.notify.failure("failed to delete sneaker: " + err.Error())
		return err
	}
	c.sneakers.Invalidate()
	c.notify.success("sneaker deleted")
	return nil
}

// CatalogReport mirrors the inventory report endpoint.
type CatalogReport struct {
	TotalSneakers       int64   `json:"total_sneakers"`
	InStock             int64   `json:"in_stock"`
	OutOfStock          int64   `json:"out_of_stock"`
	LimitedEdition      int64   `json:"limited_edition"`
	AveragePriceCents   float64 `json:"average_price_cents"`
	InventoryValueCents uint64  `json:"inventory_value_cents"`
}

// Report fetches the catalog-wide counters together with the server
// timestamp the report was generated at.
func (c *Client) Report(ctx context.Context) (CatalogReport, time.Time, error) {
	var payload struct {
		Report     CatalogReport `json:"report"`
		ReportDate time.Time     `json:"report_date"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/sneakers/report", nil, &payload); err != nil {
		return CatalogReport{}, time.Time{}, err
	}
	return payload.Report, payload.ReportDate, nil
}

// BrandStat is one row of the per-brand statistics.
type BrandStat struct {
	Brand             string  `json:"brand"`
	Count             int64   `json:"count"`
	AveragePriceCents float64 `json:"average_price_cents"`
	TotalStock        uint64  `json:"total_stock"`
}

// Statistics fetches the per-brand grouping (admin token required).
func (c *Client) Statistics(ctx context.Context) ([]BrandStat, error) {
	var payload struct {
		Brands []BrandStat `json:"brands"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/sneakers/statistics", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Brands, nil
}
