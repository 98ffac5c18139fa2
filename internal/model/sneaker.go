package model

import "time"

// Sneaker represents one purchasable catalog entry, a specific
// model/size/color variant.  Prices are stored in cents so that
// aggregation over the catalog stays exact.  Stock is an unsigned
// quantity; the repository guarantees it never goes negative when
// orders are placed.
//
// Fields:
//  ID               – primary key identifier.
//  Name             – display name of the sneaker.
//  Brand            – manufacturer brand.
//  Model            – model line within the brand.
//  Size             – numeric shoe size (EU sizing).
//  Color            – colorway description.
//  PriceCents       – unit price in cents.
//  StockQuantity    – units currently available for ordering.
//  ReleaseDate      – when the sneaker was (or will be) released.
//  IsLimitedEdition – limited-edition flag used by reporting.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Sneaker struct {
	ID               uint64    `json:"id"`                 // sneakers.id
	Name             string    `json:"name"`               // sneakers.name
	Brand            string    `json:"brand"`              // sneakers.brand
	Model            string    `json:"model"`              // sneakers.model
	Size             uint32    `json:"size"`               // sneakers.size
	Color            string    `json:"color"`              // sneakers.color
	PriceCents       uint32    `json:"price_cents"`        // sneakers.price_cents
	StockQuantity    uint32    `json:"stock_quantity"`     // sneakers.stock_quantity
	ReleaseDate      time.Time `json:"release_date"`       // sneakers.release_date
	IsLimitedEdition bool      `json:"is_limited_edition"` // sneakers.is_limited_edition
	CreatedAt        time.Time `json:"created_at"`         // sneakers.created_at
	UpdatedAt        time.Time `json:"updated_at"`         // sneakers.updated_at
}
