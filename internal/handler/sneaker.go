package handler

import (
	"errors"   // errors.Is comparisons against repository sentinels
	"net/http" // HTTP status codes
	"strings"  // request field normalization

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/sneaker-store/internal/model"
	"github.com/iliyamo/sneaker-store/internal/repository"
)

// SneakerHandler groups the catalog endpoints.  Reads are public;
// mutations are registered behind admin-role middleware by the router.
type SneakerHandler struct {
	Repo *repository.SneakerRepo
}

// NewSneakerHandler constructs a SneakerHandler and panics on a nil
// repository.
func NewSneakerHandler(repo *repository.SneakerRepo) *SneakerHandler {
	if repo == nil {
		panic("nil repository passed to NewSneakerHandler")
	}
	return &SneakerHandler{Repo: repo}
}

// sneakerReq is the write shape for create and update.  The unsigned
// price and stock fields make negative values a bind error before any
// handler logic runs.  ReleaseDate is a string so both date-only and
// RFC3339 inputs are accepted.
type sneakerReq struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	Brand            string `json:"brand"`
	Model            string `json:"model"`
	Size             uint32 `json:"size"`
	Color            string `json:"color"`
	PriceCents       uint32 `json:"price_cents"`
	StockQuantity    uint32 `json:"stock_quantity"`
	ReleaseDate      string `json:"release_date"`
	IsLimitedEdition bool   `json:"is_limited_edition"`
}

// toModel validates the request shape and converts it.  The returned
// string is an error message suitable for a 400 body, empty on success.
func (req *sneakerReq) toModel() (model.Sneaker, string) {
	req.Name = strings.TrimSpace(req.Name)
	req.Brand = strings.TrimSpace(req.Brand)
	req.Model = strings.TrimSpace(req.Model)
	if req.Name == "" || req.Brand == "" || req.Model == "" {
		return model.Sneaker{}, "name, brand and model are required"
	}
	if req.Size == 0 {
		return model.Sneaker{}, "size is required"
	}
	s := model.Sneaker{
		ID:               req.ID,
		Name:             req.Name,
		Brand:            req.Brand,
		Model:            req.Model,
		Size:             req.Size,
		Color:            strings.TrimSpace(req.Color),
		PriceCents:       req.PriceCents,
		StockQuantity:    req.StockQuantity,
		IsLimitedEdition: req.IsLimitedEdition,
	}
	if req.ReleaseDate != "" {
		t, err := parseDate(req.ReleaseDate)
		if err != nil {
			return model.Sneaker{}, "invalid release_date"
		}
		s.ReleaseDate = t
	}
	return s, ""
}

// List handles GET /api/sneakers.
func (h *SneakerHandler) List(c echo.Context) error {
	items, err := h.Repo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load sneakers"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListInStock handles GET /api/sneakers/instock.
func (h *SneakerHandler) ListInStock(c echo.Context) error {
	items, err := h.Repo.ListInStock(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load sneakers"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /api/sneakers/:id.
func (h *SneakerHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sneaker id"})
	}
	s, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "sneaker not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch sneaker"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": s})
}

// Create handles POST /api/sneakers.  Any client-supplied identifier is
// ignored; the server assigns it.
func (h *SneakerHandler) Create(c echo.Context) error {
	var req sneakerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	s, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	s.ID = 0 // server assigns the identifier
	if err := h.Repo.Create(c.Request().Context(), &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create sneaker"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": s})
}

// Update handles PUT /api/sneakers/:id.  The body identifier, when
// present, must match the path.
func (h *SneakerHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sneaker id"})
	}
	var req sneakerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ID != 0 && req.ID != id {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id mismatch between path and body"})
	}
	s, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	s.ID = id
	if err := h.Repo.Update(c.Request().Context(), s); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "sneaker not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update sneaker"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /api/sneakers/:id.
func (h *SneakerHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sneaker id"})
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "sneaker not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete sneaker"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Search handles GET /api/sneakers/search.  All filters are optional
// and conjunctive; the price and size bounds are inclusive.
func (h *SneakerHandler) Search(c echo.Context) error {
	q := repository.SneakerSearchQuery{Brand: strings.TrimSpace(c.QueryParam("brand"))}
	var ok bool
	if q.MinPriceCents, ok = optUint32(c, "minPrice"); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid minPrice"})
	}
	if q.MaxPriceCents, ok = optUint32(c, "maxPrice"); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid maxPrice"})
	}
	if q.MinSize, ok = optUint32(c, "minSize"); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid minSize"})
	}
	if q.MaxSize, ok = optUint32(c, "maxSize"); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid maxSize"})
	}
	items, err := h.Repo.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
