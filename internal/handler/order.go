package handler

import (
	"errors"   // errors.Is comparisons against repository sentinels
	"net/http" // HTTP status codes
	"strings"  // request field normalization
	"time"     // event timestamps

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/sneaker-store/internal/model"
	"github.com/iliyamo/sneaker-store/internal/queue"
	"github.com/iliyamo/sneaker-store/internal/repository"
	queue_publisher "github.com/iliyamo/sneaker-store/internal/service"
)

// OrderHandler groups repositories required to place and inspect
// orders.  All methods assume that JWT authentication and role
// validation have already been performed by middleware.  Order creation
// runs its validate-decrement-persist sequence inside a single
// transaction so a mid-loop failure can never leave a partial stock
// decrement behind.
type OrderHandler struct {
	Orders   *repository.OrderRepo   // access to orders and order_items
	Sneakers *repository.SneakerRepo // access to sneakers for stock guarding
}

// NewOrderHandler constructs a new OrderHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewOrderHandler(orders *repository.OrderRepo, sneakers *repository.SneakerRepo) *OrderHandler {
	if orders == nil || sneakers == nil {
		panic("nil repository passed to NewOrderHandler")
	}
	return &OrderHandler{Orders: orders, Sneakers: sneakers}
}

type orderItemReq struct {
	SneakerID uint64 `json:"sneaker_id"`
	Quantity  uint32 `json:"quantity"`
	Size      uint32 `json:"size"`
}

type createOrderReq struct {
	CustomerName    string         `json:"customer_name"`
	CustomerEmail   string         `json:"customer_email"`
	CustomerPhone   string         `json:"customer_phone"`
	ShippingAddress string         `json:"shipping_address"`
	Items           []orderItemReq `json:"items"`
}

// Create handles POST /api/orders.  The whole
// validate-decrement-persist sequence runs in one transaction: every
// referenced sneaker row is locked, checked against the requested
// quantity and decremented before the order and its line items are
// inserted.  Any failure rolls the transaction back, so stock is
// untouched when an order is rejected.
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.ShippingAddress = strings.TrimSpace(req.ShippingAddress)
	if req.CustomerName == "" || req.CustomerEmail == "" || req.ShippingAddress == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_name, customer_email and shipping_address are required"})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "order must contain at least one item"})
	}
	for _, it := range req.Items {
		if it.SneakerID == 0 || it.Quantity == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "each item needs a sneaker_id and a positive quantity"})
		}
	}

	ctx := c.Request().Context()
	tx, err := h.Orders.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock, check and decrement each referenced sneaker, collecting the
	// denormalized name/price snapshot for the line items as we go.
	items := make([]model.OrderItem, 0, len(req.Items))
	var total uint64
	for _, it := range req.Items {
		name, price, stock, err := h.Sneakers.GetForUpdateTx(ctx, tx, it.SneakerID)
		if err != nil {
			if errors.Is(err, repository.ErrUnknownSneaker) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown sneaker", "sneaker_id": it.SneakerID})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check stock"})
		}
		if it.Quantity > stock {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":      "insufficient stock",
				"sneaker_id": it.SneakerID,
				"available":  stock,
				"requested":  it.Quantity,
			})
		}
		if err := h.Sneakers.DecrementStockTx(ctx, tx, it.SneakerID, it.Quantity); err != nil {
			if errors.Is(err, repository.ErrOutOfStock) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "insufficient stock", "sneaker_id": it.SneakerID})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update stock"})
		}
		items = append(items, model.OrderItem{
			SneakerID:      it.SneakerID,
			SneakerName:    name,
			UnitPriceCents: price,
			Quantity:       it.Quantity,
			Size:           it.Size,
		})
		total += uint64(it.Quantity) * uint64(price)
	}

	order := model.Order{
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		CustomerPhone:    req.CustomerPhone,
		ShippingAddress:  req.ShippingAddress,
		Status:           model.StatusPending,
		TotalAmountCents: total,
	}
	if err := h.Orders.CreateTx(ctx, tx, &order); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order"})
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := h.Orders.CreateItemsBulkTx(ctx, tx, items); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order items"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	order.Items = items

	// Publish the confirmation event best effort; a broker outage must
	// not fail an order that is already committed.
	ev := queue.OrderConfirmedEvent{
		OrderID:          order.ID,
		CustomerName:     order.CustomerName,
		CustomerEmail:    order.CustomerEmail,
		ItemCount:        len(order.Items),
		TotalAmountCents: order.TotalAmountCents,
		ConfirmedAt:      order.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, it := range order.Items {
		ev.Lines = append(ev.Lines, queue.OrderLine{
			SneakerID:   it.SneakerID,
			SneakerName: it.SneakerName,
			Quantity:    it.Quantity,
		})
	}
	go func() { _ = queue_publisher.PublishOrderConfirmed(ev) }()

	return c.JSON(http.StatusCreated, echo.Map{"item": order})
}

// List handles GET /api/orders.  Orders are returned newest first with
// line items included.
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.Orders.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load orders"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": orders})
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}
	o, err := h.Orders.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch order"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": o})
}

// ListByCustomer handles GET /api/orders/customer/:email.
func (h *OrderHandler) ListByCustomer(c echo.Context) error {
	email := strings.TrimSpace(c.Param("email"))
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}
	orders, err := h.Orders.ListByCustomer(c.Request().Context(), email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load orders"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": orders})
}

type statusReq struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /api/orders/:id/status.  Any valid status
// value may be written; no transition graph is enforced.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Status = strings.ToUpper(strings.TrimSpace(req.Status))
	if !model.ValidOrderStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	if err := h.Orders.UpdateStatus(c.Request().Context(), id, model.OrderStatus(req.Status)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update status"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Revenue handles GET /api/orders/revenue.  Cancelled orders are
// excluded; the optional startDate/endDate bounds are inclusive.
func (h *OrderHandler) Revenue(c echo.Context) error {
	start, ok := optDate(c, "startDate")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid startDate"})
	}
	end, ok := optDate(c, "endDate")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid endDate"})
	}
	rep, err := h.Orders.Revenue(c.Request().Context(), start, end)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute revenue"})
	}
	return c.JSON(http.StatusOK, rep)
}
